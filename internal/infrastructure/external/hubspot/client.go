package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meeting-prep-team/meeting-prep-bot/internal/domain/entities"
	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

const (
	// Fixed sentinels; callers branch on neither, they are display text
	noResultsSentinel = "No relevant CRM data found."
	errorSentinel     = "[Error fetching CRM data]"

	searchLimit = 5
)

// Client is a minimal client for the HubSpot CRM contact search endpoint
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a HubSpot client from config
func NewClient(cfg *config.HubSpotConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Kind identifies this adapter as the CRM source
func (c *Client) Kind() entities.SourceKind { return entities.SourceCRM }

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchResponse struct {
	Results []struct {
		Properties map[string]string `json:"properties"`
	} `json:"results"`
}

// Fetch searches contacts whose name contains the query and returns a
// one-line-per-contact summary. Any failure is logged and converted to the
// error sentinel; Fetch never raises past this boundary.
func (c *Client) Fetch(ctx context.Context, query string) string {
	text, err := c.search(ctx, query)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("HubSpot fetch error",
				zap.String("source", c.Kind().String()),
				zap.Error(err),
			)
		}
		return errorSentinel
	}
	return text
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	reqBody := searchRequest{
		FilterGroups: []filterGroup{
			{Filters: []filter{{PropertyName: "name", Operator: "CONTAINS_TOKEN", Value: query}}},
		},
		Properties: []string{"firstname", "lastname", "email", "company", "phone"},
		Limit:      searchLimit,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/crm/v3/objects/contacts/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("hubspot returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", err
	}

	if len(sr.Results) == 0 {
		return noResultsSentinel, nil
	}

	lines := make([]string, 0, len(sr.Results))
	for _, r := range sr.Results {
		p := r.Properties
		lines = append(lines, fmt.Sprintf("- %s %s | %s | %s | %s",
			p["firstname"], p["lastname"], p["email"], p["company"], p["phone"]))
	}
	return strings.Join(lines, "\n"), nil
}
