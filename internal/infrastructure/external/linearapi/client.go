package linearapi

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
	noResultsSentinel = "No relevant tasks found."
	errorSentinel     = "[Error fetching tasks]"
)

const issuesQuery = `
query Tasks($search: String!) {
  issues(filter: {search: $search}) {
    nodes {
      id
      title
      state { name }
      assignee { name }
    }
  }
}`

// Client is a minimal client for the Linear GraphQL API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a Linear client from config
func NewClient(cfg *config.LinearConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Kind identifies this adapter as the issue tracker source
func (c *Client) Kind() entities.SourceKind { return entities.SourceIssueTracker }

type gqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type issueNode struct {
	Title string `json:"title"`
	State struct {
		Name string `json:"name"`
	} `json:"state"`
	Assignee *struct {
		Name string `json:"name"`
	} `json:"assignee"`
}

type gqlResponse struct {
	Data struct {
		Issues struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"issues"`
	} `json:"data"`
}

// Fetch searches issues matching the query and returns a one-line-per-issue
// summary. Any failure is logged and converted to the error sentinel.
func (c *Client) Fetch(ctx context.Context, query string) string {
	text, err := c.search(ctx, query)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Linear fetch error",
				zap.String("source", c.Kind().String()),
				zap.Error(err),
			)
		}
		return errorSentinel
	}
	return text
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	b, err := json.Marshal(gqlRequest{
		Query:     issuesQuery,
		Variables: map[string]string{"search": query},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	// Linear expects the raw API key, not a Bearer scheme
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("linear returned status %d", resp.StatusCode)
	}

	var gr gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}

	issues := gr.Data.Issues.Nodes
	if len(issues) == 0 {
		return noResultsSentinel, nil
	}

	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		assignee := "Unassigned"
		if issue.Assignee != nil {
			assignee = issue.Assignee.Name
		}
		lines = append(lines, fmt.Sprintf("- %s (State: %s, Assignee: %s)", issue.Title, issue.State.Name, assignee))
	}
	return strings.Join(lines, "\n"), nil
}
