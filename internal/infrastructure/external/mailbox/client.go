package mailbox

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-prep-team/meeting-prep-bot/internal/domain/entities"
	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

const (
	noResultsSentinel = "No relevant emails found."
	errorSentinel     = "[Error fetching emails]"

	// At most this many most-recent matches go into the summary
	fetchLimit = 5
)

// envelopeSummary is the slice of a message the brief cares about
type envelopeSummary struct {
	From    string
	Subject string
}

// session is one authenticated IMAP connection. The indirection exists so
// tests can fake the mailbox without a network.
type session interface {
	Login(username, password string) error
	Select(folder string) error
	SearchBody(text string) ([]uint32, error)
	FetchEnvelopes(nums []uint32) ([]envelopeSummary, error)
	Logout()
}

// Client is the mailbox source adapter: it searches the configured IMAP
// folder for messages whose body mentions the meeting name and summarizes
// the most recent matches.
type Client struct {
	cfg    *config.MailboxConfig
	dial   func(addr string) (session, error)
	logger *zap.Logger
}

// NewClient creates a mailbox client from config
func NewClient(cfg *config.MailboxConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, dial: dialTLS, logger: logger}
}

// Kind identifies this adapter as the mail source
func (c *Client) Kind() entities.SourceKind { return entities.SourceMail }

// Fetch returns a From/Subject summary of up to the 5 most recent messages
// matching the query. Any failure during dial, login, search, or fetch is
// logged and converted to the error sentinel.
func (c *Client) Fetch(ctx context.Context, query string) string {
	text, err := c.search(query)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Gmail fetch error",
				zap.String("source", c.Kind().String()),
				zap.Error(err),
			)
		}
		return errorSentinel
	}
	return text
}

func (c *Client) search(query string) (string, error) {
	sess, err := c.dial(c.cfg.Addr)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", c.cfg.Addr, err)
	}
	defer sess.Logout()

	if err := sess.Login(c.cfg.User, c.cfg.Password); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if err := sess.Select(c.cfg.Folder); err != nil {
		return "", fmt.Errorf("select %s: %w", c.cfg.Folder, err)
	}

	nums, err := sess.SearchBody(query)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if len(nums) == 0 {
		return noResultsSentinel, nil
	}
	// Sequence numbers ascend with recency; keep the tail
	if len(nums) > fetchLimit {
		nums = nums[len(nums)-fetchLimit:]
	}

	envelopes, err := sess.FetchEnvelopes(nums)
	if err != nil {
		return "", fmt.Errorf("fetch envelopes: %w", err)
	}
	if len(envelopes) == 0 {
		return noResultsSentinel, nil
	}

	lines := make([]string, 0, len(envelopes))
	for _, env := range envelopes {
		lines = append(lines, fmt.Sprintf("From: %s\nSubject: %s", env.From, env.Subject))
	}
	return strings.Join(lines, "\n"), nil
}
