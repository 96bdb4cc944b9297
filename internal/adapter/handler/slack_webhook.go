package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"github.com/meeting-prep-team/meeting-prep-bot/errors"
	"github.com/meeting-prep-team/meeting-prep-bot/internal/domain/entities"
	briefuse "github.com/meeting-prep-team/meeting-prep-bot/internal/usecase/brief"
)

// SlackWebhookHandler dispatches inbound Slack payloads: verification
// handshakes, slash commands, and app-mention events all arrive on the same
// route and are classified after the signature check.
type SlackWebhookHandler struct {
	svc           briefuse.Service
	signingSecret string
	slashCommand  string
	logger        *zap.Logger
}

// NewSlackWebhookHandler creates a new handler
func NewSlackWebhookHandler(svc briefuse.Service, signingSecret, slashCommand string, logger *zap.Logger) *SlackWebhookHandler {
	return &SlackWebhookHandler{
		svc:           svc,
		signingSecret: signingSecret,
		slashCommand:  slashCommand,
		logger:        logger,
	}
}

// HandleSlackEvent receives every inbound Slack callback. The signature is
// verified against the raw body before anything else runs; an invalid
// signature rejects the request with no downstream work.
func (h *SlackWebhookHandler) HandleSlackEvent(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if err := h.verifySignature(c.Request().Header, body); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidSignature(err))
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationForm) {
		return h.handleSlashCommand(c, body)
	}
	return h.handleEventPayload(c, body)
}

func (h *SlackWebhookHandler) verifySignature(header http.Header, body []byte) error {
	sv, err := slack.NewSecretsVerifier(header, h.signingSecret)
	if err != nil {
		return err
	}
	if _, err := sv.Write(body); err != nil {
		return err
	}
	return sv.Ensure()
}

func (h *SlackWebhookHandler) handleSlashCommand(c echo.Context, body []byte) error {
	// SlashCommandParse re-reads the request body, which was consumed for
	// signature verification; restore it first.
	c.Request().Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(c.Request())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if cmd.Command != h.slashCommand {
		// Unrecognized command: acknowledge, take no further action
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	}

	query := entities.QueryFromSlashText(cmd.Text)
	if h.logger != nil {
		h.logger.Info("📥 Slash command trigger",
			zap.String("meeting", query.Name),
			zap.String("channel", cmd.ChannelID),
			zap.String("user", cmd.UserID),
			zap.Int("recipients", len(query.Recipients)),
		)
	}
	h.svc.HandleTrigger(c.Request().Context(), query, cmd.ChannelID)

	// Slash-command protocol: empty-body ack, the brief arrives via chat post
	return c.NoContent(http.StatusOK)
}

func (h *SlackWebhookHandler) handleEventPayload(c echo.Context, body []byte) error {
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	switch event.Type {
	case slackevents.URLVerification:
		var resp slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		// Echo the challenge token back verbatim, bypassing all other logic
		return c.JSON(http.StatusOK, map[string]string{"challenge": resp.Challenge})

	case slackevents.CallbackEvent:
		if mention, ok := event.InnerEvent.Data.(*slackevents.AppMentionEvent); ok {
			query := entities.QueryFromMentionText(mention.Text)
			if h.logger != nil {
				h.logger.Info("📥 App mention trigger",
					zap.String("meeting", query.Name),
					zap.String("channel", mention.Channel),
					zap.String("user", mention.User),
				)
			}
			h.svc.HandleTrigger(c.Request().Context(), query, mention.Channel)
		}
	}

	// Generic success marker for events and anything unrecognized
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
