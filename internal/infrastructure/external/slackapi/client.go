package slackapi

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

// Poster posts plain-text messages via the Slack Web API. The underlying
// client is process-wide and safe for concurrent use; each call is
// independently parameterized.
type Poster struct {
	api    *slack.Client
	logger *zap.Logger
}

// NewPoster creates a poster from the bot token in config
func NewPoster(cfg *config.SlackConfig, logger *zap.Logger) *Poster {
	return &Poster{api: slack.New(cfg.BotToken), logger: logger}
}

// PostMessage posts text to the given channel
func (p *Poster) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := p.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return err
	}
	if p.logger != nil {
		p.logger.Info("posted message to channel", zap.String("channel", channelID))
	}
	return nil
}
