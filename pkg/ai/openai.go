package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

const systemPrompt = "You are a helpful assistant."

// BriefUnavailableMessage is returned when every model tier fails. It is a
// displayable result, not an error signal.
const BriefUnavailableMessage = "Sorry, I couldn't put together a meeting brief right now. Please try again in a few minutes."

// ChatCompleter is the slice of the OpenAI client the writer needs
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Tier is one model configuration in the ordered fallback chain
type Tier struct {
	Model string
}

// BriefWriter synthesizes meeting briefs via chat completion. Tiers are
// tried in order; the first success wins. The writer always returns a
// displayable string and never an error.
type BriefWriter struct {
	client      ChatCompleter
	tiers       []Tier
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewBriefWriter creates a writer with the primary and fallback tiers from config
func NewBriefWriter(cfg *config.OpenAIConfig, logger *zap.Logger) *BriefWriter {
	return &BriefWriter{
		client:      openai.NewClient(cfg.APIKey),
		tiers:       []Tier{{Model: cfg.Model}, {Model: cfg.FallbackModel}},
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Synthesize produces the brief body from the meeting name and the three
// source summaries. The summaries are embedded verbatim; they may be real
// data, no-results sentinels, or error sentinels and are treated uniformly.
func (w *BriefWriter) Synthesize(ctx context.Context, meetingName, emails, tasks, crmData string) string {
	prompt := buildPrompt(meetingName, emails, tasks, crmData)

	for _, tier := range w.tiers {
		resp, err := w.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: tier.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   w.maxTokens,
			Temperature: w.temperature,
		})
		if err != nil {
			if w.logger != nil {
				w.logger.Warn("model tier failed",
					zap.String("model", tier.Model),
					zap.Error(err),
				)
			}
			continue
		}
		if len(resp.Choices) == 0 {
			if w.logger != nil {
				w.logger.Warn("model tier returned no choices", zap.String("model", tier.Model))
			}
			continue
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content)
	}

	if w.logger != nil {
		w.logger.Error("❌ All model tiers failed, returning fixed failure message",
			zap.String("meeting", meetingName),
		)
	}
	return BriefUnavailableMessage
}

func buildPrompt(meetingName, emails, tasks, crmData string) string {
	return fmt.Sprintf(`You are an AI assistant. Summarize the following information for a meeting brief. Structure as:
- Key emails and updates
- Tasks pending or relevant
- CRM/client insights
- Suggested discussion points / next actions

Meeting: %s

Emails:
%s

Tasks:
%s

CRM Data:
%s
`, meetingName, emails, tasks, crmData)
}
