package brief

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meeting-prep-team/meeting-prep-bot/errors"
	"github.com/meeting-prep-team/meeting-prep-bot/internal/domain/entities"
)

// Source is a single-source fetch-and-summarize unit. Implementations never
// return an error: every failure is converted to the source's error sentinel
// so callers can treat all three texts uniformly.
type Source interface {
	Kind() entities.SourceKind
	Fetch(ctx context.Context, query string) string
}

// Synthesizer turns the meeting name and the three source texts into a brief
// body. It always returns a displayable string.
type Synthesizer interface {
	Synthesize(ctx context.Context, meetingName, emails, tasks, crmData string) string
}

// ChatPoster posts plain text to a chat channel
type ChatPoster interface {
	PostMessage(ctx context.Context, channelID, text string) error
}

// MailRelay sends the brief over outbound mail
type MailRelay interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// failureNotice is posted in-channel when preparation or delivery failed
const failureNotice = "⚠️ Sorry, something went wrong while preparing your meeting brief."

// Service orchestrates one brief request: fan out to the sources, wait for
// all of them, synthesize, deliver.
type Service interface {
	HandleTrigger(ctx context.Context, query entities.MeetingQuery, channelID string)
}

type briefService struct {
	mail    Source
	tracker Source
	crm     Source
	writer  Synthesizer
	poster  ChatPoster
	relay   MailRelay
	logger  *zap.Logger
}

// NewService constructs the brief service
func NewService(mail, tracker, crm Source, writer Synthesizer, poster ChatPoster, relay MailRelay, logger *zap.Logger) Service {
	return &briefService{
		mail:    mail,
		tracker: tracker,
		crm:     crm,
		writer:  writer,
		poster:  poster,
		relay:   relay,
		logger:  logger,
	}
}

// HandleTrigger runs the full workflow for one trigger. Nothing escapes it:
// a delivery failure is logged and turned into a best-effort in-channel
// notice, so the platform acknowledgment can always report success.
func (s *briefService) HandleTrigger(ctx context.Context, query entities.MeetingQuery, channelID string) {
	if err := s.prepareAndDeliver(ctx, query, channelID); err != nil {
		if s.logger != nil {
			s.logger.Error("brief request failed",
				zap.String("meeting", query.Name),
				zap.String("channel", channelID),
				zap.Error(err),
			)
		}
		if perr := s.poster.PostMessage(ctx, channelID, failureNotice); perr != nil {
			// Channel itself unreachable; nowhere left to notify
			if s.logger != nil {
				s.logger.Error("failed to post failure notice",
					zap.String("channel", channelID),
					zap.Error(perr),
				)
			}
		}
	}
}

func (s *briefService) prepareAndDeliver(ctx context.Context, query entities.MeetingQuery, channelID string) error {
	results := s.collectSources(ctx, query.Name)

	brief := entities.MeetingBrief{
		MeetingName: query.Name,
		Body: s.writer.Synthesize(ctx, query.Name,
			results[0].Text, // mail
			results[1].Text, // issue tracker
			results[2].Text, // crm
		),
	}

	// Chat post and mail relay are independent attempts; one failing must
	// not stop the other.
	var failed error
	if err := s.poster.PostMessage(ctx, channelID, brief.Body); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to post brief to channel",
				zap.String("channel", channelID),
				zap.Error(err),
			)
		}
		failed = errors.ErrDeliveryFailed("slack", err)
	}
	if len(query.Recipients) > 0 {
		if err := s.relay.Send(ctx, query.Recipients, brief.Subject(), brief.Body); err != nil {
			if s.logger != nil {
				s.logger.Error("failed to relay brief by mail",
					zap.Strings("recipients", query.Recipients),
					zap.Error(err),
				)
			}
			if failed == nil {
				failed = errors.ErrDeliveryFailed("smtp", err)
			}
		}
	}
	if failed == nil && s.logger != nil {
		s.logger.Info("✅ Brief delivered",
			zap.String("meeting", query.Name),
			zap.String("channel", channelID),
			zap.Int("mail_recipients", len(query.Recipients)),
		)
	}
	return failed
}

// collectSources issues the three fetches concurrently and waits for all of
// them. Results come back in fixed source order (mail, tracker, crm)
// regardless of completion order.
func (s *briefService) collectSources(ctx context.Context, meetingName string) []entities.SourceResult {
	sources := []Source{s.mail, s.tracker, s.crm}
	results := make([]entities.SourceResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = entities.SourceResult{
				Kind: src.Kind(),
				Text: src.Fetch(gctx, meetingName),
			}
			return nil
		})
	}
	// Sources never return errors; Wait is purely a join barrier here
	_ = g.Wait()
	return results
}
