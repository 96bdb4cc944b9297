package smtprelay

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

func TestSend_BuildsMessage(t *testing.T) {
	var captured *gomail.Message
	m := NewMailer(&config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "bot@example.com"}, zap.NewNop())
	m.send = func(msg *gomail.Message) error {
		captured = msg
		return nil
	}

	err := m.Send(context.Background(), []string{"alice@x.com", "bob@x.com"}, "Meeting Brief: Q3", "body text")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if captured == nil {
		t.Fatal("expected a message to be sent")
	}
	if got := captured.GetHeader("Subject"); len(got) != 1 || got[0] != "Meeting Brief: Q3" {
		t.Fatalf("unexpected subject %v", got)
	}
	if got := captured.GetHeader("To"); len(got) != 2 {
		t.Fatalf("expected 2 recipients, got %v", got)
	}
	if got := captured.GetHeader("From"); len(got) != 1 || got[0] != "bot@example.com" {
		t.Fatalf("unexpected from %v", got)
	}
}

func TestSend_PropagatesError(t *testing.T) {
	m := NewMailer(&config.SMTPConfig{}, zap.NewNop())
	m.send = func(_ *gomail.Message) error { return errors.New("smtp down") }

	if err := m.Send(context.Background(), []string{"a@x.com"}, "s", "b"); err == nil {
		t.Fatal("expected error from failed send")
	}
}
