package smtprelay

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

// Mailer relays brief text over authenticated SMTP submission. A fresh
// dialer is used per send; no session state is shared between requests.
type Mailer struct {
	cfg    *config.SMTPConfig
	send   func(m *gomail.Message) error
	logger *zap.Logger
}

// NewMailer creates a mailer from config
func NewMailer(cfg *config.SMTPConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// Send relays a plain-text body to the given recipients
func (m *Mailer) Send(_ context.Context, to []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.send(msg); err != nil {
		return err
	}
	if m.logger != nil {
		m.logger.Info("relayed brief by mail",
			zap.Strings("recipients", to),
			zap.String("subject", subject),
		)
	}
	return nil
}
