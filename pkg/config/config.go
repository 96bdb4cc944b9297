package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration. Loaded once at startup and treated
// as read-only for the process lifetime.
type Config struct {
	Server  ServerConfig
	Slack   SlackConfig
	Mailbox MailboxConfig
	HubSpot HubSpotConfig
	Linear  LinearConfig
	OpenAI  OpenAIConfig
	SMTP    SMTPConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Host            string `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// SlackConfig holds Slack platform credentials
type SlackConfig struct {
	BotToken      string `envconfig:"SLACK_BOT_TOKEN"`
	SigningSecret string `envconfig:"SLACK_SIGNING_SECRET"`
	SlashCommand  string `envconfig:"SLACK_SLASH_COMMAND" default:"/brief"`
}

// MailboxConfig holds IMAP mailbox credentials
type MailboxConfig struct {
	Addr     string `envconfig:"IMAP_ADDR" default:"imap.gmail.com:993"`
	Folder   string `envconfig:"IMAP_FOLDER" default:"INBOX"`
	User     string `envconfig:"GMAIL_USER"`
	Password string `envconfig:"GMAIL_PASSWORD"`
}

// HubSpotConfig holds HubSpot CRM API configuration
type HubSpotConfig struct {
	APIKey  string `envconfig:"HUBSPOT_API_KEY"`
	BaseURL string `envconfig:"HUBSPOT_API_URL" default:"https://api.hubapi.com"`
}

// LinearConfig holds Linear issue tracker API configuration
type LinearConfig struct {
	APIKey  string `envconfig:"LINEAR_API_KEY"`
	BaseURL string `envconfig:"LINEAR_API_URL" default:"https://api.linear.app/graphql"`
}

// OpenAIConfig holds generative model configuration. Model is the primary
// tier; FallbackModel is tried when the primary fails.
type OpenAIConfig struct {
	APIKey        string  `envconfig:"OPENAI_API_KEY"`
	Model         string  `envconfig:"OPENAI_MODEL" default:"gpt-4"`
	FallbackModel string  `envconfig:"OPENAI_FALLBACK_MODEL" default:"gpt-3.5-turbo"`
	MaxTokens     int     `envconfig:"OPENAI_MAX_TOKENS" default:"600"`
	Temperature   float32 `envconfig:"OPENAI_TEMPERATURE" default:"0.5"`
}

// SMTPConfig holds outbound mail relay configuration
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"MAIL_FROM"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// SMTP submission reuses the mailbox account unless overridden
	if cfg.SMTP.User == "" {
		cfg.SMTP.User = cfg.Mailbox.User
	}
	if cfg.SMTP.Password == "" {
		cfg.SMTP.Password = cfg.Mailbox.Password
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration. Source adapter credentials are not
// required here: a missing key degrades that source to its error sentinel
// instead of preventing startup.
func (c *Config) Validate() error {
	if c.Slack.BotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if c.Slack.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
