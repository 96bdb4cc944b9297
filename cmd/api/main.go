package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	pkgvalidator "github.com/meeting-prep-team/meeting-prep-bot/pkg/validator"

	"github.com/meeting-prep-team/meeting-prep-bot/internal/adapter/handler"
	"github.com/meeting-prep-team/meeting-prep-bot/internal/infrastructure/external/hubspot"
	"github.com/meeting-prep-team/meeting-prep-bot/internal/infrastructure/external/linearapi"
	"github.com/meeting-prep-team/meeting-prep-bot/internal/infrastructure/external/mailbox"
	"github.com/meeting-prep-team/meeting-prep-bot/internal/infrastructure/external/slackapi"
	"github.com/meeting-prep-team/meeting-prep-bot/internal/infrastructure/external/smtprelay"
	briefuse "github.com/meeting-prep-team/meeting-prep-bot/internal/usecase/brief"
	pkgai "github.com/meeting-prep-team/meeting-prep-bot/pkg/ai"
	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Request IDs for log correlation
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize source adapters
	log.Println("🔧 Initializing source adapters...")
	mailSource := mailbox.NewClient(&cfg.Mailbox, logger)
	taskSource := linearapi.NewClient(&cfg.Linear, logger)
	crmSource := hubspot.NewClient(&cfg.HubSpot, logger)

	// Initialize brief synthesizer
	log.Println("🤖 Initializing brief synthesizer...")
	writer := pkgai.NewBriefWriter(&cfg.OpenAI, logger)

	// Initialize delivery sinks
	log.Println("📬 Initializing delivery sinks...")
	poster := slackapi.NewPoster(&cfg.Slack, logger)
	relay := smtprelay.NewMailer(&cfg.SMTP, logger)

	// Initialize brief service
	log.Println("✨ Initializing brief service...")
	briefService := briefuse.NewService(mailSource, taskSource, crmSource, writer, poster, relay, logger)

	// Initialize Slack webhook handler
	log.Println("🪝 Initializing Slack webhook handler...")
	slackHandler := handler.NewSlackWebhookHandler(briefService, cfg.Slack.SigningSecret, cfg.Slack.SlashCommand, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, slackHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.Server.Addr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
