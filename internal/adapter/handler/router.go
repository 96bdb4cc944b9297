package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	slackHandler *SlackWebhookHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, slackHandler *SlackWebhookHandler) *Router {
	return &Router{
		cfg:          cfg,
		slackHandler: slackHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Single inbound route: Slack posts handshakes, slash commands, and
	// event callbacks here
	e.POST("/slack/events", rt.slackHandler.HandleSlackEvent)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
