package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"signalgate/internal/auth"
	"signalgate/internal/delivery/http/dto"
	custommiddleware "signalgate/internal/middleware"
)

// ServiceName identifies this service in the root and health payloads
const ServiceName = "signalgate"

// Version is the reported service version
const Version = "0.1.0"

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	WebhookHandler *WebhookHandler
	SignalHandler  *SignalHandler

	// Secret and Audience drive token verification on the submission route
	Secret   string
	Audience string
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for polling endpoints to reduce noise
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Service description
	e.GET("/", func(c echo.Context) error {
		return SuccessResponse(c, dto.ServiceInfo{
			Service: ServiceName,
			Version: Version,
			Endpoints: map[string]string{
				"submit":  "POST /webhook",
				"signals": "GET /signals?limit=N",
				"health":  "GET /health",
			},
		})
	})

	// Health check. secret_configured is a configuration-sanity signal:
	// false means the shared secret is still the development placeholder.
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, dto.HealthResponse{
			Status:           "healthy",
			Service:          ServiceName,
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			SecretConfigured: auth.SecretConfigured(config.Secret),
		})
	})

	// Submission (protected with TokenMiddleware)
	e.POST("/webhook", config.WebhookHandler.Submit,
		custommiddleware.TokenMiddleware(config.Secret, config.Audience))

	// Read-back (public)
	e.GET("/signals", config.SignalHandler.List)
}
