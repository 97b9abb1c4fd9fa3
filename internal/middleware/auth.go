package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"signalgate/internal/auth"
	"signalgate/internal/metrics"
)

// TokenMiddleware validates the Bearer token on submission requests.
// Rejections carry a reason that distinguishes "expired" from "invalid"
// for diagnostics; no persistence happens on a rejected request.
func TokenMiddleware(secret, audience string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.SignalsRejected.WithLabelValues("unauthorized").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication token")
			}

			// Extract token from Bearer scheme
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				metrics.SignalsRejected.WithLabelValues("unauthorized").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			if err := auth.VerifyToken(secret, audience, parts[1]); err != nil {
				metrics.SignalsRejected.WithLabelValues("unauthorized").Inc()
				if errors.Is(err, auth.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			return next(c)
		}
	}
}
