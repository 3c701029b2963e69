package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/api/metrics"
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// tokenHeader is the custom header accepted alongside the standard
// Bearer-prefixed Authorization header.
const tokenHeader = "X-Auth-Token"

// IdentityLoader resolves a token subject to an account. Satisfied by the
// user repository.
type IdentityLoader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth extracts and verifies the bearer token, loads the identity it names,
// checks the account is active, and injects a normalized identity view into
// the request context.
func Auth(tokens ports.TokenService, users IdentityLoader, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return reject(c, log, http.StatusUnauthorized, "no_token", "missing auth token")
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				return reject(c, log, http.StatusUnauthorized, "invalid_token", err.Error())
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return reject(c, log, http.StatusUnauthorized, "unknown_subject", "unknown subject")
			}
			if !user.IsActive {
				return reject(c, log, http.StatusUnauthorized, "deactivated", "account deactivated")
			}

			SetIdentity(c, &AuthIdentity{
				ID:       user.ID,
				Email:    user.Email,
				Role:     user.Role,
				IsAdmin:  user.IsAdmin,
				FullName: user.FullName,
			})
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if t := c.Request().Header.Get(tokenHeader); t != "" {
		return t
	}
	auth := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// reject records the rejection for observability and returns the HTTP error.
// Reporting never blocks the response.
func reject(c echo.Context, log zerolog.Logger, status int, reason, msg string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()

	evt := log.Warn().
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Path())
	if id, ok := IdentityFrom(c); ok {
		evt = evt.Str("user_id", id.ID)
	}
	evt.Msg("request rejected")

	return echo.NewHTTPError(status, msg)
}
