package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Role gates run after Auth. Each is an independent predicate over the loaded
// identity (not the raw token claim, so a role change takes effect on the
// next request) and may be chained in any order.

// RequireRole admits identities whose role is in the allowed set.
func RequireRole(log zerolog.Logger, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	msg := "requires " + strings.Join(allowedRoles, " or ") + " role"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return reject(c, log, http.StatusUnauthorized, "no_token", "missing authentication")
			}
			if _, ok := allowed[id.Role]; !ok {
				return reject(c, log, http.StatusForbidden, "forbidden", msg)
			}
			return next(c)
		}
	}
}

// RequireAdmin admits identities with the admin flag.
func RequireAdmin(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return reject(c, log, http.StatusUnauthorized, "no_token", "missing authentication")
			}
			if !id.IsAdmin {
				return reject(c, log, http.StatusForbidden, "forbidden", "requires admin privileges")
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin admits the identity named by the path parameter, or any
// admin.
func RequireSelfOrAdmin(log zerolog.Logger, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return reject(c, log, http.StatusUnauthorized, "no_token", "missing authentication")
			}
			if c.Param(param) != id.ID && !id.IsAdmin {
				return reject(c, log, http.StatusForbidden, "forbidden", "not your resource")
			}
			return next(c)
		}
	}
}
