package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin lets only administrators through. Everyone else, anonymous
// callers included, gets a plain-text 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := IdentityFrom(c).RequireAdmin(); err != nil {
				return c.String(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
