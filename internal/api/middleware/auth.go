package middleware

import (
	"github.com/labstack/echo/v4"
)

// RequireUser rejects anonymous callers before the handler runs. The error
// is rendered as JSON 401 by the HTTP error handler.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := IdentityFrom(c).RequireUser(); err != nil {
				return err
			}
			return next(c)
		}
	}
}
