package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woodmart/storefront/internal/api/middleware"
	"github.com/woodmart/storefront/internal/core/domain"
)

// currentSession returns the session injected by the Session middleware.
// A missing session means the route was mounted without the middleware.
func currentSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	return sess, nil
}
