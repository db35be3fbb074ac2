package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woodmart/storefront/internal/api/metrics"
	"github.com/woodmart/storefront/internal/core/domain"
	"github.com/woodmart/storefront/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates against the user table and signs the session in.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      plain
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      302
// @Success      200   {string}  string  "invalid credentials"
// @Failure      400   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	_, err = h.authService.Login(c.Request().Context(), sess, req.Username, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.String(http.StatusOK, "invalid credentials")
		}
		return err
	}

	return c.Redirect(http.StatusFound, "/")
}

// Register creates a regular user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      plain
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      302
// @Failure      400   {string}  string
// @Failure      409   {string}  string  "user already exists"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.Result(err)).Inc()
		return c.String(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	metrics.RegistrationsTotal.WithLabelValues(metrics.Result(err)).Inc()
	switch {
	case err == nil:
		return c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, domain.ErrUserExists):
		return c.String(http.StatusConflict, "user already exists")
	case errors.Is(err, domain.ErrValidation):
		return c.String(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}

// Logout ends the session and drops its cart.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), sess); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}
