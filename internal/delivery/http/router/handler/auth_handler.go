// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"pledger/config"
	"pledger/internal/delivery/http/middleware"
	"pledger/internal/delivery/http/render"
	domainerrors "pledger/internal/domain/errors"
	"pledger/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SignupRequest represents the signup form fields.
type SignupRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest represents the login form fields.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// AuthHandler holds dependencies for the signup, login and logout pages.
type AuthHandler struct {
	uc         usecase.AuthUsecase
	cookieName string
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

// Index routes the root URL to the dashboard or the login page depending on
// whether a session exists.
func (h *AuthHandler) Index(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

// SignupPage renders the signup form.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", render.FormPage{})
}

// Signup handles the signup form submission.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusOK, "signup.html", render.FormPage{Error: domainerrors.ErrCredentialsRequired.Message()})
	}

	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "signup.html", render.FormPage{Error: domainerrors.ErrCredentialsRequired.Message()})
	}

	input := &usecase.SignupInput{
		Username: req.Username,
		Password: req.Password,
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		if domainerrors.IsValidation(err) {
			return c.Render(http.StatusOK, "signup.html", render.FormPage{Error: domainerrors.UserMessage(err)})
		}

		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.SessionToken, output.SessionExpiry)

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", render.FormPage{})
}

// Login handles the login form submission. Credential failures re-render the
// form with a deliberately unspecific message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", render.FormPage{Error: domainerrors.ErrInvalidCredentials.Message()})
	}

	// Missing credentials read the same as wrong ones.
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", render.FormPage{Error: domainerrors.ErrInvalidCredentials.Message()})
	}

	input := &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		if domainerrors.IsAuth(err) || domainerrors.IsValidation(err) {
			return c.Render(http.StatusOK, "login.html", render.FormPage{Error: domainerrors.UserMessage(err)})
		}

		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.SessionToken, output.SessionExpiry)

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout invalidates the session and clears the cookie. It never fails the
// user-visible flow, even with a missing or mangled cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{SessionToken: cookie.Value}); err != nil {
			h.logger.Warn("Logout failed", slog.Any("error", err))
		}
	}

	h.clearSessionCookie(c)

	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string, expiry time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
