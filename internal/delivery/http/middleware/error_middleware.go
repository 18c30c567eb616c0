package middleware

import (
	"log/slog"
	"net/http"

	"pledger/internal/delivery/http/render"
	domainerrors "pledger/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Handlers render
// form errors inline themselves, so anything arriving here is either a
// navigation problem or an unexpected failure.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.HTTPCode() {
		case http.StatusUnauthorized:
			_ = c.Redirect(http.StatusSeeOther, "/login")
		case http.StatusNotFound:
			_ = c.Redirect(http.StatusSeeOther, "/dashboard")
		default:
			m.renderErrorPage(c, appErr.HTTPCode(), appErr.Message())
		}

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if text, ok := httpErr.Message.(string); ok {
			message = text
		}
		m.renderErrorPage(c, httpErr.Code, message)

		return
	}

	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	m.renderErrorPage(c, http.StatusInternalServerError, domainerrors.ErrInternalError.Message())
}

func (m *ErrorMiddleware) renderErrorPage(c echo.Context, status int, message string) {
	page := render.ErrorPage{Status: status, Message: message}
	if err := c.Render(status, "error.html", page); err != nil {
		m.logger.Error("Failed to render error page", slog.Any("error", err))
		_ = c.NoContent(status)
	}
}
