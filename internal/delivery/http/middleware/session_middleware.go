package middleware

import (
	"net/http"

	"pledger/config"
	"pledger/internal/domain/entity"
	"pledger/internal/usecase"

	"github.com/labstack/echo/v4"
)

// keyCurrentUser is the echo.Context key the authenticated user is stored under.
const keyCurrentUser = "currentUser"

// SessionMiddleware resolves the session cookie to a user for protected pages.
type SessionMiddleware struct {
	authUC     usecase.AuthUsecase
	cookieName string
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(authUC usecase.AuthUsecase, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		authUC:     authUC,
		cookieName: cfg.Session.CookieName,
	}
}

// RequireUser loads the current user from the session cookie, redirecting to
// the login page when no valid session exists. Handlers downstream can rely
// on CurrentUser returning a non-nil user.
func (m *SessionMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolveUser(c)
		if err != nil {
			return err
		}
		if user == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(keyCurrentUser, user)

		return next(c)
	}
}

// LoadUser resolves the session without enforcing it, for pages that only
// branch on whether someone is signed in.
func (m *SessionMiddleware) LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolveUser(c)
		if err != nil {
			return err
		}
		if user != nil {
			c.Set(keyCurrentUser, user)
		}

		return next(c)
	}
}

func (m *SessionMiddleware) resolveUser(c echo.Context) (*entity.User, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	return m.authUC.CurrentUser(c.Request().Context(), cookie.Value)
}

// CurrentUser returns the user placed on the context by RequireUser or
// LoadUser, or nil when the request is anonymous.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(keyCurrentUser).(*entity.User)

	return user
}
