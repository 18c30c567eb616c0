// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pledger/internal/delivery/http/middleware"
	"pledger/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	CommitmentHandler *handler.CommitmentHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	commitmentHandler *handler.CommitmentHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		commitmentHandler: params.CommitmentHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public pages
	e.GET("/", r.authHandler.Index, r.sessionMiddleware.LoadUser)
	e.GET("/signup", r.authHandler.SignupPage)
	e.POST("/signup", r.authHandler.Signup)
	e.GET("/login", r.authHandler.LoginPage)
	e.POST("/login", r.authHandler.Login)
	e.GET("/logout", r.authHandler.Logout)

	// Pages that require a signed-in user
	appGroup := e.Group("")
	appGroup.Use(r.sessionMiddleware.RequireUser)
	{
		appGroup.GET("/dashboard", r.commitmentHandler.Dashboard)
		appGroup.GET("/commitments/new", r.commitmentHandler.NewPage)
		appGroup.POST("/commitments/new", r.commitmentHandler.Create)
		appGroup.GET("/commitments/:id/resolve", r.commitmentHandler.ResolvePage)
		appGroup.POST("/commitments/:id/resolve", r.commitmentHandler.Resolve)
	}
}
