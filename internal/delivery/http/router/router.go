// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"stride/internal/delivery/http/middleware"
	"stride/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	HabitHandler   *handler.HabitHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	habitHandler   *handler.HabitHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		habitHandler:   params.HabitHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Habit routes, all behind JWT authentication
	habitGroup := e.Group("/habits")
	habitGroup.Use(r.authMiddleware.Authenticate)
	{
		habitGroup.POST("/add", r.habitHandler.Add)
		habitGroup.GET("/mine", r.habitHandler.Mine)
		habitGroup.POST("/fail", r.habitHandler.Fail)
		habitGroup.POST("/urge", r.habitHandler.Urge)
		habitGroup.DELETE("/:habitId", r.habitHandler.Delete)
		habitGroup.POST("/share", r.habitHandler.Share)
		habitGroup.GET("/shared", r.habitHandler.Shared)
		habitGroup.GET("/:habitId/qr", r.habitHandler.QR)
	}
}
