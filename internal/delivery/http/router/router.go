// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"mealtrack/internal/delivery/http/middleware"
	"mealtrack/internal/delivery/http/router/handler"
	"mealtrack/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	AccountHandler      *handler.AccountHandler
	AdminHandler        *handler.AdminHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
	LoggerMiddleware    *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	accountHandler      *handler.AccountHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
	loggerMiddleware    *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		accountHandler:      params.AccountHandler,
		adminHandler:        params.AdminHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
		loggerMiddleware:    params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)
	e.Use(r.loggerMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth and setup routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/setup/status", r.authHandler.SetupStatus)
		authGroup.POST("/setup/superadmin", r.authHandler.CreateSuperadmin)

		// Session routes require a valid access token
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/session", r.authHandler.Session, r.authMiddleware.Authenticate)
	}

	// Account routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.accountHandler.GetProfile)
		userGroup.PUT("/profile", r.accountHandler.UpdateProfile)
		userGroup.DELETE("/account", r.accountHandler.DeleteAccount)
	}

	// Admin routes require authentication and a staff role. Fine-grained
	// capability checks live in the usecase layer next to the mutations.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleModerator))
	{
		adminGroup.GET("/users", r.adminHandler.ListAccounts)
		adminGroup.POST("/users/:id/suspend", r.adminHandler.SuspendUser)
		adminGroup.POST("/users/:id/reactivate", r.adminHandler.ReactivateUser)
		adminGroup.PUT("/users/:id/role", r.adminHandler.UpdateRole)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)
		adminGroup.GET("/users/:id/subscription-history", r.adminHandler.SubscriptionHistory)

		analyticsGroup := adminGroup.Group("", r.authMiddleware.RequireCapability(entity.CapViewAnalytics))
		analyticsGroup.GET("/stats", r.adminHandler.Stats)
		analyticsGroup.GET("/subscription-events", r.adminHandler.RecentSubscriptionEvents)
	}
}
