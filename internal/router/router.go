// Package router wires the HTTP routes to their handlers and applies
// the JWT and role middleware per group. Public routes live at the
// top level, authenticated routes under /api.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/handler"
	"github.com/adityasharma9336/society-management-system/internal/middleware"
	"github.com/adityasharma9336/society-management-system/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints under /api/auth and
// the authenticated profile endpoint. The limiter runs after JWTAuth
// on authenticated routes so its key carries the user identity; on
// the public session routes it throttles per IP.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group("/api/auth", rl)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/api")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleResident, model.RoleGuard))
	auth.Use(rl)
	auth.GET("/me", a.Me)
}
