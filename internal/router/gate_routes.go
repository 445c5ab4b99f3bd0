package router

import (
	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/handler"
	"github.com/adityasharma9336/society-management-system/internal/middleware"
	"github.com/adityasharma9336/society-management-system/internal/model"
)

// RegisterGate registers the gate-desk endpoints under /api. Visitor
// decisions, check-in and the society-wide visitor list are limited
// to admins and guards.
func RegisterGate(e *echo.Echo, h *handler.VisitorHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleGuard),
		rl,
	)

	g.GET("/visitors", h.ListAll)
	g.PUT("/visitors/:id/status", h.Decide)
	g.PUT("/visitors/:id/checkin", h.CheckIn)
}
