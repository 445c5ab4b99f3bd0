package router

import (
	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/handler"
	"github.com/adityasharma9336/society-management-system/internal/middleware"
	"github.com/adityasharma9336/society-management-system/internal/model"
)

// AdminHandlers bundles the handlers behind the ADMIN-only routes.
type AdminHandlers struct {
	Amenities  *handler.AmenityHandler
	Bookings   *handler.BookingHandler
	Polls      *handler.PollHandler
	Bills      *handler.BillHandler
	Complaints *handler.ComplaintHandler
	Notices    *handler.NoticeHandler
}

// RegisterAdmin registers management endpoints under /api, all
// requiring the ADMIN role.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
		rl,
	)

	g.POST("/amenities", h.Amenities.Create)
	g.PUT("/amenities/:id", h.Amenities.Update)
	g.GET("/bookings", h.Bookings.ListAll)
	g.PUT("/bookings/:id/status", h.Bookings.SetStatus)

	g.POST("/polls", h.Polls.Create)
	g.PUT("/polls/:id/close", h.Polls.Close)

	g.GET("/bills", h.Bills.ListAll)
	g.POST("/bills", h.Bills.Create)
	g.POST("/bills/bulk", h.Bills.CreateBulk)
	g.POST("/admin/bills/generate", h.Bills.Generate)

	g.GET("/complaints", h.Complaints.ListAll)
	g.PUT("/complaints/:id/status", h.Complaints.SetStatus)

	g.POST("/notices", h.Notices.Create)
}
