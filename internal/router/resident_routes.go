package router

import (
	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/handler"
	"github.com/adityasharma9336/society-management-system/internal/middleware"
	"github.com/adityasharma9336/society-management-system/internal/model"
)

// ResidentHandlers bundles the handlers reachable by every
// authenticated role. Staff can do everything a resident can, so
// these routes accept all three roles; ownership checks inside the
// handlers keep residents scoped to their own records.
type ResidentHandlers struct {
	Visitors   *handler.VisitorHandler
	Amenities  *handler.AmenityHandler
	Bookings   *handler.BookingHandler
	Polls      *handler.PollHandler
	Bills      *handler.BillHandler
	Complaints *handler.ComplaintHandler
	Notices    *handler.NoticeHandler
}

// RegisterResident registers endpoints shared by all authenticated
// users under /api.
func RegisterResident(e *echo.Echo, h ResidentHandlers, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleResident, model.RoleGuard),
		rl,
	)

	g.POST("/visitors", h.Visitors.Register)
	g.GET("/visitors/mine", h.Visitors.ListMine)
	g.GET("/visitors/stats", h.Visitors.Stats)
	g.PUT("/visitors/:id/exit", h.Visitors.CheckOut)

	g.GET("/amenities", h.Amenities.List)
	g.POST("/amenities/book", h.Bookings.Request)
	g.GET("/bookings/mine", h.Bookings.ListMine)
	g.PUT("/bookings/:id/cancel", h.Bookings.Cancel)

	g.GET("/polls", h.Polls.List)
	g.PUT("/polls/:id/vote", h.Polls.Vote)

	g.GET("/bills/mine", h.Bills.ListMine)
	g.POST("/bills/:id/pay", h.Bills.Pay)

	g.POST("/complaints", h.Complaints.Create)
	g.GET("/complaints/mine", h.Complaints.ListMine)

	g.GET("/notices", h.Notices.List)
}
