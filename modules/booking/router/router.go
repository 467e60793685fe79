package router

import (
	"bookmeet-api/core/middleware"
	"bookmeet-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

// BookingRouter handles booking routes
type BookingRouter struct {
	Controller *controller.BookingController
}

// NewBookingRouter creates a new router
func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

// Setup registers booking routes
func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public routes used by the booking page
	public := v1.Group("/public")
	public.GET("/booking/:slug/slots", r.Controller.ListSlots)
	public.POST("/booking/:slug/schedule", r.Controller.Schedule)
	public.GET("/bookings/:reference/ics", r.Controller.DownloadICS)

	// Private routes for the organizer
	private := v1.Group("/private", mw.AuthMiddleware())
	private.GET("/bookings", r.Controller.List)
	private.GET("/bookings/:id", r.Controller.Get)
	private.PATCH("/bookings/:id/status", r.Controller.UpdateStatus)
	private.DELETE("/bookings/:id", r.Controller.Delete)
	private.GET("/stats", r.Controller.Stats)
}
