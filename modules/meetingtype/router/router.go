package router

import (
	"bookmeet-api/core/middleware"
	"bookmeet-api/modules/meetingtype/controller"

	"github.com/labstack/echo/v4"
)

// MeetingTypeRouter handles meeting type routes
type MeetingTypeRouter struct {
	Controller *controller.MeetingTypeController
}

// NewMeetingTypeRouter creates a new router
func NewMeetingTypeRouter(ctrl *controller.MeetingTypeController) *MeetingTypeRouter {
	return &MeetingTypeRouter{Controller: ctrl}
}

// Setup registers meeting type routes
func (r *MeetingTypeRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public routes used by the booking page
	public := v1.Group("/public")
	public.GET("/meeting-types", r.Controller.List)
	public.GET("/meeting-types/:slug", r.Controller.GetBySlug)

	// Private routes for the organizer
	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/meeting-types", r.Controller.Create)
	private.GET("/meeting-types", r.Controller.List)
	private.GET("/meeting-types/:id", r.Controller.Get)
	private.PUT("/meeting-types/:id", r.Controller.Update)
	private.DELETE("/meeting-types/:id", r.Controller.Delete)
}
