package router

import (
	"bookmeet-api/core/middleware"
	"bookmeet-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

// AvailabilityRouter handles availability routes
type AvailabilityRouter struct {
	Controller *controller.AvailabilityController
}

// NewAvailabilityRouter creates a new router
func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{Controller: ctrl}
}

// Setup registers availability routes
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	private := v1.Group("/private", mw.AuthMiddleware())

	private.GET("/availability", r.Controller.Get)
	private.PUT("/availability", r.Controller.Replace)
}
