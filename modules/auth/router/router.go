package router

import (
	"bookmeet-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles authentication routes
type AuthRouter struct {
	Controller *controller.AuthController
}

// NewAuthRouter creates a new router
func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{Controller: ctrl}
}

// Setup registers authentication routes
func (r *AuthRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", r.Controller.Login)
}
