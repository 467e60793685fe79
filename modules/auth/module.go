package auth

import (
	"bookmeet-api/core/cache"
	"bookmeet-api/core/config"
	"bookmeet-api/modules/auth/controller"
	"bookmeet-api/modules/auth/router"
	"bookmeet-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, cfg config.AuthConfig, c cache.Cache) error {
	svc, err := service.NewAuthService(cfg.OrganizerEmail, cfg.OrganizerPassword, c)
	if err != nil {
		return err
	}

	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)
	rtr.Setup(e)

	return nil
}
