package availability

import (
	"time"

	"bookmeet-api/core/cache"
	"bookmeet-api/core/database"
	"bookmeet-api/core/middleware"
	"bookmeet-api/modules/availability/controller"
	"bookmeet-api/modules/availability/repository"
	"bookmeet-api/modules/availability/router"
	"bookmeet-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.Database, c cache.Cache, loc *time.Location, mw *middleware.Middleware) {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo, loc, c)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
