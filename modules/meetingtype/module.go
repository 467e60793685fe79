package meetingtype

import (
	"bookmeet-api/core/database"
	"bookmeet-api/core/middleware"
	"bookmeet-api/modules/meetingtype/controller"
	"bookmeet-api/modules/meetingtype/repository"
	"bookmeet-api/modules/meetingtype/router"
	"bookmeet-api/modules/meetingtype/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting type module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewMeetingTypeRepository(db)
	svc := service.NewMeetingTypeService(repo)
	ctrl := controller.NewMeetingTypeController(svc)
	rtr := router.NewMeetingTypeRouter(ctrl)

	rtr.Setup(e, mw)
}
