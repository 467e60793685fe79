package booking

import (
	"time"

	"bookmeet-api/core/cache"
	"bookmeet-api/core/config"
	"bookmeet-api/core/database"
	"bookmeet-api/core/middleware"
	"bookmeet-api/core/storage"
	"bookmeet-api/core/worker"
	avrepository "bookmeet-api/modules/availability/repository"
	avservice "bookmeet-api/modules/availability/service"
	"bookmeet-api/modules/booking/controller"
	"bookmeet-api/modules/booking/repository"
	"bookmeet-api/modules/booking/router"
	"bookmeet-api/modules/booking/service"
	mtrepository "bookmeet-api/modules/meetingtype/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the booking module, registers routes and wires the
// background task handlers.
func Init(
	e *echo.Echo,
	db database.Database,
	c cache.Cache,
	w *worker.Worker,
	uploader storage.Uploader,
	loc *time.Location,
	cfg config.BookingConfig,
	mw *middleware.Middleware,
) {
	repo := repository.NewBookingRepository(db)
	mtRepo := mtrepository.NewMeetingTypeRepository(db)
	avRepo := avrepository.NewAvailabilityRepository(db)
	avSvc := avservice.NewAvailabilityService(avRepo, loc, c)

	svc := service.NewBookingService(repo, mtRepo, avSvc, c, w, uploader, cfg, loc)
	ctrl := controller.NewBookingController(svc)
	rtr := router.NewBookingRouter(ctrl)

	rtr.Setup(e, mw)

	if w != nil {
		w.HandleFunc(worker.TypeBookingCompletedSweep, svc.HandleCompletedSweep)
		w.HandleFunc(worker.TypeBookingICSUpload, svc.HandleICSUpload)
	}
}
