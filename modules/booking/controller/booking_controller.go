package controller

import (
	"net/http"
	"strconv"

	"bookmeet-api/core/controller"
	"bookmeet-api/core/errors"
	"bookmeet-api/modules/booking/dto"
	"bookmeet-api/modules/booking/service"

	"github.com/labstack/echo/v4"
)

// BookingController handles booking HTTP requests
type BookingController struct {
	controller.BaseController
	Service service.BookingServiceInterface
}

// NewBookingController creates a new controller
func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		Service:        svc,
	}
}

// ListSlots handles GET /public/booking/:slug/slots
// @Summary List bookable slots for a meeting type on a date
// @Tags Booking
// @Produce json
// @Param slug path string true "Meeting type slug"
// @Param date query string true "Date in YYYY-MM-DD format"
// @Success 200 {object} dto.SlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /public/booking/{slug}/slots [get]
func (c *BookingController) ListSlots(ctx echo.Context) error {
	slug := ctx.Param("slug")
	date := ctx.QueryParam("date")
	if date == "" {
		return c.BadRequest(errors.ErrInvalidInput, "date query parameter is required")
	}

	result, appErr := c.Service.ListSlots(ctx.Request().Context(), slug, date)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Schedule handles POST /public/booking/:slug/schedule
// @Summary Book a slot
// @Tags Booking
// @Accept json
// @Produce json
// @Param slug path string true "Meeting type slug"
// @Param request body dto.ScheduleRequest true "Booking details"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/booking/{slug}/schedule [post]
func (c *BookingController) Schedule(ctx echo.Context) error {
	slug := ctx.Param("slug")

	var req dto.ScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body",
			controller.NewValidationError("body", err.Error()))
	}

	result, appErr := c.Service.Schedule(ctx.Request().Context(), slug, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking confirmed")
}

// DownloadICS handles GET /public/bookings/:reference/ics
// @Summary Download the calendar invite for a booking
// @Tags Booking
// @Produce text/calendar
// @Param reference path string true "Booking reference"
// @Success 200 {string} string
// @Failure 404 {object} errors.AppError
// @Router /public/bookings/{reference}/ics [get]
func (c *BookingController) DownloadICS(ctx echo.Context) error {
	reference := ctx.Param("reference")

	filename, body, appErr := c.Service.GetICS(ctx.Request().Context(), reference)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// List handles GET /private/bookings
// @Summary List bookings, optionally within a date range
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param from query string false "Range start in YYYY-MM-DD format"
// @Param to query string false "Range end in YYYY-MM-DD format"
// @Success 200 {array} dto.BookingResponse
// @Router /private/bookings [get]
func (c *BookingController) List(ctx echo.Context) error {
	from := ctx.QueryParam("from")
	to := ctx.QueryParam("to")

	result, appErr := c.Service.GetAll(ctx.Request().Context(), from, to)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Get handles GET /private/bookings/:id
// @Summary Get booking
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} errors.AppError
// @Router /private/bookings/{id} [get]
func (c *BookingController) Get(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.Service.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateStatus handles PATCH /private/bookings/:id/status
// @Summary Update booking status
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Router /private/bookings/{id}/status [patch]
func (c *BookingController) UpdateStatus(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	var req dto.UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body",
			controller.NewValidationError("body", err.Error()))
	}

	result, appErr := c.Service.UpdateStatus(ctx.Request().Context(), id, req.Status)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking status updated")
}

// Delete handles DELETE /private/bookings/:id
// @Summary Delete booking
// @Tags Booking
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/bookings/{id} [delete]
func (c *BookingController) Delete(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	appErr := c.Service.Delete(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Booking deleted successfully")
}

// Stats handles GET /private/stats
// @Summary Booking statistics for the dashboard
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /private/stats [get]
func (c *BookingController) Stats(ctx echo.Context) error {
	result, appErr := c.Service.Stats(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
