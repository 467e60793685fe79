package controller

import (
	"strconv"

	"bookmeet-api/core/controller"
	"bookmeet-api/core/errors"
	"bookmeet-api/modules/meetingtype/dto"
	"bookmeet-api/modules/meetingtype/service"

	"github.com/labstack/echo/v4"
)

// MeetingTypeController handles meeting type HTTP requests
type MeetingTypeController struct {
	controller.BaseController
	Service service.MeetingTypeServiceInterface
}

// NewMeetingTypeController creates a new controller
func NewMeetingTypeController(svc service.MeetingTypeServiceInterface) *MeetingTypeController {
	return &MeetingTypeController{
		BaseController: controller.NewBaseController(),
		Service:        svc,
	}
}

// Create handles POST /private/meeting-types
// @Summary Create meeting type
// @Tags MeetingType
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingTypeRequest true "Meeting type details"
// @Success 200 {object} dto.MeetingTypeResponse
// @Failure 400 {object} errors.AppError
// @Router /private/meeting-types [post]
func (c *MeetingTypeController) Create(ctx echo.Context) error {
	var req dto.CreateMeetingTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body",
			controller.NewValidationError("body", err.Error()))
	}

	result, appErr := c.Service.Create(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting type created successfully")
}

// List handles GET /private/meeting-types and GET /public/meeting-types
// @Summary List meeting types
// @Tags MeetingType
// @Produce json
// @Success 200 {array} dto.MeetingTypeResponse
// @Router /public/meeting-types [get]
func (c *MeetingTypeController) List(ctx echo.Context) error {
	result, appErr := c.Service.GetAll(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Get handles GET /private/meeting-types/:id
// @Summary Get meeting type
// @Tags MeetingType
// @Security BearerAuth
// @Produce json
// @Param id path int true "Meeting type ID"
// @Success 200 {object} dto.MeetingTypeResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meeting-types/{id} [get]
func (c *MeetingTypeController) Get(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting type ID")
	}

	result, appErr := c.Service.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetBySlug handles GET /public/meeting-types/:slug
// @Summary Get meeting type by slug
// @Tags MeetingType
// @Produce json
// @Param slug path string true "Meeting type slug"
// @Success 200 {object} dto.MeetingTypeResponse
// @Failure 404 {object} errors.AppError
// @Router /public/meeting-types/{slug} [get]
func (c *MeetingTypeController) GetBySlug(ctx echo.Context) error {
	slugName := ctx.Param("slug")
	if slugName == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting type slug")
	}

	result, appErr := c.Service.GetBySlug(ctx.Request().Context(), slugName)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /private/meeting-types/:id
// @Summary Update meeting type
// @Tags MeetingType
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Meeting type ID"
// @Param request body dto.UpdateMeetingTypeRequest true "Fields to update"
// @Success 200 {object} dto.MeetingTypeResponse
// @Failure 400 {object} errors.AppError
// @Router /private/meeting-types/{id} [put]
func (c *MeetingTypeController) Update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting type ID")
	}

	var req dto.UpdateMeetingTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body",
			controller.NewValidationError("body", err.Error()))
	}

	result, appErr := c.Service.Update(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting type updated successfully")
}

// Delete handles DELETE /private/meeting-types/:id
// @Summary Delete meeting type
// @Tags MeetingType
// @Security BearerAuth
// @Param id path int true "Meeting type ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/meeting-types/{id} [delete]
func (c *MeetingTypeController) Delete(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting type ID")
	}

	appErr := c.Service.Delete(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Meeting type deleted successfully")
}
