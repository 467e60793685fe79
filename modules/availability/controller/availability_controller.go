package controller

import (
	"bookmeet-api/core/controller"
	"bookmeet-api/core/errors"
	"bookmeet-api/modules/availability/dto"
	"bookmeet-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	controller.BaseController
	Service service.AvailabilityServiceInterface
}

// NewAvailabilityController creates a new controller
func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController: controller.NewBaseController(),
		Service:        svc,
	}
}

// Get handles GET /private/availability
// @Summary Get weekly availability
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AvailabilityResponse
// @Router /private/availability [get]
func (c *AvailabilityController) Get(ctx echo.Context) error {
	result, appErr := c.Service.GetAll(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Replace handles PUT /private/availability
// @Summary Replace weekly availability
// @Description Replaces the whole weekly schedule with the submitted rules
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ReplaceAvailabilityRequest true "Weekly rules"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability [put]
func (c *AvailabilityController) Replace(ctx echo.Context) error {
	var req dto.ReplaceAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body",
			controller.NewValidationError("body", err.Error()))
	}

	result, appErr := c.Service.Replace(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availability updated successfully")
}
