package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/services"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/utils"
)

type MicrotaskController struct {
	microtaskService *services.MicrotaskService
	logger           *zap.Logger
}

func NewMicrotaskController(microtaskService *services.MicrotaskService, logger *zap.Logger) *MicrotaskController {
	return &MicrotaskController{microtaskService: microtaskService, logger: logger}
}

// GetMyMicrotasks - задачи текущего сотрудника.
// GET /api/my/microtasks?only_open=true
func (c *MicrotaskController) GetMyMicrotasks(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	employeeID, err := utils.GetEmployeeIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	onlyOpen := ctx.QueryParam("only_open") == "true"
	tasks, err := c.microtaskService.GetMyMicrotasks(reqCtx, employeeID, onlyOpen)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tasks, "Задачи успешно получены", http.StatusOK)
}

func (c *MicrotaskController) CreateMicrotask(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateMicrotaskDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	task, err := c.microtaskService.CreateMicrotask(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, task, "Задача успешно создана", http.StatusCreated)
}

func (c *MicrotaskController) UpdateMicrotask(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMicrotaskDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	task, err := c.microtaskService.UpdateMicrotask(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, task, "Задача успешно обновлена", http.StatusOK)
}

func (c *MicrotaskController) DeleteMicrotask(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.microtaskService.DeleteMicrotask(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Задача успешно удалена", http.StatusOK)
}
