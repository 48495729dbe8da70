package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/services"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/utils"
)

type VisitController struct {
	visitService *services.VisitService
	logger       *zap.Logger
}

func NewVisitController(visitService *services.VisitService, logger *zap.Logger) *VisitController {
	return &VisitController{visitService: visitService, logger: logger}
}

// GetMyVisits - выезды текущего сотрудника за период.
// GET /api/my/visits?date_from=&date_to=
func (c *VisitController) GetMyVisits(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	employeeID, err := utils.GetEmployeeIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var from, to *time.Time
	if s := ctx.QueryParam("date_from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = &t
		}
	}
	if s := ctx.QueryParam("date_to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = &t
		}
	}

	visits, err := c.visitService.GetMyVisits(reqCtx, employeeID, from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, visits, "Выезды успешно получены", http.StatusOK)
}

// GetVisitsByInstallation - история выездов по объекту.
// GET /api/installations/:id/visits
func (c *VisitController) GetVisitsByInstallation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	installationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	visits, err := c.visitService.GetVisitsByInstallation(reqCtx, installationID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, visits, "Выезды успешно получены", http.StatusOK)
}

func (c *VisitController) CreateVisit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateVisitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	visit, err := c.visitService.CreateVisit(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, visit, "Выезд успешно запланирован", http.StatusCreated)
}

func (c *VisitController) UpdateVisit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateVisitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	visit, err := c.visitService.UpdateVisit(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, visit, "Выезд успешно обновлён", http.StatusOK)
}

func (c *VisitController) DeleteVisit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.visitService.DeleteVisit(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Выезд успешно удалён", http.StatusOK)
}
