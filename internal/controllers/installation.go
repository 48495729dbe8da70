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

type InstallationController struct {
	installationService *services.InstallationService
	logger              *zap.Logger
}

func NewInstallationController(installationService *services.InstallationService, logger *zap.Logger) *InstallationController {
	return &InstallationController{installationService: installationService, logger: logger}
}

func (c *InstallationController) GetInstallations(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	installations, total, err := c.installationService.GetInstallations(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, installations, "Список объектов успешно получен", http.StatusOK, total)
}

func (c *InstallationController) FindInstallation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	installation, err := c.installationService.FindInstallation(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, installation, "Объект успешно найден", http.StatusOK)
}

func (c *InstallationController) CreateInstallation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateInstallationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	installation, err := c.installationService.CreateInstallation(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, installation, "Объект успешно создан", http.StatusCreated)
}

func (c *InstallationController) UpdateInstallation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateInstallationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	installation, err := c.installationService.UpdateInstallation(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, installation, "Объект успешно обновлён", http.StatusOK)
}

func (c *InstallationController) DeleteInstallation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.installationService.DeleteInstallation(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Объект успешно удалён", http.StatusOK)
}
