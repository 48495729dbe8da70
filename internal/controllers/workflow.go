package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/services"
	"solar-crm/pkg/docstore"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/utils"
)

type WorkflowController struct {
	workflowService   services.WorkflowServiceInterface
	stageEventService *services.StageEventService
	logger            *zap.Logger
}

func NewWorkflowController(
	workflowService services.WorkflowServiceInterface,
	stageEventService *services.StageEventService,
	logger *zap.Logger,
) *WorkflowController {
	return &WorkflowController{
		workflowService:   workflowService,
		stageEventService: stageEventService,
		logger:            logger,
	}
}

// QuickUpdate принимает multipart-форму: поля правки + фотографии.
// PATCH /api/installations/:id/workflow/:stage_key
func (c *WorkflowController) QuickUpdate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	session, err := utils.GetSessionFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	installationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	stageKey := ctx.Param("stage_key")
	if stageKey == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указан ключ этапа", apperrors.ErrBadRequest, nil),
			c.logger)
	}

	var payload dto.QuickUpdateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	// Фотографии необязательны: форма может прийти и без файлов
	var files []docstore.FilePart
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["files"] {
			src, err := header.Open()
			if err != nil {
				return utils.ErrorResponse(ctx,
					apperrors.NewHttpError(http.StatusBadRequest, "Не удалось прочитать файл", err,
						map[string]interface{}{"file": header.Filename}),
					c.logger)
			}
			defer src.Close()
			files = append(files, docstore.FilePart{Name: header.Filename, Reader: src})
		}
	}

	result, err := c.workflowService.QuickUpdate(reqCtx, session, installationID, stageKey, payload, files)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Этап успешно обновлён", http.StatusOK)
}

// ActiveStages - список незавершённых этапов текущего сотрудника.
// GET /api/my/stages?search=
func (c *WorkflowController) ActiveStages(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	employeeID, err := utils.GetEmployeeIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	groups, err := c.workflowService.ActiveStages(reqCtx, employeeID, ctx.QueryParam("search"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, groups, "Активные этапы успешно получены", http.StatusOK)
}

// StageBoard - доска этапов объекта: вся воронка с текущими статусами.
// GET /api/installations/:id/workflow
func (c *WorkflowController) StageBoard(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	installationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	board, err := c.workflowService.StageBoard(reqCtx, installationID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, board, "Этапы объекта получены", http.StatusOK)
}

// StatusOptions - словарь статусов этапа для выпадающего списка.
// GET /api/installations/:id/workflow/:stage_key/options
func (c *WorkflowController) StatusOptions(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	installationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	options, err := c.workflowService.StatusOptionsForStage(reqCtx, installationID, ctx.Param("stage_key"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, options, "Статусы этапа получены", http.StatusOK)
}

// Timeline - журнал изменений этапа.
// GET /api/installations/:id/workflow/:stage_key/timeline
func (c *WorkflowController) Timeline(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	installationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	timeline, err := c.stageEventService.Timeline(reqCtx, installationID, ctx.Param("stage_key"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, timeline, "Журнал этапа получен", http.StatusOK)
}
