package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solar-crm/pkg/docstore"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/utils"
)

type deleteDocumentDTO struct {
	FileID string `json:"file_id" validate:"required"`
}

// DocumentController проксирует внешний сервис хранения документов.
// Бэкенд не хранит файлы сам: только ссылки и идентификаторы.
type DocumentController struct {
	docstore *docstore.Client
	logger   *zap.Logger
}

func NewDocumentController(client *docstore.Client, logger *zap.Logger) *DocumentController {
	return &DocumentController{docstore: client, logger: logger}
}

// ListDocuments - документы объекта. Недоступность внешнего сервиса не
// валит страницу: отдаём пустой список с предупреждением.
// GET /api/installations/:id/documents
func (c *DocumentController) ListDocuments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	installationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	documents, err := c.docstore.ListDocuments(reqCtx, installationID)
	if err != nil {
		c.logger.Warn("Сервис документов недоступен, отдаю пустой список",
			zap.Uint64("installation_id", installationID), zap.Error(err))
		return utils.SuccessResponse(ctx, []docstore.Document{},
			"Сервис документов временно недоступен", http.StatusOK)
	}
	return utils.SuccessResponse(ctx, documents, "Документы успешно получены", http.StatusOK)
}

// UploadDocuments - загрузка файлов в папку объекта.
// POST /api/installations/:id/documents
func (c *DocumentController) UploadDocuments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	installationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	docType := ctx.FormValue("doc_type")
	if docType == "" {
		docType = "general"
	}

	form, err := ctx.MultipartForm()
	if err != nil || form == nil || len(form.File["files"]) == 0 {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не переданы файлы", apperrors.ErrBadRequest, nil),
			c.logger)
	}

	var files []docstore.FilePart
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

	result, err := c.docstore.Upload(reqCtx, files, installationID, docType)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Файлы успешно загружены", http.StatusCreated)
}

// DeleteDocument - удаление файла во внешнем сервисе.
// POST /api/documents/delete
func (c *DocumentController) DeleteDocument(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload deleteDocumentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.docstore.Delete(reqCtx, payload.FileID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Файл успешно удалён", http.StatusOK)
}

// Thumb проксирует миниатюру файла как есть, с контент-типом источника.
// GET /api/documents/thumb/:file_id
func (c *DocumentController) Thumb(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	fileID := ctx.Param("file_id")
	if fileID == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указан идентификатор файла", apperrors.ErrBadRequest, nil),
			c.logger)
	}

	body, contentType, err := c.docstore.Thumb(reqCtx, fileID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer body.Close()

	return ctx.Stream(http.StatusOK, contentType, body)
}
