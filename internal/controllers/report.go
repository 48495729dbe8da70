package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"solar-crm/internal/entities"
	"solar-crm/internal/services"
	"solar-crm/internal/workflow"
	"solar-crm/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetReport - сводный отчёт по объектам. format=xlsx отдаёт файл.
// GET /api/reports/installations
func (c *ReportController) GetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter, format := c.parseFilters(ctx)
	c.logger.Debug("Запрос отчёта", zap.Any("filters", filter), zap.String("format", format))

	data, total, err := c.reportService.GetReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}
	return utils.SuccessResponse(ctx, data, "Отчёт успешно сформирован", http.StatusOK, total)
}

func (c *ReportController) parseFilters(ctx echo.Context) (entities.ReportFilter, string) {
	stdFilter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter := entities.ReportFilter{
		Page:    stdFilter.Page,
		PerPage: stdFilter.Limit,
	}
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		// Экспорт выгружает всё без пагинации
		filter.Page = 1
		filter.PerPage = 100000
	}

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(time.RFC3339, df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			filter.DateTo = &t
		}
	}

	parseIDs := func(name string) []uint64 {
		var strs []string
		if arr, ok := ctx.QueryParams()[name+"[]"]; ok {
			strs = arr
		} else if s := ctx.QueryParam(name); s != "" {
			strs = strings.Split(s, ",")
		}
		ids, _ := utils.ParseUint64Slice(strs)
		return ids
	}

	filter.ClientIDs = parseIDs("client_ids")
	filter.ResponsibleIDs = parseIDs("responsible_ids")

	if p := ctx.QueryParam("priorities"); p != "" {
		filter.Priorities = strings.Split(p, ",")
	}

	return filter, format
}

var reportHeaders = []string{
	"№", "Объект", "Клиент", "Приоритет", "Статус", "Текущий этап",
	"Мощность (кВт)", "Стоимость", "Оплачено", "Остаток", "Ответственный", "Создан",
}

func rowToSlice(item entities.ReportItem) []interface{} {
	stageLabel := ""
	if item.CurrentStage.Valid {
		stageLabel = workflow.StageLabel(item.CurrentStage.String)
	}

	var capacity, totalCost, paidAmount, remainder string
	if item.CapacityKW.Valid {
		capacity = fmt.Sprintf("%.2f", item.CapacityKW.Float64)
	}
	if item.TotalCost.Valid {
		totalCost = fmt.Sprintf("%.2f", item.TotalCost.Float64)
	}
	if item.PaidAmount.Valid {
		paidAmount = fmt.Sprintf("%.2f", item.PaidAmount.Float64)
	}
	if item.TotalCost.Valid && item.PaidAmount.Valid {
		remainder = fmt.Sprintf("%.2f", item.TotalCost.Float64-item.PaidAmount.Float64)
	}

	return []interface{}{
		item.InstallationID, item.Name, item.ClientName.String, item.Priority, item.Status,
		stageLabel, capacity, totalCost, paidAmount, remainder,
		item.ResponsibleName.String, item.CreatedAt.Format("02.01.2006"),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.ReportItem) error {
	f := excelize.NewFile()
	sheet := "Отчёт по объектам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "F", "F", 25)
	f.SetColWidth(sheet, "K", "K", 25)

	fileName := fmt.Sprintf("installations_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
