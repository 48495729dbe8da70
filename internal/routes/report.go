package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
	"solar-crm/internal/entities"
	"solar-crm/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/reports/installations", ctrl.GetReport,
		authMW.RequireRole(entities.RoleAdmin, entities.RoleManager))
}
