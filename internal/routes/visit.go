package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
	"solar-crm/internal/entities"
	"solar-crm/pkg/middleware"
)

func runVisitRouter(secureGroup *echo.Group, ctrl *controllers.VisitController, authMW *middleware.AuthMiddleware) {
	manage := authMW.RequireRole(entities.RoleAdmin, entities.RoleManager)

	secureGroup.GET("/my/visits", ctrl.GetMyVisits)
	secureGroup.GET("/installations/:id/visits", ctrl.GetVisitsByInstallation)
	secureGroup.POST("/visits", ctrl.CreateVisit, manage)
	// Отметку "выполнено" ставит сам монтажник
	secureGroup.PUT("/visits/:id", ctrl.UpdateVisit)
	secureGroup.DELETE("/visits/:id", ctrl.DeleteVisit, manage)
}
