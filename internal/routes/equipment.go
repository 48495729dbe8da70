package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
	"solar-crm/internal/entities"
	"solar-crm/pkg/middleware"
)

func runEquipmentRouter(secureGroup *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	manage := authMW.RequireRole(entities.RoleAdmin, entities.RoleManager)

	secureGroup.GET("/installations/:id/equipment", ctrl.GetOrders)
	secureGroup.POST("/equipment", ctrl.CreateOrder, manage)
	secureGroup.PUT("/equipment/:id", ctrl.UpdateOrder, manage)
	secureGroup.DELETE("/equipment/:id", ctrl.DeleteOrder, manage)
}
