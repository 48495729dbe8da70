package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
	"solar-crm/internal/entities"
	"solar-crm/pkg/middleware"
)

func runClientRouter(secureGroup *echo.Group, ctrl *controllers.ClientController, authMW *middleware.AuthMiddleware) {
	manage := authMW.RequireRole(entities.RoleAdmin, entities.RoleManager)

	secureGroup.GET("/clients", ctrl.GetClients)
	secureGroup.GET("/clients/:id", ctrl.FindClient)
	secureGroup.POST("/clients", ctrl.CreateClient, manage)
	secureGroup.PUT("/clients/:id", ctrl.UpdateClient, manage)
	secureGroup.DELETE("/clients/:id", ctrl.DeleteClient, authMW.RequireRole(entities.RoleAdmin))
}
