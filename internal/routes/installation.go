package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
	"solar-crm/internal/entities"
	"solar-crm/pkg/middleware"
)

func runInstallationRouter(secureGroup *echo.Group, ctrl *controllers.InstallationController, authMW *middleware.AuthMiddleware) {
	manage := authMW.RequireRole(entities.RoleAdmin, entities.RoleManager)

	secureGroup.GET("/installations", ctrl.GetInstallations)
	secureGroup.GET("/installations/:id", ctrl.FindInstallation)
	secureGroup.POST("/installations", ctrl.CreateInstallation, manage)
	secureGroup.PUT("/installations/:id", ctrl.UpdateInstallation, manage)
	secureGroup.DELETE("/installations/:id", ctrl.DeleteInstallation, authMW.RequireRole(entities.RoleAdmin))
}
