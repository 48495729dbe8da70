package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
	"solar-crm/internal/entities"
	"solar-crm/pkg/middleware"
)

func runEmployeeRouter(secureGroup *echo.Group, ctrl *controllers.EmployeeController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRole(entities.RoleAdmin)

	secureGroup.GET("/employees", ctrl.GetEmployees)
	secureGroup.GET("/employees/:id", ctrl.FindEmployee)
	secureGroup.POST("/employees", ctrl.CreateEmployee, adminOnly)
	secureGroup.PUT("/employees/:id", ctrl.UpdateEmployee, adminOnly)
	secureGroup.DELETE("/employees/:id", ctrl.DeleteEmployee, adminOnly)
}
