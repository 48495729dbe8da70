package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, ctrl *controllers.AuthController) {
	api.POST("/auth/login", ctrl.Login)
	api.POST("/auth/refresh", ctrl.RefreshToken)

	secureGroup.GET("/auth/profile", ctrl.GetProfile)
}
