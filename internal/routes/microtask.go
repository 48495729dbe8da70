package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
)

func runMicrotaskRouter(secureGroup *echo.Group, ctrl *controllers.MicrotaskController) {
	secureGroup.GET("/my/microtasks", ctrl.GetMyMicrotasks)
	secureGroup.POST("/microtasks", ctrl.CreateMicrotask)
	secureGroup.PUT("/microtasks/:id", ctrl.UpdateMicrotask)
	secureGroup.DELETE("/microtasks/:id", ctrl.DeleteMicrotask)
}
