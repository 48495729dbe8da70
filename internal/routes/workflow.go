package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
)

// Быстрое обновление доступно любому авторизованному сотруднику:
// монтажник сам ведёт свои этапы.
func runWorkflowRouter(secureGroup *echo.Group, ctrl *controllers.WorkflowController) {
	secureGroup.GET("/my/stages", ctrl.ActiveStages)
	secureGroup.GET("/installations/:id/workflow", ctrl.StageBoard)
	secureGroup.PATCH("/installations/:id/workflow/:stage_key", ctrl.QuickUpdate)
	secureGroup.GET("/installations/:id/workflow/:stage_key/options", ctrl.StatusOptions)
	secureGroup.GET("/installations/:id/workflow/:stage_key/timeline", ctrl.Timeline)
}
