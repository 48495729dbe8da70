package routes

import (
	"github.com/labstack/echo/v4"

	"solar-crm/internal/controllers"
)

func runDocumentRouter(secureGroup *echo.Group, ctrl *controllers.DocumentController) {
	secureGroup.GET("/installations/:id/documents", ctrl.ListDocuments)
	secureGroup.POST("/installations/:id/documents", ctrl.UploadDocuments)
	secureGroup.POST("/documents/delete", ctrl.DeleteDocument)
	secureGroup.GET("/documents/thumb/:file_id", ctrl.Thumb)
}
