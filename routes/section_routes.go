package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fucina/flexhibition-api/controllers"
)

func SetupSectionRoutes(protected *gin.RouterGroup, sectionController *controllers.SectionController) {
	sections := protected.Group("/sections")
	{
		sections.GET("", sectionController.Index)
		sections.POST("", sectionController.Store)
		sections.GET("/:id", sectionController.Show)
		sections.PUT("/:id", sectionController.Update)
		sections.DELETE("/:id", sectionController.Destroy)
	}
}
