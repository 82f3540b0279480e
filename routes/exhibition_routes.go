package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fucina/flexhibition-api/controllers"
)

func SetupExhibitionRoutes(protected *gin.RouterGroup, exhibitionController *controllers.ExhibitionController) {
	exhibitions := protected.Group("/exhibitions")
	{
		exhibitions.GET("", exhibitionController.Index)
		exhibitions.POST("", exhibitionController.Store)
		exhibitions.GET("/:id", exhibitionController.Show)
		exhibitions.PUT("/:id", exhibitionController.Update)
		exhibitions.DELETE("/:id", exhibitionController.Destroy)
	}
}
