package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fucina/flexhibition-api/controllers"
)

func SetupMediaRoutes(protected *gin.RouterGroup, mediaController *controllers.MediaController) {
	media := protected.Group("/media")
	{
		media.GET("", mediaController.Index)
		media.POST("", mediaController.Store)
		media.PUT("/:id", mediaController.Update)
		media.DELETE("/:id", mediaController.Destroy)
	}
}
