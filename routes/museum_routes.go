package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fucina/flexhibition-api/controllers"
)

func SetupMuseumRoutes(protected *gin.RouterGroup, museumController *controllers.MuseumController) {
	museums := protected.Group("/museums")
	{
		museums.GET("", museumController.Index)
		museums.POST("", museumController.Store)
		museums.GET("/:id", museumController.Show)
		museums.PUT("/:id", museumController.Update)
		museums.DELETE("/:id", museumController.Destroy)
	}
}
