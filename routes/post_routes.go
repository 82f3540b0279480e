package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fucina/flexhibition-api/controllers"
)

// SetupPublicPostRoutes exposes the visitor-facing post reads without
// authentication.
func SetupPublicPostRoutes(public *gin.RouterGroup, postController *controllers.PostController) {
	public.GET("/museums/:museumId/exhibitions/:exhibitionId/posts", postController.PublicIndex)
	public.GET("/museums/:museumId/exhibitions/:exhibitionId/posts/:id", postController.PublicShow)
}

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController) {
	posts := protected.Group("/posts")
	{
		posts.GET("", postController.Index)
		posts.POST("", postController.Store)
		posts.GET("/:id", postController.Show)
		posts.PUT("/:id", postController.Update)
		posts.DELETE("/:id", postController.Destroy)
	}
}
