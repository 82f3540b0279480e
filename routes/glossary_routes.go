package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fucina/flexhibition-api/controllers"
)

func SetupGlossaryRoutes(protected *gin.RouterGroup, termController *controllers.TermController, languageController *controllers.LanguageController) {
	terms := protected.Group("/terms")
	{
		terms.GET("", termController.Index)
		terms.POST("", termController.Store)
		terms.GET("/:id", termController.Show)
		terms.PUT("/:id", termController.Update)
		terms.DELETE("/:id", termController.Destroy)
	}

	languages := protected.Group("/languages")
	{
		languages.GET("", languageController.Index)
		languages.POST("", languageController.Store)
		languages.PUT("/:id/primary", languageController.SetPrimary)
		languages.DELETE("/:id", languageController.Destroy)
	}
}
