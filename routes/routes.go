package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/controllers"
	"github.com/fucina/flexhibition-api/middleware"
	"github.com/fucina/flexhibition-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, media *services.MediaService) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	museumController := controllers.NewMuseumController(db, media)
	exhibitionController := controllers.NewExhibitionController(db, media)
	postController := controllers.NewPostController(db, media)
	sectionController := controllers.NewSectionController(db, media)
	termController := controllers.NewTermController(db)
	languageController := controllers.NewLanguageController(db)
	mediaController := controllers.NewMediaController(media)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		SetupPublicPostRoutes(public, postController)
	}

	// Protected admin routes
	protected := r.Group("/api/admin")
	protected.Use(middleware.AuthMiddleware())
	{
		SetupMuseumRoutes(protected, museumController)
		SetupExhibitionRoutes(protected, exhibitionController)
		SetupPostRoutes(protected, postController)
		SetupSectionRoutes(protected, sectionController)
		SetupGlossaryRoutes(protected, termController, languageController)
		SetupMediaRoutes(protected, mediaController)
	}
}
