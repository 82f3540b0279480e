package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fucina/flexhibition-api/config"
	"github.com/fucina/flexhibition-api/routes"
	"github.com/fucina/flexhibition-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize database and storage
	db := config.InitDB()
	disk, err := config.NewDisk()
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	mediaService := services.NewMediaService(db, disk, logger)

	// Create a new Gin router
	r := gin.Default()

	// Initialize routes
	routes.SetupRoutes(r, db, mediaService)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
