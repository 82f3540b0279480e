package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fucina/flexhibition-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := SeedLanguages(db); err != nil {
		log.Fatal("Failed to seed languages:", err)
	}

	return db
}

// Migrate creates or updates the schema. Join tables are migrated explicitly
// so their composite primary keys exist before anything writes to them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Language{},
		&models.Media{},
		&models.Museum{},
		&models.Exhibition{},
		&models.Post{},
		&models.Section{},
		&models.Term{},
		&models.MuseumImage{},
		&models.ExhibitionImage{},
		&models.PostImage{},
	)
}

// SeedLanguages inserts the default language set when the table is empty.
func SeedLanguages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Language{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	languages := []models.Language{
		{Code: "it", Name: "Italiano", IsPrimary: true},
		{Code: "en", Name: "English"},
	}
	return db.Create(&languages).Error
}
