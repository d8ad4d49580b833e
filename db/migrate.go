package db

import (
	"log"

	"github.com/stnicholas-parish/parish-app/models"
	"gorm.io/gorm"
)

// Migrate applies the schema for every model.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Appointment{},
		&models.Message{},
		&models.Content{},
		&models.GalleryItem{},
	)
	if err != nil {
		return err
	}
	log.Println("✅ Migrations applied successfully!")
	return nil
}
