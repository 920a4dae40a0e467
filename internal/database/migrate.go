package database

import (
	"gorm.io/gorm"

	"github.com/noah-isme/mockprep-api/internal/models"
)

// Migrate creates or updates the tables owned by this service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.InterviewSession{})
}
