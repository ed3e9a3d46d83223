package db

import (
	"fmt"                        // Error wrapping
	"userportal/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.AutoMigrate(&domain.User{}, &domain.Profile{}, &domain.Address{}, &domain.FileUpload{})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.WithField("dialect", db.Dialector.Name()).Info("Migration completed.") // Log successful migration
	return nil
}
