package database

import (
	"fmt"

	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models.
// Order matters: parents before children so foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.User{},
		&domain.Board{},
		&domain.BoardMember{},
		&domain.Task{},
		&domain.Comment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}
