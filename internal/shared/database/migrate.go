package database

import (
	"mulnori/internal/boards"
	"mulnori/internal/sites"
	"mulnori/internal/tags"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&sites.Site{},
		&tags.TagAdditionRequest{},
		&tags.TagDeletionRequest{},
		&boards.Category{},
		&boards.Board{},
	)
}
