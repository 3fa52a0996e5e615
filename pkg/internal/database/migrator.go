package database

import (
	"github.com/plumehq/plume/pkg/internal/models"
	"gorm.io/gorm"
)

// AutoMaintainRange lists the soft-deleting models whose trashed rows the
// periodic cleanup job is allowed to prune.
var AutoMaintainRange = []any{
	&models.Post{},
	&models.Comment{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	); err != nil {
		return err
	}

	return nil
}
