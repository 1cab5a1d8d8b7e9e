package db

import (
	"github.com/synctask-dev/synctask/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and returns the handle. The handle is owned by
// the entry point and passed down explicitly; there is no package-level
// singleton. TranslateError lets callers match gorm.ErrDuplicatedKey
// regardless of driver.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(database *gorm.DB) error {
	tables := []interface{}{
		&models.Profile{},
		&models.TeamMember{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.Leave{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
