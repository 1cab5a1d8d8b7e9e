package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synctask-dev/synctask/db"
	"github.com/synctask-dev/synctask/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory database named after the test so
// parallel tests never share state.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	return database
}

func newProfileStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	database := openTestDB(t)

	return New(database, NewProfileDirectory(database)), database
}

func createProfile(t *testing.T, database *gorm.DB, fullName, email string) models.Profile {
	t.Helper()

	profile := models.Profile{
		Email:        email,
		FullName:     fullName,
		Emoji:        "👤",
		Role:         "member",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, database.Create(&profile).Error)

	return profile
}
