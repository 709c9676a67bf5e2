// Package dbtest opens throwaway databases for controller and store tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/folio-cms/folio/internal/db/models"
)

// Open creates an in-memory SQLite database with the folio schema migrated.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err, "failed to create test database")

	// every connection to :memory: gets its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&models.Project{}, &models.Skill{}, &models.Message{}, &models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}
