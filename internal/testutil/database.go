// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"onepocket/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.User{},
	&models.Category{},
	&models.Budget{},
	&models.Expense{},
}

// SetupTestDB creates an in-memory SQLite database with all models migrated.
// TranslateError is enabled to match production, so unique index violations
// surface as gorm.ErrDuplicatedKey in tests too.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// AutoMigrate cannot express the case-insensitive name constraint, which
	// lives in the SQL migrations in production.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_user_lower_name ON categories (user_id, LOWER(name))",
	).Error; err != nil {
		t.Fatalf("failed to create category name index: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
