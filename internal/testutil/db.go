// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/slateworks/budget-api/internal/database"
	"github.com/slateworks/budget-api/internal/domain"
)

// SetupTestDB opens an isolated in-memory SQLite database with the full schema
// applied. Every call gets its own database, so tests never share state and
// need no cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A unique shared-cache name keeps the pooled connections of one test on
	// the same in-memory database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory test database")

	require.NoError(t, database.AutoMigrate(db), "Failed to migrate test schema")
	return db
}

// CreateTestUser creates an active user account
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:       email,
		DisplayName: "Test User",
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestPayee creates a payee belonging to the given owner
func CreateTestPayee(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name, email string) *domain.Payee {
	t.Helper()
	payee := &domain.Payee{
		OwnerID:  ownerID,
		Name:     name,
		Email:    email,
		IsActive: true,
	}
	require.NoError(t, db.Create(payee).Error)
	return payee
}
