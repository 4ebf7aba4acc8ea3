package repository

import (
	"context"
	"fmt"
	"testing"

	"lema/internal/database"
	"lema/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSQLite returns a migrated in-memory database.
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) models.User {
	t.Helper()
	u := models.User{ID: id, Name: name, Email: id + "@example.com"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, id, userID, createdAt string) models.Post {
	t.Helper()
	p := models.Post{ID: id, UserID: userID, Title: "title " + id, Body: "body " + id, CreatedAt: createdAt}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func timestamp(minute int) string {
	return fmt.Sprintf("2024-01-01T10:%02d:00.000Z", minute)
}
