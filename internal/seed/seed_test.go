package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
	"unicode/utf8"

	"lema/internal/database"
	"lema/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

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

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDefaultFixtures(t *testing.T) {
	fx, err := DefaultFixtures()
	require.NoError(t, err)

	users, addresses, posts := fx.Counts()
	assert.Equal(t, 3, users)
	assert.Equal(t, 2, addresses)
	assert.Equal(t, 2, posts)
	assert.Equal(t, "22202", fx.Users[2].Address.Zipcode)
}

func TestParseFixtures_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "users: [\n"},
		{"missing email", "users:\n  - id: u1\n    name: A\n"},
		{"duplicate id", "users:\n  - {id: u1, name: A, email: a@x.io}\n  - {id: u1, name: B, email: b@x.io}\n"},
		{"post without created_at", "users:\n  - id: u1\n    name: A\n    email: a@x.io\n    posts:\n      - {id: p1, title: t, body: b}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApplyFixtures_Idempotent(t *testing.T) {
	db := setupSQLite(t)
	fx, err := DefaultFixtures()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ApplyFixtures(ctx, db, fx))
	require.NoError(t, ApplyFixtures(ctx, db, fx))

	assert.EqualValues(t, 3, count(t, db, &models.User{}))
	assert.EqualValues(t, 2, count(t, db, &models.Address{}))
	assert.EqualValues(t, 2, count(t, db, &models.Post{}))

	var addr models.Address
	require.NoError(t, db.Where("user_id = ?", fx.Users[0].ID).First(&addr).Error)
	assert.Equal(t, "London", addr.City)
}

func TestSeed_GeneratesUsersAddressesAndPosts(t *testing.T) {
	db := setupSQLite(t)
	fx, err := DefaultFixtures()
	require.NoError(t, err)

	sum, err := Seed(context.Background(), db, Options{
		NumUsers:     5,
		PostsPerUser: 2,
		AddressRatio: 1,
		ShouldClean:  true,
		MaxDays:      30,
		RandSeed:     7,
		Fixtures:     fx,
		Logger:       quiet,
	})
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 8, Addresses: 7, Posts: 12}, sum)

	assert.EqualValues(t, 8, count(t, db, &models.User{}))
	assert.EqualValues(t, 7, count(t, db, &models.Address{}))
	assert.EqualValues(t, 12, count(t, db, &models.Post{}))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, p := range posts {
		_, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
		assert.NoError(t, err, p.CreatedAt)
		assert.LessOrEqual(t, utf8.RuneCountInString(p.Title), 50)
		assert.NotEmpty(t, p.Body)
	}
}

func TestSeed_AddressRatioZero(t *testing.T) {
	db := setupSQLite(t)

	sum, err := Seed(context.Background(), db, Options{NumUsers: 4, RandSeed: 1, Logger: quiet})
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 4}, sum)
	assert.Zero(t, count(t, db, &models.Address{}))
}

func TestSeed_CleanRemovesExistingRows(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()

	_, err := Seed(ctx, db, Options{NumUsers: 3, PostsPerUser: 1, RandSeed: 2, Logger: quiet})
	require.NoError(t, err)

	_, err = Seed(ctx, db, Options{NumUsers: 1, ShouldClean: true, RandSeed: 3, Logger: quiet})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count(t, db, &models.User{}))
	assert.Zero(t, count(t, db, &models.Post{}))
}

func TestSeed_DryRunWritesNothing(t *testing.T) {
	db := setupSQLite(t)
	fx, err := DefaultFixtures()
	require.NoError(t, err)

	sum, err := Seed(context.Background(), db, Options{
		NumUsers:     2,
		PostsPerUser: 3,
		AddressRatio: 1,
		ShouldClean:  true,
		DryRun:       true,
		RandSeed:     4,
		Fixtures:     fx,
		Logger:       quiet,
	})
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 5, Addresses: 4, Posts: 8}, sum)
	assert.Zero(t, count(t, db, &models.User{}))
	assert.Zero(t, count(t, db, &models.Post{}))
}

func TestBuildPost_CreatedAtWithinMaxDays(t *testing.T) {
	f := NewFactory(nil, Options{MaxDays: 10, RandSeed: 42})
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	user := f.BuildUser(func(u *models.User) { u.ID = "u1" })
	assert.Equal(t, "u1", user.ID)

	for range 20 {
		p := f.BuildPost(user)
		assert.Equal(t, "u1", p.UserID)
		created, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
		require.NoError(t, err)
		assert.False(t, created.After(now))
		assert.False(t, created.Before(now.Add(-10*24*time.Hour)))
	}
}

func TestFactory_SameSeedSameData(t *testing.T) {
	a := NewFactory(nil, Options{RandSeed: 99}).BuildUser()
	b := NewFactory(nil, Options{RandSeed: 99}).BuildUser()
	assert.Equal(t, a, b)
}
