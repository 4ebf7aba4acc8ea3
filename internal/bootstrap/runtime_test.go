package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"lema/internal/config"
	"lema/internal/database"
	"lema/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Env:          "test",
		DBDriver:     config.DriverSQLite,
		DBPath:       ":memory:",
		DBSchemaMode: "sql",
	}
}

func TestInitRuntime_SeedsEmptyDatabaseOnce(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, rdb, err := InitRuntime(ctx, memoryConfig(), Options{SeedFixtures: true, Logger: logger})
	require.NoError(t, err)
	assert.Nil(t, rdb)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, users)

	require.NoError(t, db.Where("id = ?", "9e6d1c3b-5f7a-4b8c-9d0e-3f2a1b0c9d8e").Delete(&models.User{}).Error)
	require.NoError(t, ensureFixtures(ctx, db, logger))

	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 2, users)
}

func TestInitRuntime_WithoutSeeding(t *testing.T) {
	db, _, err := InitRuntime(context.Background(), memoryConfig(), Options{})
	require.NoError(t, err)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestInitRuntime_SeedFailureReturnsError(t *testing.T) {
	cfg := memoryConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "data.db")

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TRIGGER users_read_only BEFORE INSERT ON users
		BEGIN SELECT RAISE(ABORT, 'users are read only'); END`).Error)
	require.NoError(t, database.Close(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, rdb, err := InitRuntime(context.Background(), cfg, Options{SeedFixtures: true, Logger: logger})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed fixtures")
	assert.Nil(t, db)
	assert.Nil(t, rdb)
}

func TestCloseRuntime_ReleasesDatabaseAndRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	db, err := database.Connect(memoryConfig())
	require.NoError(t, err)

	closeRuntime(db, rdb)

	assert.Error(t, database.Ping(context.Background(), db))
	assert.ErrorIs(t, rdb.Ping(context.Background()).Err(), redis.ErrClosed)
}
