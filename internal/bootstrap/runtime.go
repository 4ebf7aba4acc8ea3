// Package bootstrap wires the process-level dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"lema/internal/config"
	"lema/internal/database"
	"lema/internal/models"
	"lema/internal/redisclient"
	"lema/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedFixtures loads the built-in fixtures into an empty database.
	SeedFixtures bool
	Logger       *slog.Logger
}

// InitRuntime connects to the database and Redis and optionally seeds fixtures.
// The Redis client is nil when REDIS_URL is empty or the server is unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	var r *redis.Client
	if cfg.RedisURL != "" {
		r = redisclient.Connect(ctx, cfg.RedisURL)
	}

	if opts.SeedFixtures {
		if err := ensureFixtures(ctx, db, opts.Logger); err != nil {
			closeRuntime(db, r)
			return nil, nil, fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	return db, r, nil
}

// closeRuntime releases whatever InitRuntime opened before it failed.
func closeRuntime(db *gorm.DB, r *redis.Client) {
	if r != nil {
		_ = r.Close()
	}
	_ = database.Close(db)
}

func ensureFixtures(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		logger.Debug("database already has users, skipping fixtures", slog.Int64("users", users))
		return nil
	}

	fx, err := seed.DefaultFixtures()
	if err != nil {
		return err
	}
	if err := seed.ApplyFixtures(ctx, db, fx); err != nil {
		return err
	}

	n, _, posts := fx.Counts()
	logger.Info("built-in fixtures loaded", slog.Int("users", n), slog.Int("posts", posts))
	return nil
}
