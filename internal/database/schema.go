package database

import (
	"context"
	"fmt"
	"log/slog"

	"lema/internal/config"
	"lema/internal/middleware"

	"gorm.io/gorm"
)

const (
	SchemaModeSQL  = "sql"
	SchemaModeAuto = "auto"
)

// SchemaStatus describes what ApplySchema would do against the current database.
type SchemaStatus struct {
	Mode              string
	Driver            string
	AppliedVersions   []int
	PendingMigrations []Migration
}

func schemaMode(cfg *config.Config) string {
	if cfg.DBSchemaMode == "" {
		return SchemaModeSQL
	}
	return cfg.DBSchemaMode
}

// ApplySchema brings the schema up to date using the configured mode.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	switch mode := schemaMode(cfg); mode {
	case SchemaModeSQL:
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	case SchemaModeAuto:
		if cfg.IsProduction() {
			middleware.Logger.WarnContext(ctx, "DB_SCHEMA_MODE=auto in production; review schema diffs before deploying")
		}
		middleware.Logger.InfoContext(ctx, "Running GORM AutoMigrate", slog.String("env", cfg.Env))
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	default:
		return fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
	return nil
}

// GetSchemaStatus lists applied and pending embedded migrations.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	status := &SchemaStatus{
		Mode:   schemaMode(cfg),
		Driver: cfg.DBDriver,
	}

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	status.AppliedVersions = applied

	appliedSet := make(map[int]bool, len(applied))
	for _, version := range applied {
		appliedSet[version] = true
	}
	for _, m := range GetMigrations() {
		if !appliedSet[m.Version] {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}

	return status, nil
}
