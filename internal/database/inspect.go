package database

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"lema/internal/middleware"

	"gorm.io/gorm"
)

// ColumnInfo describes one column as the driver reports it.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
}

// TableInfo lists the columns of one table.
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}

// Inspect reports every table in the connected database with its columns,
// sorted by table name.
func Inspect(ctx context.Context, db *gorm.DB) ([]TableInfo, error) {
	migrator := db.WithContext(ctx).Migrator()
	tables, err := migrator.GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(tables)

	out := make([]TableInfo, 0, len(tables))
	for _, table := range tables {
		columnTypes, err := migrator.ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("list columns of %s: %w", table, err)
		}
		info := TableInfo{Name: table, Columns: make([]ColumnInfo, 0, len(columnTypes))}
		for _, ct := range columnTypes {
			nullable, _ := ct.Nullable()
			info.Columns = append(info.Columns, ColumnInfo{
				Name:     ct.Name(),
				Type:     ct.DatabaseTypeName(),
				Nullable: nullable,
			})
		}
		out = append(out, info)
	}
	return out, nil
}

// Reset drops the application tables and the migration log, leaving an
// empty database that the next migration run rebuilds from scratch.
func Reset(ctx context.Context, db *gorm.DB) error {
	registered := PersistentModels()
	// Children first so foreign keys never block a drop.
	drop := make([]interface{}, 0, len(registered)+1)
	for i := len(registered) - 1; i >= 0; i-- {
		drop = append(drop, registered[i])
	}
	drop = append(drop, &MigrationLog{})

	migrator := db.WithContext(ctx).Migrator()
	for _, model := range drop {
		if !migrator.HasTable(model) {
			continue
		}
		if err := migrator.DropTable(model); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	middleware.Logger.WarnContext(ctx, "database reset", slog.Int("tables", len(drop)))
	return nil
}
