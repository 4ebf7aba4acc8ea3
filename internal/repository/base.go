// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"lema/internal/models"
	"lema/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgForeignKeyViolation is the SQLSTATE Postgres reports for FK violations.
const pgForeignKeyViolation = "23503"

// instrument starts a span and a latency timer for one repository call.
// Defer the returned func with a pointer to the call's error.
func instrument(ctx context.Context, db *gorm.DB, table, method, operation string) (context.Context, func(*error)) {
	ctx, span := observability.StartRepositorySpan(ctx, db.Dialector.Name(), method, table)
	done := observability.TrackQuery(operation, table)
	return ctx, func(errp *error) {
		done()
		var err error
		if errp != nil && !models.IsNotFound(*errp) {
			err = *errp
		}
		observability.EndSpan(span, err)
	}
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	// SQLite: "FOREIGN KEY constraint failed"
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
