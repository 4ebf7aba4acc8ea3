package repository

import (
	"context"
	"testing"

	"lema/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressRepository_SQLite(t *testing.T) {
	db := setupSQLite(t)
	repo := NewAddressRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "Alice")
	seedUser(t, db, "u2", "Bob")
	require.NoError(t, db.Create(&models.Address{
		ID: "a1", UserID: "u1", Street: "1 Main St", State: "CA", City: "Springfield", Zipcode: "90210",
	}).Error)

	byUser, err := repo.ListByUserIDs(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
	assert.Equal(t, "a1", byUser["u1"].ID)
	assert.Equal(t, "Springfield", byUser["u1"].City)
	assert.Nil(t, byUser["u2"])

	none, err := repo.ListByUserIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddressRepository_OnePerUser(t *testing.T) {
	db := setupSQLite(t)
	seedUser(t, db, "u1", "Alice")

	require.NoError(t, db.Create(&models.Address{ID: "a1", UserID: "u1"}).Error)
	err := db.Create(&models.Address{ID: "a2", UserID: "u1"}).Error
	assert.True(t, isUniqueConstraintError(err))
}
