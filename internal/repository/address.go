package repository

import (
	"context"

	"lema/internal/models"

	"gorm.io/gorm"
)

// AddressRepository reads user addresses. A user has at most one.
type AddressRepository interface {
	ListByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.Address, error)
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository returns a new AddressRepository implementation.
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

// ListByUserIDs returns the addresses of the given users keyed by user id.
// Users without an address are absent from the map.
func (r *addressRepository) ListByUserIDs(ctx context.Context, userIDs []string) (out map[string]*models.Address, err error) {
	out = make(map[string]*models.Address, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	ctx, finish := instrument(ctx, r.db, "addresses", "ListByUserIDs", "select")
	defer finish(&err)

	var rows []models.Address
	if err = r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range rows {
		out[rows[i].UserID] = &rows[i]
	}
	return out, nil
}
