package repository

import (
	"context"
	"errors"

	"lema/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines read operations for seeded users.
type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// List returns one page of users ordered by name, then id, so pages are stable.
func (r *userRepository) List(ctx context.Context, limit, offset int) (users []models.User, err error) {
	ctx, finish := instrument(ctx, r.db, "users", "List", "select")
	defer finish(&err)

	if err = r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (total int64, err error) {
	ctx, finish := instrument(ctx, r.db, "users", "Count", "count")
	defer finish(&err)

	if err = r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user *models.User, err error) {
	ctx, finish := instrument(ctx, r.db, "users", "GetByID", "select")
	defer finish(&err)

	var u models.User
	if err = r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError(err)
	}
	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, id string) (exists bool, err error) {
	ctx, finish := instrument(ctx, r.db, "users", "Exists", "count")
	defer finish(&err)

	var n int64
	if err = r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}
