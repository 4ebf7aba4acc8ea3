package repository

import (
	"context"
	"errors"

	"lema/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Post, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// ListByUser returns one page of a user's posts, newest first.
func (r *postRepository) ListByUser(ctx context.Context, userID string, limit, offset int) (posts []models.Post, err error) {
	ctx, finish := instrument(ctx, r.db, "posts", "ListByUser", "select")
	defer finish(&err)

	if err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByUser(ctx context.Context, userID string) (total int64, err error) {
	ctx, finish := instrument(ctx, r.db, "posts", "CountByUser", "count")
	defer finish(&err)

	if err = r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

// Create inserts post as given. A dangling user_id surfaces as "User not found".
func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, finish := instrument(ctx, r.db, "posts", "Create", "insert")
	defer finish(&err)

	if err = r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewNotFoundError("User")
		}
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Post already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (post *models.Post, err error) {
	ctx, finish := instrument(ctx, r.db, "posts", "GetByID", "select")
	defer finish(&err)

	var p models.Post
	if err = r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &p, nil
}

// Delete hard-deletes the post and reports whether a row was removed.
func (r *postRepository) Delete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, finish := instrument(ctx, r.db, "posts", "Delete", "delete")
	defer finish(&err)

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if err = res.Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return res.RowsAffected > 0, nil
}
