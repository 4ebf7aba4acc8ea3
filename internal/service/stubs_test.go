package service

import (
	"context"

	"lema/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	listFn    func(context.Context, int, int) ([]models.User, error)
	countFn   func(context.Context) (int64, error)
	getByIDFn func(context.Context, string) (*models.User, error)
	existsFn  func(context.Context, string) (bool, error)
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) Exists(ctx context.Context, id string) (bool, error) {
	return s.existsFn(ctx, id)
}

// addressRepoStub is a stub for repository.AddressRepository.
type addressRepoStub struct {
	listByUserIDsFn func(context.Context, []string) (map[string]*models.Address, error)
}

func (s *addressRepoStub) ListByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.Address, error) {
	return s.listByUserIDsFn(ctx, userIDs)
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listByUserFn  func(context.Context, string, int, int) ([]models.Post, error)
	countByUserFn func(context.Context, string) (int64, error)
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, string) (*models.Post, error)
	deleteFn      func(context.Context, string) (bool, error)
}

func (s *postRepoStub) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) (bool, error) {
	return s.deleteFn(ctx, id)
}
