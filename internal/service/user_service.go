// Package service holds the business logic between HTTP handlers and repositories.
package service

import (
	"context"

	"lema/internal/models"
	"lema/internal/observability"
	"lema/internal/repository"
	"lema/internal/validation"
)

type UserService struct {
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
}

func NewUserService(userRepo repository.UserRepository, addressRepo repository.AddressRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		addressRepo: addressRepo,
	}
}

// ListUsers returns one page of users, each with its address or nil.
func (s *UserService) ListUsers(ctx context.Context, p validation.Pagination) (page *models.Page[models.UserWithAddress], err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "ListUsers")
	defer func() { observability.EndSpan(span, err) }()

	users, err := s.userRepo.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	addresses, err := s.addressRepo.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]models.UserWithAddress, 0, len(users))
	for _, u := range users {
		rows = append(rows, models.UserWithAddress{User: u, Address: addresses[u.ID]})
	}
	return models.NewPage(rows, total, p.Page, p.Limit), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
