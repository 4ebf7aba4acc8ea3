package service

import (
	"context"
	"strconv"
	"time"

	"lema/internal/models"
	"lema/internal/observability"
	"lema/internal/repository"
	"lema/internal/validation"

	"github.com/google/uuid"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	now      func() time.Time
	newID    func() string
}

type CreatePostInput struct {
	UserID string
	Title  string
	Body   string
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// ListUserPosts returns one page of the user's posts. An unknown user simply
// has no posts.
func (s *PostService) ListUserPosts(ctx context.Context, userID string, p validation.Pagination) (*models.Page[models.Post], error) {
	posts, err := s.postRepo.ListByUser(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPage(posts, total, p.Page, p.Limit), nil
}

// CreatePost stores a new post for an existing user and returns the row as persisted.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (created *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	exists, err := s.userRepo.Exists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User")
	}

	post := &models.Post{
		ID:        s.newID(),
		UserID:    in.UserID,
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: models.FormatCreatedAt(s.now()),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err = s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()
	return created, nil
}

// DeletePost hard-deletes a post. Deleting an unknown id is not an error.
func (s *PostService) DeletePost(ctx context.Context, id string) (bool, error) {
	deleted, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	observability.PostsDeleted.WithLabelValues(strconv.FormatBool(deleted)).Inc()
	return deleted, nil
}
