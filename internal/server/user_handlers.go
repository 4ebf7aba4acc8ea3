package server

import (
	"lema/internal/models"
	"lema/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users
// @Summary List users
// @Description One page of users, each with its address (null when absent)
// @Tags users
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.Page[models.UserWithAddress]
// @Failure 400 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	p, errs := validation.ParsePagination(c.Query("page"), c.Query("limit"), s.config.PaginationMaxLimit)
	if !errs.Empty() {
		return models.RespondWithError(c, models.NewFieldValidationError("Invalid pagination params", errs))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := s.userService.ListUsers(ctx, p)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}

// GetUser handles GET /users/:userId
// @Summary Get a user
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{userId} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, errs := validation.ParseID(c.Params("userId"), "userId", "User ID is required")
	if !errs.Empty() {
		return models.RespondWithError(c, models.NewFieldValidationError("Invalid user ID", errs))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.GetUser(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// ListUserPosts handles GET /users/:userId/posts
// @Summary List a user's posts
// @Description Newest first. An unknown user yields an empty page.
// @Tags posts
// @Produce json
// @Param userId path string true "User ID"
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.Page[models.Post]
// @Failure 400 {object} models.ErrorResponse
// @Router /users/{userId}/posts [get]
func (s *Server) ListUserPosts(c *fiber.Ctx) error {
	userID, paramErrs := validation.ParseID(c.Params("userId"), "userId", "User ID is required")
	p, queryErrs := validation.ParsePagination(c.Query("page"), c.Query("limit"), s.config.PaginationMaxLimit)
	if !paramErrs.Empty() || !queryErrs.Empty() {
		merged := map[string]models.FieldErrors{}
		if !paramErrs.Empty() {
			merged["params"] = paramErrs
		}
		if !queryErrs.Empty() {
			merged["query"] = queryErrs
		}
		return models.RespondWithError(c, models.NewFieldValidationError("Invalid parameters", merged))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := s.postService.ListUserPosts(ctx, userID, p)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}
