package server

import (
	"lema/internal/models"
	"lema/internal/service"
	"lema/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{userId=string,title=string,body=string} true "New post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} object{message=string}
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	in, errs := validation.ParseCreatePost(c.Body())
	if !errs.Empty() {
		return models.RespondWithError(c, models.NewFieldValidationError("Invalid post data", errs))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID: in.UserID,
		Title:  in.Title,
		Body:   in.Body,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /posts/:postId
// @Summary Delete a post
// @Description Deleting an unknown id succeeds with deleted=false.
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} object{deleted=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, errs := validation.ParseID(c.Params("postId"), "postId", "Post ID is required")
	if !errs.Empty() {
		return models.RespondWithError(c, models.NewFieldValidationError("Invalid post ID", errs))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	deleted, err := s.postService.DeletePost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
