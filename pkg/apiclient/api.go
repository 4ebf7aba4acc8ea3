package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"lema/internal/models"
)

// Limits enforced by the post form before anything is sent.
const (
	MaxTitleLength = 50
	MaxBodyLength  = 1000
)

// Cache key roots.
const (
	UsersKeyRoot     = "Users"
	UserKeyRoot      = "UserInfo"
	UserPostsKeyRoot = "UserPosts"
)

func UsersKey(page, limit int) []string {
	return []string{UsersKeyRoot, strconv.Itoa(page), strconv.Itoa(limit)}
}

func UserKey(userID string) []string {
	return []string{UserKeyRoot, userID}
}

func UserPostsKey(userID string, page, limit int) []string {
	return []string{UserPostsKeyRoot, userID, strconv.Itoa(page), strconv.Itoa(limit)}
}

// NewPost is the body of a create-post request.
type NewPost struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Validate applies the form limits and returns a message per failing field.
func (p NewPost) Validate() map[string]string {
	errs := map[string]string{}
	switch {
	case p.Title == "":
		errs["title"] = "Post title is required"
	case len([]rune(p.Title)) > MaxTitleLength:
		errs["title"] = fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength)
	}
	switch {
	case p.Body == "":
		errs["body"] = "Post content is required"
	case len([]rune(p.Body)) > MaxBodyLength:
		errs["body"] = fmt.Sprintf("Content cannot exceed %d characters", MaxBodyLength)
	}
	return errs
}

// DeleteResult is the response of DELETE /posts/:postId.
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

func (c *Client) ListUsers(ctx context.Context, page, limit int) (*models.Page[models.UserWithAddress], error) {
	return Query[*models.Page[models.UserWithAddress]](ctx, c, QueryOptions{
		Path: fmt.Sprintf("/users?page=%d&limit=%d", page, limit),
		Key:  UsersKey(page, limit),
	})
}

func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return Query[*models.User](ctx, c, QueryOptions{
		Path:     "/users/" + url.PathEscape(userID),
		Key:      UserKey(userID),
		Disabled: userID == "",
	})
}

func (c *Client) ListUserPosts(ctx context.Context, userID string, page, limit int) (*models.Page[models.Post], error) {
	return Query[*models.Page[models.Post]](ctx, c, QueryOptions{
		Path:     fmt.Sprintf("/users/%s/posts?page=%d&limit=%d", url.PathEscape(userID), page, limit),
		Key:      UserPostsKey(userID, page, limit),
		Disabled: userID == "",
	})
}

// CreatePost publishes a post and invalidates every cached post list.
func (c *Client) CreatePost(ctx context.Context, in NewPost) (*models.Post, error) {
	return Mutation[NewPost, *models.Post]{
		Client:         c,
		Endpoint:       func(NewPost) string { return "/posts" },
		SuccessMessage: func(*models.Post) string { return "Post added successfully!" },
		ErrorMessage:   func(error) string { return "Failed to post" },
		OnSuccess:      func(*models.Post) { c.cache.Invalidate(UserPostsKeyRoot) },
	}.Mutate(ctx, in)
}

// DeletePost removes a post and invalidates every cached post list.
func (c *Client) DeletePost(ctx context.Context, postID string) (bool, error) {
	res, err := Mutation[string, DeleteResult]{
		Client:         c,
		Method:         http.MethodDelete,
		Endpoint:       func(id string) string { return "/posts/" + url.PathEscape(id) },
		SuccessMessage: func(DeleteResult) string { return "Post deleted successfully!" },
		ErrorMessage:   func(error) string { return "Failed to delete post" },
		OnSuccess:      func(DeleteResult) { c.cache.Invalidate(UserPostsKeyRoot) },
	}.Mutate(ctx, postID)
	return res.Deleted, err
}
