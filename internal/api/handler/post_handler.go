package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/core/ports"
)

// PostHandler serves blog posts and their moderated comments.
type PostHandler struct {
	blog ports.BlogService
}

func NewPostHandler(blog ports.BlogService) *PostHandler {
	return &PostHandler{blog: blog}
}

type createPostRequest struct {
	Title    string `json:"title" validate:"required"`
	Summary  string `json:"summary"`
	Content  string `json:"content" validate:"required"`
	Author   string `json:"author" validate:"required"`
	ImageURL string `json:"imageUrl"`
}

type createCommentRequest struct {
	PostID  string `json:"postId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Website string `json:"website"`
	Comment string `json:"comment" validate:"required"`
}

func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.blog.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.blog.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Author:   req.Author,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.blog.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted"})
}

// CreateComment accepts a visitor comment. It lands pending and stays
// hidden until approved.
func (h *PostHandler) CreateComment(c echo.Context) error {
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.blog.AddComment(c.Request().Context(), ports.CreateCommentInput{
		PostID:  req.PostID,
		Name:    req.Name,
		Email:   req.Email,
		Website: req.Website,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "comment submitted for review",
		"comment": comment,
	})
}

// ListComments returns a post's comments. Anonymous callers only get
// approved comments; the pending query parameter is honoured for admins.
func (h *PostHandler) ListComments(c echo.Context) error {
	var pending *bool
	if isAdminRequest(c) {
		if v := c.QueryParam("pending"); v != "" {
			p, err := strconv.ParseBool(v)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "pending must be true or false")
			}
			pending = &p
		}
	} else {
		approved := false
		pending = &approved
	}

	comments, err := h.blog.ListComments(c.Request().Context(), c.Param("postId"), pending)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) ApproveComment(c echo.Context) error {
	if err := h.blog.ApproveComment(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "comment approved"})
}

func (h *PostHandler) DeleteComment(c echo.Context) error {
	if err := h.blog.DeleteComment(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "comment deleted"})
}
