package ports

import (
	"context"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

// PostRepository defines persistence for blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines persistence for blog comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	// FindByPost returns a post's comments newest first; pending filters by
	// moderation state when non-nil.
	FindByPost(ctx context.Context, postID string, pending *bool) ([]domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
}

// CreatePostInput carries the fields of a new blog post.
type CreatePostInput struct {
	Title    string
	Summary  string
	Content  string
	Author   string
	ImageURL string
}

// CreateCommentInput carries the fields of a visitor comment.
type CreateCommentInput struct {
	PostID  string
	Name    string
	Email   string
	Website string
	Comment string
}

type BlogService interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error

	AddComment(ctx context.Context, input CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string, pending *bool) ([]domain.Comment, error)
	ApproveComment(ctx context.Context, id string) error
	DeleteComment(ctx context.Context, id string) error
}
