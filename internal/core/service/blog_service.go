package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

// BlogService manages posts and their moderated comments.
type BlogService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	logger   zerolog.Logger
}

func NewBlogService(posts ports.PostRepository, comments ports.CommentRepository, logger zerolog.Logger) *BlogService {
	return &BlogService{posts: posts, comments: comments, logger: logger}
}

func (s *BlogService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.FindAll(ctx)
}

func (s *BlogService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	now := time.Now().UTC()
	post := &domain.Post{
		Title:     input.Title,
		Summary:   input.Summary,
		Content:   input.Content,
		Author:    input.Author,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("post_id", created.ID).Str("title", created.Title).Msg("post published")
	return created, nil
}

func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	if _, err := s.posts.FindByID(ctx, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

// AddComment stores a visitor comment. Comments start pending and stay
// hidden from public listings until approved.
func (s *BlogService) AddComment(ctx context.Context, input ports.CreateCommentInput) (*domain.Comment, error) {
	comment := &domain.Comment{
		PostID:    input.PostID,
		Name:      input.Name,
		Email:     input.Email,
		Website:   input.Website,
		Comment:   input.Comment,
		Pending:   true,
		CreatedAt: time.Now().UTC(),
	}
	return s.comments.Create(ctx, comment)
}

func (s *BlogService) ListComments(ctx context.Context, postID string, pending *bool) ([]domain.Comment, error) {
	return s.comments.FindByPost(ctx, postID, pending)
}

func (s *BlogService) ApproveComment(ctx context.Context, id string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	comment.Pending = false
	return s.comments.Update(ctx, comment)
}

func (s *BlogService) DeleteComment(ctx context.Context, id string) error {
	if _, err := s.comments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}
