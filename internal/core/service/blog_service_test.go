package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

type stubPostRepo struct {
	posts  map[string]*domain.Post
	nextID int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.nextID++
	clone := *post
	clone.ID = fmt.Sprintf("post-%d", r.nextID)
	r.posts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPostRepo) FindAll(_ context.Context) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	nextID   int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.nextID++
	clone := *comment
	clone.ID = fmt.Sprintf("comment-%d", r.nextID)
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByPost(_ context.Context, postID string, pending *bool) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.PostID != postID {
			continue
		}
		if pending != nil && c.Pending != *pending {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

type blogFixture struct {
	posts    *stubPostRepo
	comments *stubCommentRepo
	svc      *BlogService
}

func newBlogFixture() *blogFixture {
	f := &blogFixture{
		posts:    newStubPostRepo(),
		comments: newStubCommentRepo(),
	}
	f.svc = NewBlogService(f.posts, f.comments, zerolog.Nop())
	return f
}

func TestBlogService_CreateAndListPosts(t *testing.T) {
	f := newBlogFixture()

	created, err := f.svc.CreatePost(context.Background(), ports.CreatePostInput{
		Title:   "Carbon accounting in practice",
		Summary: "What CSRD means for mid-size firms.",
		Content: "Long form content.",
		Author:  "admin",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an id on the created post")
	}

	posts, err := f.svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != created.Title {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestBlogService_DeletePost_Unknown(t *testing.T) {
	f := newBlogFixture()

	if err := f.svc.DeletePost(context.Background(), "missing"); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestBlogService_CommentModeration(t *testing.T) {
	f := newBlogFixture()
	post, err := f.svc.CreatePost(context.Background(), ports.CreatePostInput{Title: "T", Content: "C", Author: "admin"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	comment, err := f.svc.AddComment(context.Background(), ports.CreateCommentInput{
		PostID:  post.ID,
		Name:    "Visitor",
		Email:   "v@example.com",
		Comment: "Great read.",
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if !comment.Pending {
		t.Fatalf("new comments must start pending")
	}

	// Public listing shows approved comments only.
	approved := false
	visible, err := f.svc.ListComments(context.Background(), post.ID, &approved)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("pending comment should not be publicly visible, got %+v", visible)
	}

	if err := f.svc.ApproveComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("ApproveComment: %v", err)
	}
	visible, err = f.svc.ListComments(context.Background(), post.ID, &approved)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(visible) != 1 || visible[0].Pending {
		t.Fatalf("approved comment should be visible, got %+v", visible)
	}
}

func TestBlogService_DeleteComment(t *testing.T) {
	f := newBlogFixture()
	post, err := f.svc.CreatePost(context.Background(), ports.CreatePostInput{Title: "T", Content: "C", Author: "admin"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	comment, err := f.svc.AddComment(context.Background(), ports.CreateCommentInput{
		PostID: post.ID, Name: "V", Email: "v@example.com", Comment: "spam",
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if err := f.svc.DeleteComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if err := f.svc.DeleteComment(context.Background(), comment.ID); err != domain.ErrCommentNotFound {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}
