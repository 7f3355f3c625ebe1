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

type stubContactRepo struct {
	inquiries map[string]*domain.ContactInquiry
	nextID    int
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{inquiries: make(map[string]*domain.ContactInquiry)}
}

func (r *stubContactRepo) Create(_ context.Context, inquiry *domain.ContactInquiry) (*domain.ContactInquiry, error) {
	r.nextID++
	clone := *inquiry
	clone.ID = fmt.Sprintf("inquiry-%d", r.nextID)
	r.inquiries[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubContactRepo) FindAll(_ context.Context) ([]domain.ContactInquiry, error) {
	var out []domain.ContactInquiry
	for _, in := range r.inquiries {
		out = append(out, *in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubContactRepo) FindByID(_ context.Context, id string) (*domain.ContactInquiry, error) {
	in, ok := r.inquiries[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	clone := *in
	return &clone, nil
}

func (r *stubContactRepo) Update(_ context.Context, inquiry *domain.ContactInquiry) error {
	if _, ok := r.inquiries[inquiry.ID]; !ok {
		return domain.ErrInquiryNotFound
	}
	clone := *inquiry
	r.inquiries[inquiry.ID] = &clone
	return nil
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.inquiries[id]; !ok {
		return domain.ErrInquiryNotFound
	}
	delete(r.inquiries, id)
	return nil
}

func TestContactService_SubmitAndUpdateInquiry(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, zerolog.Nop())

	created, err := svc.SubmitInquiry(context.Background(), ports.SubmitInquiryInput{
		Name:    "Lena",
		Email:   "lena@example.com",
		Subject: "Partnership",
		Message: "We would like to collaborate.",
	})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}
	if created.Read {
		t.Fatalf("new inquiries must start unread")
	}

	read := true
	notes := "Followed up by phone."
	updated, err := svc.UpdateInquiry(context.Background(), created.ID, ports.UpdateInquiryInput{
		Read:  &read,
		Notes: &notes,
	})
	if err != nil {
		t.Fatalf("UpdateInquiry: %v", err)
	}
	if !updated.Read || updated.Notes != notes {
		t.Fatalf("unexpected inquiry after update: %+v", updated)
	}

	all, err := svc.ListInquiries(context.Background())
	if err != nil {
		t.Fatalf("ListInquiries: %v", err)
	}
	if len(all) != 1 || !all[0].Read {
		t.Fatalf("expected the updated inquiry, got %+v", all)
	}
}

func TestContactService_DeleteInquiry(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, zerolog.Nop())

	created, err := svc.SubmitInquiry(context.Background(), ports.SubmitInquiryInput{
		Name:    "Lena",
		Email:   "lena@example.com",
		Subject: "Spam",
		Message: "buy now",
	})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}

	if err := svc.DeleteInquiry(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteInquiry: %v", err)
	}
	if err := svc.DeleteInquiry(context.Background(), created.ID); err != domain.ErrInquiryNotFound {
		t.Fatalf("expected ErrInquiryNotFound, got %v", err)
	}
}
