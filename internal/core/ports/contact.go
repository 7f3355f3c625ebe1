package ports

import (
	"context"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

// ContactRepository defines persistence for contact-form inquiries.
type ContactRepository interface {
	Create(ctx context.Context, inquiry *domain.ContactInquiry) (*domain.ContactInquiry, error)
	FindAll(ctx context.Context) ([]domain.ContactInquiry, error)
	FindByID(ctx context.Context, id string) (*domain.ContactInquiry, error)
	Update(ctx context.Context, inquiry *domain.ContactInquiry) error
	Delete(ctx context.Context, id string) error
}

// SubmitInquiryInput carries the public contact form fields.
type SubmitInquiryInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	Phone   string
}

// UpdateInquiryInput updates only the fields that are set.
type UpdateInquiryInput struct {
	Read  *bool
	Notes *string
}

type ContactService interface {
	SubmitInquiry(ctx context.Context, input SubmitInquiryInput) (*domain.ContactInquiry, error)
	ListInquiries(ctx context.Context) ([]domain.ContactInquiry, error)
	UpdateInquiry(ctx context.Context, id string, input UpdateInquiryInput) (*domain.ContactInquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
}
