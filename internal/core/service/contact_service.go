package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

// ContactService manages contact-form inquiries.
type ContactService struct {
	inquiries ports.ContactRepository
	logger    zerolog.Logger
}

func NewContactService(inquiries ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{inquiries: inquiries, logger: logger}
}

func (s *ContactService) SubmitInquiry(ctx context.Context, input ports.SubmitInquiryInput) (*domain.ContactInquiry, error) {
	now := time.Now().UTC()
	inquiry := &domain.ContactInquiry{
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		Phone:     input.Phone,
		Read:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("inquiry_id", created.ID).Str("subject", created.Subject).Msg("contact inquiry received")
	return created, nil
}

func (s *ContactService) ListInquiries(ctx context.Context) ([]domain.ContactInquiry, error) {
	return s.inquiries.FindAll(ctx)
}

func (s *ContactService) UpdateInquiry(ctx context.Context, id string, input ports.UpdateInquiryInput) (*domain.ContactInquiry, error) {
	inquiry, err := s.inquiries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Read != nil {
		inquiry.Read = *input.Read
	}
	if input.Notes != nil {
		inquiry.Notes = *input.Notes
	}
	inquiry.UpdatedAt = time.Now().UTC()

	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *ContactService) DeleteInquiry(ctx context.Context, id string) error {
	if _, err := s.inquiries.FindByID(ctx, id); err != nil {
		return err
	}
	return s.inquiries.Delete(ctx, id)
}
