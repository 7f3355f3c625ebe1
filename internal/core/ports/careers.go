package ports

import (
	"context"
	"time"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

// VacancyRepository defines persistence for open positions.
type VacancyRepository interface {
	Create(ctx context.Context, vacancy *domain.Vacancy) (*domain.Vacancy, error)
	FindAll(ctx context.Context, onlyActive bool) ([]domain.Vacancy, error)
	FindByID(ctx context.Context, id string) (*domain.Vacancy, error)
	Update(ctx context.Context, vacancy *domain.Vacancy) error
	Delete(ctx context.Context, id string) error
}

// ApplicationRepository defines persistence for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindAll(ctx context.Context) ([]domain.Application, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id string) error
}

// CreateVacancyInput carries the fields of a new vacancy. Requirements is
// the raw comma-separated form value; the service splits and trims it.
type CreateVacancyInput struct {
	Title             string
	Description       string
	Location          string
	Type              string
	Requirements      string
	ClosingDate       *time.Time
	IsActive          *bool
	NumberOfEmployees int
}

// UpdateVacancyInput updates only the fields that are set.
type UpdateVacancyInput struct {
	Title             *string
	Description       *string
	Location          *string
	Type              *string
	Requirements      *string
	ClosingDate       *time.Time
	IsActive          *bool
	NumberOfEmployees *int
}

// SubmitApplicationInput carries an application form plus the uploaded CV.
type SubmitApplicationInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
	UserID    string
	VacancyID string
	CV        FileUpload
}

type CareersService interface {
	ListVacancies(ctx context.Context, includeInactive bool) ([]domain.Vacancy, error)
	GetVacancy(ctx context.Context, id string) (*domain.Vacancy, error)
	CreateVacancy(ctx context.Context, input CreateVacancyInput) (*domain.Vacancy, error)
	UpdateVacancy(ctx context.Context, id string, input UpdateVacancyInput) (*domain.Vacancy, error)
	DeleteVacancy(ctx context.Context, id string) error

	SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*domain.Application, error)
	ListApplications(ctx context.Context) ([]domain.Application, error)
	ListUserApplications(ctx context.Context, userID string) ([]domain.Application, error)
	// UpdateApplicationStatus moves an application through the review
	// pipeline; entering Contacted sends an interview invitation.
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	DeleteApplication(ctx context.Context, id string) error
}
