package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

const applicationCVDir = "applications"

// CareersService manages vacancies and the applications submitted against
// them, including CV files and the interview-invitation mail.
type CareersService struct {
	vacancies    ports.VacancyRepository
	applications ports.ApplicationRepository
	files        ports.FileStore
	mailer       ports.Mailer
	logger       zerolog.Logger
}

func NewCareersService(
	vacancies ports.VacancyRepository,
	applications ports.ApplicationRepository,
	files ports.FileStore,
	mailer ports.Mailer,
	logger zerolog.Logger,
) *CareersService {
	return &CareersService{
		vacancies:    vacancies,
		applications: applications,
		files:        files,
		mailer:       mailer,
		logger:       logger,
	}
}

func (s *CareersService) ListVacancies(ctx context.Context, includeInactive bool) ([]domain.Vacancy, error) {
	return s.vacancies.FindAll(ctx, !includeInactive)
}

func (s *CareersService) GetVacancy(ctx context.Context, id string) (*domain.Vacancy, error) {
	return s.vacancies.FindByID(ctx, id)
}

func (s *CareersService) CreateVacancy(ctx context.Context, input ports.CreateVacancyInput) (*domain.Vacancy, error) {
	vtype := domain.VacancyType(input.Type)
	if !domain.ValidVacancyType(vtype) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVacancyType, input.Type)
	}

	now := time.Now().UTC()
	vacancy := &domain.Vacancy{
		Title:             input.Title,
		Description:       input.Description,
		Location:          input.Location,
		Type:              vtype,
		Requirements:      splitRequirements(input.Requirements),
		ClosingDate:       input.ClosingDate,
		IsActive:          true,
		NumberOfEmployees: input.NumberOfEmployees,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if input.IsActive != nil {
		vacancy.IsActive = *input.IsActive
	}

	created, err := s.vacancies.Create(ctx, vacancy)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("vacancy_id", created.ID).Str("title", created.Title).Msg("vacancy created")
	return created, nil
}

func (s *CareersService) UpdateVacancy(ctx context.Context, id string, input ports.UpdateVacancyInput) (*domain.Vacancy, error) {
	vacancy, err := s.vacancies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		vacancy.Title = *input.Title
	}
	if input.Description != nil {
		vacancy.Description = *input.Description
	}
	if input.Location != nil {
		vacancy.Location = *input.Location
	}
	if input.Type != nil {
		vtype := domain.VacancyType(*input.Type)
		if !domain.ValidVacancyType(vtype) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVacancyType, *input.Type)
		}
		vacancy.Type = vtype
	}
	if input.Requirements != nil {
		vacancy.Requirements = splitRequirements(*input.Requirements)
	}
	if input.ClosingDate != nil {
		vacancy.ClosingDate = input.ClosingDate
	}
	if input.IsActive != nil {
		vacancy.IsActive = *input.IsActive
	}
	if input.NumberOfEmployees != nil {
		vacancy.NumberOfEmployees = *input.NumberOfEmployees
	}

	vacancy.UpdatedAt = time.Now().UTC()
	if err := s.vacancies.Update(ctx, vacancy); err != nil {
		return nil, err
	}
	return vacancy, nil
}

func (s *CareersService) DeleteVacancy(ctx context.Context, id string) error {
	if _, err := s.vacancies.FindByID(ctx, id); err != nil {
		return err
	}
	return s.vacancies.Delete(ctx, id)
}

// SubmitApplication stores the CV and creates the application for the
// authenticated user. The vacancy link is optional: general applications
// carry no vacancy id.
func (s *CareersService) SubmitApplication(ctx context.Context, input ports.SubmitApplicationInput) (*domain.Application, error) {
	if err := checkUpload(input.CV, maxCVSize, documentExtensions); err != nil {
		return nil, err
	}
	if input.VacancyID != "" {
		if _, err := s.vacancies.FindByID(ctx, input.VacancyID); err != nil {
			return nil, err
		}
	}

	stored, err := s.files.Save(ctx, applicationCVDir, storedName(input.CV.Filename), input.CV.Reader)
	if err != nil {
		return nil, fmt.Errorf("store CV: %w", err)
	}

	now := time.Now().UTC()
	app := &domain.Application{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		CVPath:    stored,
		UserID:    input.UserID,
		VacancyID: input.VacancyID,
		Status:    domain.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.applications.Create(ctx, app)
	if err != nil {
		_ = s.files.Delete(ctx, stored)
		return nil, err
	}

	s.logger.Info().Str("application_id", created.ID).Str("user_id", created.UserID).Msg("application submitted")
	return created, nil
}

func (s *CareersService) ListApplications(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.applications.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.attachVacancyTitles(ctx, apps)
	return apps, nil
}

func (s *CareersService) ListUserApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := s.applications.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.attachVacancyTitles(ctx, apps)
	return apps, nil
}

// UpdateApplicationStatus moves an application through the review pipeline.
// Entering Contacted sends the interview invitation; delivery failure is
// logged but does not roll back the status change.
func (s *CareersService) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := app.Status
	if previous == status {
		return app, nil
	}

	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, err
	}

	if status == domain.ApplicationContacted {
		jobTitle := "General Application"
		if app.VacancyID != "" {
			if vacancy, err := s.vacancies.FindByID(ctx, app.VacancyID); err == nil {
				jobTitle = vacancy.Title
			}
		}
		name := app.FirstName + " " + app.LastName
		if err := s.mailer.SendInterviewInvitation(ctx, app.Email, name, jobTitle); err != nil {
			s.logger.Error().Err(err).Str("application_id", app.ID).Msg("failed to send interview invitation")
		}
	}

	s.logger.Info().
		Str("application_id", app.ID).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("application status updated")
	return app, nil
}

func (s *CareersService) DeleteApplication(ctx context.Context, id string) error {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if app.CVPath != "" {
		_ = s.files.Delete(ctx, app.CVPath)
	}
	return s.applications.Delete(ctx, id)
}

func (s *CareersService) attachVacancyTitles(ctx context.Context, apps []domain.Application) {
	titles := make(map[string]string)
	for i := range apps {
		id := apps[i].VacancyID
		if id == "" {
			continue
		}
		title, ok := titles[id]
		if !ok {
			vacancy, err := s.vacancies.FindByID(ctx, id)
			if err != nil {
				if !errors.Is(err, domain.ErrVacancyNotFound) {
					s.logger.Warn().Err(err).Str("vacancy_id", id).Msg("failed to resolve vacancy title")
				}
				titles[id] = ""
				continue
			}
			title = vacancy.Title
			titles[id] = title
		}
		apps[i].VacancyTitle = title
	}
}

// splitRequirements turns the comma-separated form value into a clean list.
func splitRequirements(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
