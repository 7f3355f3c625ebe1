package domain

import "time"

// VacancyType is the employment kind of a vacancy.
type VacancyType string

const (
	VacancyFullTime   VacancyType = "Full-time"
	VacancyPartTime   VacancyType = "Part-time"
	VacancyContract   VacancyType = "Contract"
	VacancyInternship VacancyType = "Internship"
)

// ValidVacancyType reports whether t is a known employment kind.
func ValidVacancyType(t VacancyType) bool {
	switch t {
	case VacancyFullTime, VacancyPartTime, VacancyContract, VacancyInternship:
		return true
	}
	return false
}

// Vacancy is an open position listed on the careers page.
type Vacancy struct {
	ID                string      `json:"id" bson:"_id,omitempty"`
	Title             string      `json:"title" bson:"title"`
	Description       string      `json:"description" bson:"description"`
	Location          string      `json:"location" bson:"location"`
	Type              VacancyType `json:"type" bson:"type"`
	Requirements      []string    `json:"requirements" bson:"requirements"`
	ClosingDate       *time.Time  `json:"closingDate,omitempty" bson:"closing_date,omitempty"`
	IsActive          bool        `json:"isActive" bson:"is_active"`
	NumberOfEmployees int         `json:"numberOfEmployees,omitempty" bson:"number_of_employees,omitempty"`
	CreatedAt         time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" bson:"updated_at"`
}

// ApplicationStatus tracks where an application sits in the review pipeline.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "Pending"
	ApplicationReviewed  ApplicationStatus = "Reviewed"
	ApplicationContacted ApplicationStatus = "Contacted"
	ApplicationArchived  ApplicationStatus = "Archived"
)

// ValidApplicationStatus reports whether s is a known pipeline status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationContacted, ApplicationArchived:
		return true
	}
	return false
}

// Application is a job application submitted by a registered user, with an
// uploaded CV and an optional link to a specific vacancy.
type Application struct {
	ID           string            `json:"id" bson:"_id,omitempty"`
	FirstName    string            `json:"firstName" bson:"first_name"`
	LastName     string            `json:"lastName" bson:"last_name"`
	Email        string            `json:"email" bson:"email"`
	Phone        string            `json:"phone,omitempty" bson:"phone,omitempty"`
	Message      string            `json:"message" bson:"message"`
	CVPath       string            `json:"cvPath,omitempty" bson:"cv_path,omitempty"`
	UserID       string            `json:"userId" bson:"user_id"`
	VacancyID    string            `json:"vacancyId,omitempty" bson:"vacancy_id,omitempty"`
	VacancyTitle string            `json:"vacancyTitle,omitempty" bson:"-"`
	Status       ApplicationStatus `json:"status" bson:"status"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
}
