package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/api/metrics"
	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

type ApplicationHandler struct {
	careers ports.CareersService
}

func NewApplicationHandler(careers ports.CareersService) *ApplicationHandler {
	return &ApplicationHandler{careers: careers}
}

type updateApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Reviewed Contacted Archived"`
}

// Submit files a job application for the authenticated user. Multipart:
// firstName, lastName, email, phone, message, optional vacancyId, and the
// cvFile attachment.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	firstName := c.FormValue("firstName")
	lastName := c.FormValue("lastName")
	email := c.FormValue("email")
	if firstName == "" || lastName == "" || email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "firstName, lastName and email are required")
	}

	fh, err := c.FormFile("cvFile")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cvFile is required")
	}
	cv, f, err := formFileUpload(fh)
	if err != nil {
		return err
	}
	defer f.Close()

	app, err := h.careers.SubmitApplication(c.Request().Context(), ports.SubmitApplicationInput{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     c.FormValue("phone"),
		Message:   c.FormValue("message"),
		UserID:    userID,
		VacancyID: c.FormValue("vacancyId"),
		CV:        cv,
	})
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	metrics.UploadsTotal.WithLabelValues("cv").Inc()
	return c.JSON(http.StatusCreated, map[string]any{
		"message":     "application submitted",
		"application": app,
	})
}

// List returns all applications, newest first, with vacancy titles joined.
// Admin only.
func (h *ApplicationHandler) List(c echo.Context) error {
	apps, err := h.careers.ListApplications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// ListMine returns the authenticated user's applications.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	apps, err := h.careers.ListUserApplications(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// UpdateStatus moves an application through the review pipeline. Admin only.
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req updateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.careers.UpdateApplicationStatus(c.Request().Context(), c.Param("id"), domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	if err := h.careers.DeleteApplication(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "application deleted"})
}
