package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/core/ports"
)

type VacancyHandler struct {
	careers ports.CareersService
}

func NewVacancyHandler(careers ports.CareersService) *VacancyHandler {
	return &VacancyHandler{careers: careers}
}

type createVacancyRequest struct {
	Title             string `json:"title" validate:"required"`
	Description       string `json:"description" validate:"required"`
	Location          string `json:"location"`
	Type              string `json:"type" validate:"required"`
	Requirements      string `json:"requirements"`
	ClosingDate       string `json:"closingDate"`
	IsActive          *bool  `json:"isActive"`
	NumberOfEmployees int    `json:"numberOfEmployees"`
}

type updateVacancyRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Location          *string `json:"location"`
	Type              *string `json:"type"`
	Requirements      *string `json:"requirements"`
	ClosingDate       *string `json:"closingDate"`
	IsActive          *bool   `json:"isActive"`
	NumberOfEmployees *int    `json:"numberOfEmployees"`
}

func parseClosingDate(raw string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "closingDate must be YYYY-MM-DD")
	}
	return &t, nil
}

// List returns open vacancies for the public careers page.
func (h *VacancyHandler) List(c echo.Context) error {
	vacancies, err := h.careers.ListVacancies(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vacancies)
}

// ListAll returns every vacancy including inactive ones. Admin only.
func (h *VacancyHandler) ListAll(c echo.Context) error {
	vacancies, err := h.careers.ListVacancies(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vacancies)
}

func (h *VacancyHandler) Get(c echo.Context) error {
	vacancy, err := h.careers.GetVacancy(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vacancy)
}

func (h *VacancyHandler) Create(c echo.Context) error {
	var req createVacancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateVacancyInput{
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		Type:              req.Type,
		Requirements:      req.Requirements,
		IsActive:          req.IsActive,
		NumberOfEmployees: req.NumberOfEmployees,
	}
	if req.ClosingDate != "" {
		t, err := parseClosingDate(req.ClosingDate)
		if err != nil {
			return err
		}
		input.ClosingDate = t
	}

	vacancy, err := h.careers.CreateVacancy(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, vacancy)
}

func (h *VacancyHandler) Update(c echo.Context) error {
	var req updateVacancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateVacancyInput{
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		Type:              req.Type,
		Requirements:      req.Requirements,
		IsActive:          req.IsActive,
		NumberOfEmployees: req.NumberOfEmployees,
	}
	if req.ClosingDate != nil && *req.ClosingDate != "" {
		t, err := parseClosingDate(*req.ClosingDate)
		if err != nil {
			return err
		}
		input.ClosingDate = t
	}

	vacancy, err := h.careers.UpdateVacancy(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vacancy)
}

func (h *VacancyHandler) Delete(c echo.Context) error {
	if err := h.careers.DeleteVacancy(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "vacancy deleted"})
}
