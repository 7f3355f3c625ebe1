package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/api/metrics"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

type ContactHandler struct {
	contact ports.ContactService
}

func NewContactHandler(contact ports.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

type submitInquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
	Phone   string `json:"phone"`
}

type updateInquiryRequest struct {
	Read  *bool   `json:"read"`
	Notes *string `json:"notes"`
}

// Submit accepts a public contact form message.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inquiry, err := h.contact.SubmitInquiry(c.Request().Context(), ports.SubmitInquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}

	metrics.InquiriesReceivedTotal.Inc()
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "thank you for reaching out, we will get back to you soon",
		"inquiry": inquiry,
	})
}

// List returns all inquiries, newest first. Admin only.
func (h *ContactHandler) List(c echo.Context) error {
	inquiries, err := h.contact.ListInquiries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inquiries)
}

// Update sets the read flag or internal notes on an inquiry. Admin only.
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	inquiry, err := h.contact.UpdateInquiry(c.Request().Context(), c.Param("id"), ports.UpdateInquiryInput{
		Read:  req.Read,
		Notes: req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inquiry)
}

func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contact.DeleteInquiry(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "inquiry deleted"})
}
