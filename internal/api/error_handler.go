package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "username is already taken"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "email is already registered"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusBadRequest, "invalid verification code"
	case errors.Is(err, domain.ErrExpiredOTP):
		return http.StatusBadRequest, "verification code has expired"
	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests, "too many verification requests, try again later"
	case errors.Is(err, domain.ErrMailDelivery):
		return http.StatusInternalServerError, "failed to send email"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "invalid role"
	case errors.Is(err, domain.ErrSelfDemotion):
		return http.StatusForbidden, "admins cannot change their own role"
	case errors.Is(err, domain.ErrNoProfilePicture):
		return http.StatusBadRequest, "no profile picture set"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "unsupported file type"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "file is too large"
	case errors.Is(err, domain.ErrAlbumNotFound):
		return http.StatusNotFound, "album not found"
	case errors.Is(err, domain.ErrAlbumTitleTaken):
		return http.StatusBadRequest, "an album with this title already exists"
	case errors.Is(err, domain.ErrAlbumFull):
		return http.StatusBadRequest, fmt.Sprintf("albums hold at most %d photos", domain.MaxPhotosPerAlbum)
	case errors.Is(err, domain.ErrPhotoNotFound):
		return http.StatusNotFound, "photo not found"
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "post not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "comment not found"
	case errors.Is(err, domain.ErrVacancyNotFound):
		return http.StatusNotFound, "vacancy not found"
	case errors.Is(err, domain.ErrInvalidVacancyType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrApplicationNotFound):
		return http.StatusNotFound, "application not found"
	case errors.Is(err, domain.ErrInquiryNotFound):
		return http.StatusNotFound, "inquiry not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
