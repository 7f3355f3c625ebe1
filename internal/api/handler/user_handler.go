package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/api/metrics"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

// UserHandler covers account management beyond the auth flow itself:
// profile pictures and admin role changes.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type updateRoleRequest struct {
	NewRole string `json:"newRole" validate:"required,oneof=user admin"`
}

// SetProfilePicture stores the uploaded avatar for the authenticated user.
func (h *UserHandler) SetProfilePicture(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("profilePicture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "profilePicture file is required")
	}
	upload, f, err := formFileUpload(fh)
	if err != nil {
		return err
	}
	defer f.Close()

	path, err := h.authService.SetProfilePicture(c.Request().Context(), userID, upload)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("profile_picture").Inc()
	return c.JSON(http.StatusOK, map[string]string{
		"message":        "profile picture updated",
		"profilePicture": path,
	})
}

// RemoveProfilePicture deletes the authenticated user's avatar.
func (h *UserHandler) RemoveProfilePicture(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.authService.RemoveProfilePicture(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "profile picture removed"})
}

// UpdateRole changes another user's role. Admin only; self-demotion is
// rejected in the service.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	actorID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateRole(c.Request().Context(), actorID, c.Param("userId"), req.NewRole)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "role updated",
		"user":    user,
	})
}
