package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

// AdminOnly gates a route to admin accounts. The user is re-fetched from the
// store rather than trusted from the token, so a demotion takes effect on
// the next request even while the old token is still live.
func AdminOnly(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is not valid")
			}
			if user.Role != domain.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			return next(c)
		}
	}
}
