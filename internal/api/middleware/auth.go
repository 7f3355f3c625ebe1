package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// HeaderAuthToken is the request header carrying the session JWT. The token
// travels bare, without a Bearer prefix.
const HeaderAuthToken = "x-auth-token"

// Auth validates the JWT from the x-auth-token header and injects the
// user_id and role claims into context. All failures read the same to the
// client; the cause is not leaked.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderAuthToken)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is not valid")
			}

			c.Set("user_id", claims["id"])
			c.Set("role", claims["role"])

			return next(c)
		}
	}
}

// OptionalAuth parses the x-auth-token header when present but lets
// anonymous requests through. Public routes use it to widen visibility for
// logged-in staff without demanding a token.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderAuthToken)
			if raw == "" {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err == nil && tkn.Valid {
				c.Set("user_id", claims["id"])
				c.Set("role", claims["role"])
			}

			return next(c)
		}
	}
}
