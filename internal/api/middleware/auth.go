package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// RequireSession validates the session token from the cookie or a bearer
// header and injects the session into context. Failures are 401 JSON
// responses, suited to API routes.
func RequireSession(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			sess, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}
