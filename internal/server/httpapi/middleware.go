package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dverbis/itemkeeper/internal/server/models"
)

// userContextKey is where the auth middleware stores the resolved user.
const userContextKey = "user"

// auth validates the bearer token and injects the account into the request
// context. Every failure is a plain 401: the client cannot distinguish a
// missing header from an expired token or a deactivated account.
func (s *Server) auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return detailJSON(c, http.StatusUnauthorized, "Not authenticated")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return detailJSON(c, http.StatusUnauthorized, "Not authenticated")
		}

		user, err := s.users.GetByToken(c.Request().Context(), parts[1])
		if err != nil {
			return detailJSON(c, http.StatusUnauthorized, "Could not validate credentials")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// currentUser returns the account stored by the auth middleware.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
