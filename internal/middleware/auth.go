package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/watchnow/watchnow/internal/model"
	"github.com/watchnow/watchnow/internal/repository"
	"github.com/watchnow/watchnow/internal/utils"
)

// UserResolver is the slice of the user store the guard needs: resolving
// a token subject to a stored user.
type UserResolver interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// RequireAdmin returns a middleware that gates catalog mutations behind
// the administrator role.  The request must carry a Bearer session token
// issued by /login.  The subject is re-resolved from the user store on
// every request, so a role change or account deletion takes effect
// immediately; the role claim inside the token is never trusted.
//
// Responses: 401 when the token is missing, invalid or its subject no
// longer resolves to a user; 403 when the resolved user is not an
// administrator.  On success the resolved user is stored in the context
// under "user" for handlers that want the acting identity.
func RequireAdmin(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.FindByID(ctx, uid)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
			}
			if u.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
			}

			c.Set("user", u)
			return next(c)
		}
	}
}

// ActingUser returns the user stored by RequireAdmin, or nil when the
// route is not admin-gated.
func ActingUser(c echo.Context) *model.User {
	if u, ok := c.Get("user").(*model.User); ok {
		return u
	}
	return nil
}
