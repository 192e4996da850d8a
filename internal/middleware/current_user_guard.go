package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"github.com/labstack/echo/v4"
)

// CurrentUserGuard runs after AuthJWT. Tokens of deleted users are rejected
// and the role in context is replaced by the stored one, so a role change
// applies before the old token expires.
func CurrentUserGuard(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			u, err := users.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if err != nil {
				slog.ErrorContext(c.Request().Context(), "current user lookup failed", "user_id", userID, "error", err)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.Set(CtxUserRoleKey, string(u.Role))
			return next(c)
		}
	}
}
