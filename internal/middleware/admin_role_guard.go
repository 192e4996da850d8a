package middleware

import (
	"net/http"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AdminRoleGuard must run after AuthJWT. CLIENT callers get 403.
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if model.Role(role) != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, errorResponse{Error: "admin only", Kind: "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
