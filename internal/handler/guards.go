package handler

import (
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/config"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/middleware"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"github.com/labstack/echo/v4"
)

// Guards are the middleware chains handlers attach to their routes.
type Guards struct {
	Auth  []echo.MiddlewareFunc
	Admin []echo.MiddlewareFunc
	Login []echo.MiddlewareFunc
}

// NewGuards builds the auth chain (JWT then stored-user check) and the admin
// chain on top of it. loginLimit may be nil.
func NewGuards(cfg config.JWTConfig, users repository.UserRepository, loginLimit echo.MiddlewareFunc) Guards {
	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.CurrentUserGuard(users),
	}
	admin := append(append([]echo.MiddlewareFunc{}, auth...), middleware.AdminRoleGuard())

	g := Guards{Auth: auth, Admin: admin}
	if loginLimit != nil {
		g.Login = []echo.MiddlewareFunc{loginLimit}
	}
	return g
}
