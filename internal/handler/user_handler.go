package handler

import (
	"net/http"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"
	auth "github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	registerUC *auth.RegisterUserUsecase
	uc         *usecase.UserUsecase
}

func NewUserHandler(registerUC *auth.RegisterUserUsecase, uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{registerUC: registerUC, uc: uc}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,len=11,numeric"`
	Consent  bool   `json:"consent"`
}

type updateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" validate:"omitempty,len=11,numeric"`
	Role     *string `json:"role" validate:"omitempty,oneof=CLIENT ADMIN"`
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.POST("/users", h.register)
	e.GET("/users", h.list, g.Admin...)
	e.GET("/users/:id", h.get, g.Auth...)
	e.PUT("/users/:id", h.update, g.Auth...)
	e.DELETE("/users/:id", h.delete, g.Admin...)
}

func (h *UserHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Consent:  req.Consent,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) list(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), actor, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) get(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	user, err := h.uc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) update(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.uc.Update(c.Request().Context(), actor, id, usecase.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) delete(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Delete(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
