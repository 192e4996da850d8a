package handler

import (
	"net/http"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

type addressRequest struct {
	Street   string `json:"street" validate:"required"`
	Number   string `json:"number" validate:"required"`
	District string `json:"district" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required,len=2,alpha"`
	ZipCode  string `json:"zip_code" validate:"required"`
}

// The address is addressed through its owner: /users/:id/address.
func (h *AddressHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/users/:id/address", h.get, g.Auth...)
	e.PUT("/users/:id/address", h.upsert, g.Auth...)
	e.DELETE("/users/:id/address", h.delete, g.Auth...)
}

func (h *AddressHandler) get(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	addr, err := h.uc.Get(c.Request().Context(), actor, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHandler) upsert(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req addressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	addr, err := h.uc.Upsert(c.Request().Context(), actor, userID, usecase.AddressInput{
		Street:   req.Street,
		Number:   req.Number,
		District: req.District,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHandler) delete(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Delete(c.Request().Context(), actor, userID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
