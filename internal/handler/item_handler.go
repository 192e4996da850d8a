package handler

import (
	"net/http"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	uc *usecase.ItemUsecase
}

func NewItemHandler(uc *usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

type itemRequest struct {
	Description string          `json:"description" validate:"required,min=3,max=255"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gt=0"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/items", h.list)
	e.GET("/items/:id", h.get)
	e.POST("/items", h.create, g.Admin...)
	e.PUT("/items/:id", h.update, g.Admin...)
	e.DELETE("/items/:id", h.delete, g.Admin...)
}

// GET /items?page=&limit=&q=&category_id=
func (h *ItemHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}
	categoryID, err := queryInt64Ptr(c, "category_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListItemsInput{
		Page:       page,
		Limit:      limit,
		Q:          c.QueryParam("q"),
		CategoryID: categoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) create(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req itemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), actor, usecase.ItemInput{
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ItemHandler) update(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req itemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Update(c.Request().Context(), actor, id, usecase.ItemInput{
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) delete(c echo.Context) error {
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
