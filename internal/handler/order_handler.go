package handler

import (
	"net/http"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderLineRequest struct {
	ItemID   int64 `json:"item_id" validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"required,gte=1,lte=1000"`
}

type orderCreateRequest struct {
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=CASH DEBIT CREDIT PIX"`
	Items         []orderLineRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.POST("/orders", h.create, g.Auth...)
	e.GET("/orders/:id", h.detail, g.Auth...)
	e.GET("/users/:id/orders", h.listForUser, g.Auth...)
}

// The client is always the caller; the body cannot name another user.
func (h *OrderHandler) create(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req orderCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, l := range req.Items {
		lines = append(lines, usecase.OrderLineInput{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), actor, usecase.CreateOrderInput{
		PaymentMethod: req.PaymentMethod,
		Items:         lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listForUser(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListOrdersForUser(c.Request().Context(), actor, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
