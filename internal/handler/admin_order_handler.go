package handler

import (
	"net/http"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type orderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING DELIVERED CANCELLED"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.PUT("/orders/:id/status", h.updateStatus, g.Admin...)
	e.GET("/admin/orders", h.list, g.Admin...)
}

// GET /admin/orders?page=&limit=&status=&user_id=&from=&to=
func (h *AdminOrderHandler) list(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	userID, err := queryInt64Ptr(c, "user_id")
	if err != nil {
		return writeError(c, err)
	}
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), actor, repository.AdminOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req orderStatusUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), actor, orderID, usecase.UpdateOrderStatusInput{Status: req.Status})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// RFC3339 or a plain date (YYYY-MM-DD, UTC midnight)
func queryTime(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	if tm, err := time.Parse(time.RFC3339, v); err == nil {
		return &tm, nil
	}
	tm, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, usecase.Validation("invalid %s", name)
	}
	return &tm, nil
}
