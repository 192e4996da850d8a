package repository

import (
	"context"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	//Items and Client are preloaded
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//same as FindByID but locks the order row until the transaction ends
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	//newest first
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, at time.Time) error
	//admin listing with filters
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
