package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	tracer trace.Tracer
	now    func() time.Time
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:     tx,
		tracer: otel.Tracer(tracerName),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type UpdateOrderStatusInput struct {
	Status string
}

type OrderStatusOutput struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminOrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

type orderStatusAudit struct {
	Status model.OrderStatus `json:"status"`
}

// List is the admin order listing.
func (u *AdminOrderUsecase) List(ctx context.Context, actor policy.Actor, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	ctx, span := u.tracer.Start(ctx, "order.list_all")
	defer span.End()

	if !policy.CanListAllOrders(actor).Allowed() {
		return AdminOrderListOutput{}, failSpan(span, Forbidden())
	}
	if f.Page < 1 {
		return AdminOrderListOutput{}, Validation("invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, Validation("invalid limit")
	}
	if f.Status != "" {
		f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
		if !model.OrderStatus(f.Status).Valid() {
			return AdminOrderListOutput{}, Validation("invalid status %q", f.Status)
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return AdminOrderListOutput{}, Validation("from must not be after to")
	}

	out := AdminOrderListOutput{Orders: []OrderOutput{}, Page: f.Page, Limit: f.Limit}
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return err
		}
		out.Total = total
		for _, o := range orders {
			out.Orders = append(out.Orders, toOrderOutput(o))
		}
		return nil
	})
	if err != nil {
		return AdminOrderListOutput{}, failSpan(span, fromRepoError(ctx, "list orders", "order", err))
	}
	return out, nil
}

// UpdateStatus moves an order through its lifecycle. Only admins may do it,
// whoever owns the order. The row is locked for the duration of the change
// and an audit entry is written in the same transaction.
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actor policy.Actor, orderID int64, in UpdateOrderStatusInput) (OrderStatusOutput, error) {
	ctx, span := u.tracer.Start(ctx, "order.update_status", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	if !policy.CanModifyOrderStatus(actor).Allowed() {
		return OrderStatusOutput{}, failSpan(span, Forbidden())
	}
	if orderID <= 0 {
		return OrderStatusOutput{}, Validation("invalid id")
	}

	next := model.OrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !next.Valid() {
		return OrderStatusOutput{}, Validation("invalid status %q", in.Status)
	}

	var out OrderStatusOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		//same status: nothing to write
		if o.Status == next {
			out = OrderStatusOutput{ID: o.ID, Status: string(o.Status), UpdatedAt: o.UpdatedAt}
			return nil
		}
		if !policy.CanTransition(o.Status, next).Allowed() {
			return Validation("cannot change order status from %s to %s", o.Status, next)
		}

		at := u.now()
		if err := r.Orders().UpdateStatus(ctx, orderID, next, at); err != nil {
			return err
		}

		before, _ := json.Marshal(orderStatusAudit{Status: o.Status})
		after, _ := json.Marshal(orderStatusAudit{Status: next})
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(before),
			AfterJSON:    string(after),
			CreatedAt:    at,
		}); err != nil {
			return err
		}

		out = OrderStatusOutput{ID: orderID, Status: string(next), UpdatedAt: at}
		return nil
	})
	if err != nil {
		return OrderStatusOutput{}, failSpan(span, fromRepoError(ctx, "update order status", "order", err))
	}
	return out, nil
}
