package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

// MaxLineQuantity bounds one order line after repeated items are merged.
const MaxLineQuantity = 1000

type OrderUsecase struct {
	tx     repo.TransactionManager
	tracer trace.Tracer
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx, tracer: otel.Tracer(tracerName)}
}

type OrderLineInput struct {
	ItemID   int64
	Quantity int64
}

type CreateOrderInput struct {
	PaymentMethod string
	Items         []OrderLineInput
}

type OrderItemOutput struct {
	ItemID      int64           `json:"item_id"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderClientOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type OrderOutput struct {
	ID            int64              `json:"id"`
	UserClient    int64              `json:"user_client"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Client        *OrderClientOutput `json:"client,omitempty"`
	Items         []OrderItemOutput  `json:"items"`
}

// CreateOrder places an order for the actor. The order row, its lines and
// the re-read happen in one transaction; nothing is left behind on failure.
func (u *OrderUsecase) CreateOrder(ctx context.Context, actor policy.Actor, in CreateOrderInput) (OrderOutput, error) {
	ctx, span := u.tracer.Start(ctx, "order.create", trace.WithAttributes(attribute.Int64("user.id", actor.ID)))
	defer span.End()

	if actor.ID <= 0 {
		return OrderOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}

	pm := model.PaymentMethod(strings.ToUpper(strings.TrimSpace(in.PaymentMethod)))
	if !pm.Valid() {
		return OrderOutput{}, Validation("invalid payment_method %q", in.PaymentMethod)
	}

	lines, err := normalizeLines(in.Items)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Users().Exists(ctx, actor.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ReferenceNotFound("user", actor.ID)
		}

		ids := make([]int64, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ItemID)
		}
		found, err := r.Items().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[int64]model.Item, len(found))
		for _, it := range found {
			byID[it.ID] = it
		}

		//snapshot description and price at purchase time
		orderItems := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			it, ok := byID[l.ItemID]
			if !ok {
				return ReferenceNotFound("item", l.ItemID)
			}
			orderItems = append(orderItems, model.OrderItem{
				ItemID:              it.ID,
				Quantity:            l.Quantity,
				DescriptionSnapshot: it.Description,
				UnitPriceSnapshot:   it.UnitPrice,
			})
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserClient:    actor.ID,
			PaymentMethod: pm,
			Status:        model.OrderStatusPending,
		})
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		out = toOrderOutput(created)
		return nil
	})
	if err != nil {
		return OrderOutput{}, failSpan(span, fromRepoError(ctx, "create order", "order", err))
	}

	span.SetAttributes(attribute.Int64("order.id", out.ID))
	return out, nil
}

// GetOrder returns the order when the actor owns it or is an admin.
// A missing order is reported before the ownership check.
func (u *OrderUsecase) GetOrder(ctx context.Context, actor policy.Actor, orderID int64) (OrderOutput, error) {
	ctx, span := u.tracer.Start(ctx, "order.get", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	if orderID <= 0 {
		return OrderOutput{}, Validation("invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !policy.CanAccess(actor, o).Allowed() {
			return Forbidden()
		}
		out = toOrderOutput(o)
		return nil
	})
	if err != nil {
		return OrderOutput{}, failSpan(span, fromRepoError(ctx, "get order", "order", err))
	}
	return out, nil
}

// ListOrdersForUser returns the user's orders, newest first.
func (u *OrderUsecase) ListOrdersForUser(ctx context.Context, actor policy.Actor, userID int64) ([]OrderOutput, error) {
	ctx, span := u.tracer.Start(ctx, "order.list_for_user", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	if !policy.CanAccessUserScope(actor, userID).Allowed() {
		return []OrderOutput{}, failSpan(span, Forbidden())
	}

	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return err
		}
		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, failSpan(span, fromRepoError(ctx, "list orders", "order", err))
	}
	return outs, nil
}

// normalizeLines validates order lines and merges repeated items,
// keeping the position of the first occurrence.
func normalizeLines(in []OrderLineInput) ([]OrderLineInput, error) {
	if len(in) == 0 {
		return nil, Validation("order must contain at least one item")
	}

	out := make([]OrderLineInput, 0, len(in))
	pos := make(map[int64]int, len(in))
	for i, l := range in {
		if l.ItemID <= 0 {
			return nil, Validation("items[%d]: invalid item_id", i)
		}
		if l.Quantity < 1 {
			return nil, Validation("items[%d]: quantity must be at least 1", i)
		}
		if l.Quantity > MaxLineQuantity {
			return nil, Validation("items[%d]: quantity must be at most %d", i, MaxLineQuantity)
		}
		if p, ok := pos[l.ItemID]; ok {
			if out[p].Quantity+l.Quantity > MaxLineQuantity {
				return nil, Validation("item %d: total quantity must be at most %d", l.ItemID, MaxLineQuantity)
			}
			out[p].Quantity += l.Quantity
			continue
		}
		pos[l.ItemID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			ItemID:      it.ItemID,
			Description: it.DescriptionSnapshot,
			UnitPrice:   it.UnitPriceSnapshot,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
		})
	}

	out := OrderOutput{
		ID:            o.ID,
		UserClient:    o.UserClient,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		Total:         o.Total(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
	if o.Client != nil {
		out.Client = &OrderClientOutput{ID: o.Client.ID, Name: o.Client.Name, Phone: o.Client.Phone}
	}
	return out
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
