package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminOrderFixture struct {
	tx     *TxManagerMock
	orders *OrderRepoMock
	audit  *AuditRepoMock
	uc     *usecase.AdminOrderUsecase
}

func newAdminOrderFixture() *adminOrderFixture {
	f := &adminOrderFixture{
		tx:     new(TxManagerMock),
		orders: new(OrderRepoMock),
		audit:  new(AuditRepoMock),
	}
	f.tx.Repos = &TxReposMock{orders: f.orders, auditLogs: f.audit}
	f.uc = usecase.NewAdminOrderUsecase(f.tx)
	return f
}

// =====================
// List
// =====================

func TestAdminOrderUsecase_List_Validation(t *testing.T) {
	from := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		f    repo.AdminOrderListFilter
		want string
	}{
		{"page", repo.AdminOrderListFilter{Page: 0, Limit: 20}, "invalid page"},
		{"limit zero", repo.AdminOrderListFilter{Page: 1, Limit: 0}, "invalid limit"},
		{"limit too big", repo.AdminOrderListFilter{Page: 1, Limit: 101}, "invalid limit"},
		{"status", repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "SHIPPED"}, "invalid status"},
		{"range", repo.AdminOrderListFilter{Page: 1, Limit: 20, From: &from, To: &to}, "from must not be after to"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAdminOrderFixture()
			out, err := f.uc.List(context.Background(), admin1, tc.f)
			assert.Empty(t, out.Orders)
			assertErrContains(t, err, tc.want)
			assert.True(t, errors.Is(err, usecase.ErrValidationFailed))
			f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
		})
	}
}

func TestAdminOrderUsecase_List_ClientForbidden(t *testing.T) {
	f := newAdminOrderFixture()
	_, err := f.uc.List(context.Background(), client42, repo.AdminOrderListFilter{Page: 1, Limit: 20})
	assert.True(t, errors.Is(err, usecase.ErrForbidden))
}

func TestAdminOrderUsecase_List_Success(t *testing.T) {
	f := newAdminOrderFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)

	filter := repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "PENDING"}
	f.orders.On("ListAdmin", mock.Anything, filter).Return([]model.Order{
		{ID: 10, UserClient: 42, Status: model.OrderStatusPending},
		{ID: 11, UserClient: 5, Status: model.OrderStatusPending},
	}, int64(7), nil)

	out, err := f.uc.List(context.Background(), admin1, repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, out.Orders, 2)
	assert.Equal(t, int64(7), out.Total)
	f.orders.AssertExpectations(t)
}

// =====================
// UpdateStatus
// =====================

func TestAdminOrderUsecase_UpdateStatus_ClientForbiddenEvenAsOwner(t *testing.T) {
	f := newAdminOrderFixture()

	_, err := f.uc.UpdateStatus(context.Background(), client42, 9, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})

	assert.True(t, errors.Is(err, usecase.ErrForbidden))
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_PendingToDelivered(t *testing.T) {
	f := newAdminOrderFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(9)).
		Return(model.Order{ID: 9, UserClient: 42, Status: model.OrderStatusPending}, nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(9), model.OrderStatusDelivered, mock.AnythingOfType("time.Time")).
		Return(nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == 1 &&
			l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == 9 &&
			l.BeforeJSON == `{"status":"PENDING"}` &&
			l.AfterJSON == `{"status":"DELIVERED"}`
	})).Return(nil)

	out, err := f.uc.UpdateStatus(context.Background(), admin1, 9, usecase.UpdateOrderStatusInput{Status: "DELIVERED"})
	require.NoError(t, err)

	assert.Equal(t, int64(9), out.ID)
	assert.Equal(t, "DELIVERED", out.Status)
	assert.False(t, out.UpdatedAt.IsZero())

	f.orders.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	f := newAdminOrderFixture()
	updated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(9)).
		Return(model.Order{ID: 9, Status: model.OrderStatusProcessing, UpdatedAt: updated}, nil)

	out, err := f.uc.UpdateStatus(context.Background(), admin1, 9, usecase.UpdateOrderStatusInput{Status: "processing"})
	require.NoError(t, err)

	assert.Equal(t, "PROCESSING", out.Status)
	assert.Equal(t, updated, out.UpdatedAt)
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_TerminalCannotMove(t *testing.T) {
	f := newAdminOrderFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(9)).
		Return(model.Order{ID: 9, Status: model.OrderStatusDelivered}, nil)

	_, err := f.uc.UpdateStatus(context.Background(), admin1, 9, usecase.UpdateOrderStatusInput{Status: "PENDING"})

	assert.True(t, errors.Is(err, usecase.ErrValidationFailed))
	assertErrContains(t, err, "cannot change order status from DELIVERED to PENDING")
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	f := newAdminOrderFixture()

	_, err := f.uc.UpdateStatus(context.Background(), admin1, 9, usecase.UpdateOrderStatusInput{Status: "SHIPPED"})

	assert.True(t, errors.Is(err, usecase.ErrValidationFailed))
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	f := newAdminOrderFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(404)).Return(model.Order{}, repo.ErrNotFound)

	_, err := f.uc.UpdateStatus(context.Background(), admin1, 404, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})

	assert.True(t, errors.Is(err, usecase.ErrNotFound))
}

func TestAdminOrderUsecase_UpdateStatus_AuditFailureFailsTheChange(t *testing.T) {
	f := newAdminOrderFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(9)).
		Return(model.Order{ID: 9, Status: model.OrderStatusPending}, nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(9), model.OrderStatusCancelled, mock.Anything).Return(nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := f.uc.UpdateStatus(context.Background(), admin1, 9, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})

	assert.True(t, errors.Is(err, usecase.ErrTransactionFailed))
}
