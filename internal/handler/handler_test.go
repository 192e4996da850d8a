package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/middleware"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var r ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&r))
	return r
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"validation", usecase.Validation("bad"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unauthorized", usecase.NewAppError(usecase.KindUnauthorized, "invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", usecase.Forbidden(), http.StatusForbidden, "FORBIDDEN"},
		{"not found", usecase.NotFound("order"), http.StatusNotFound, "NOT_FOUND"},
		{"missing user", usecase.ReferenceNotFound("user", 77), http.StatusNotFound, "REFERENCE_NOT_FOUND"},
		{"missing item", usecase.ReferenceNotFound("item", 999), http.StatusBadRequest, "REFERENCE_NOT_FOUND"},
		{"conflict", usecase.NewAppError(usecase.KindConflict, "email already registered"), http.StatusConflict, "CONFLICT"},
		{"transaction", usecase.NewAppError(usecase.KindTransactionFailed, "create order failed"), http.StatusInternalServerError, "TRANSACTION_FAILED"},
		{"wrapped", fmt.Errorf("outer: %w", usecase.Forbidden()), http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "TRANSACTION_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, writeError(c, tc.err))
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.kind, decodeError(t, rec).Kind)
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, writeError(c, errors.New("pq: password authentication failed")))
	assert.Equal(t, "internal error", decodeError(t, rec).Error)
}

// =====================
// Order routes
// =====================

// txNeverCalled fails the test if the usecase reaches the database.
type txNeverCalled struct{ t *testing.T }

func (m txNeverCalled) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	m.t.Fatalf("WithinTx must not be called")
	return nil
}

func withActor(id int64, role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxUserIDKey, id)
			c.Set(middleware.CtxUserRoleKey, string(role))
			return next(c)
		}
	}
}

func newOrderEcho(t *testing.T, actor echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	h := NewOrderHandler(usecase.NewOrderUsecase(txNeverCalled{t}))
	g := Guards{Auth: []echo.MiddlewareFunc{actor}}
	h.RegisterRoutes(e, g)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_Create_RejectsBadPayload(t *testing.T) {
	e := newOrderEcho(t, withActor(42, model.RoleClient))

	cases := map[string]string{
		"unknown payment": `{"payment_method":"BOLETO","items":[{"item_id":7,"quantity":1}]}`,
		"no items":        `{"payment_method":"PIX","items":[]}`,
		"zero quantity":   `{"payment_method":"PIX","items":[{"item_id":7,"quantity":0}]}`,
		"not json":        `payment_method=PIX`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/orders", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Kind)
		})
	}
}

func TestOrderHandler_ListForOtherUser_Forbidden(t *testing.T) {
	e := newOrderEcho(t, withActor(3, model.RoleClient))

	rec := doJSON(e, http.MethodGet, "/users/5/orders", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Kind)
}

func TestOrderHandler_InvalidPathID(t *testing.T) {
	e := newOrderEcho(t, withActor(42, model.RoleClient))

	rec := doJSON(e, http.MethodGet, "/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_NoActor(t *testing.T) {
	noop := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	e := newOrderEcho(t, noop)

	rec := doJSON(e, http.MethodPost, "/orders", `{"payment_method":"PIX","items":[{"item_id":7,"quantity":1}]}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// Health
// =====================

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	NewHealthHandler(map[string]HealthCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("refused") },
	}).RegisterRoutes(e)

	rec := doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, map[string]string{"database": "up", "redis": "down"}, body.Checks)
}
