package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

type stubOrderService struct {
	listFn         func(ctx context.Context, caller policy.Principal, in ports.ListOrdersInput) (*ports.ListOrdersResult, error)
	getFn          func(ctx context.Context, caller policy.Principal, id string) (*domain.Order, error)
	updateStatusFn func(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error)
}

func (s *stubOrderService) List(ctx context.Context, caller policy.Principal, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	return s.listFn(ctx, caller, in)
}

func (s *stubOrderService) Get(ctx context.Context, caller policy.Principal, id string) (*domain.Order, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error) {
	return s.updateStatusFn(ctx, caller, id, next, notes)
}

func testOrder(id, userID string, status domain.OrderStatus) *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		ID:          id,
		OrderNumber: "ORD-0000000" + id,
		UserID:      userID,
		Total:       99.99,
		Status:      status,
		Items: []domain.OrderItem{
			{ProductID: "p1", ProductName: "Keyboard", Quantity: 1, UnitPrice: 99.99},
		},
		StatusHistory: []domain.StatusHistoryEntry{{Status: domain.StatusPending, Timestamp: now}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOrderHandler_List_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		listFn: func(ctx context.Context, caller policy.Principal, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
			if caller.UserID != "u1" {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			if in.Status != "pending" || in.Page != 1 || in.Limit != 10 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListOrdersResult{
				Items:      []*domain.Order{testOrder("1", "u1", domain.StatusPending)},
				Total:      1,
				Page:       1,
				Limit:      10,
				TotalPages: 1,
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders?status=pending&page=1&limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "user")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected one order, got %v", resp["data"])
	}
}

func TestOrderHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		getFn: func(ctx context.Context, caller policy.Principal, id string) (*domain.Order, error) {
			return testOrder(id, "u1", domain.StatusConfirmed), nil
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "user")
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"confirmed"`) {
		t.Fatalf("expected confirmed order, got %s", rec.Body.String())
	}
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		getFn: func(ctx context.Context, caller policy.Principal, id string) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "user")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrderHandler_UpdateStatus_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateStatusFn: func(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error) {
			if next != domain.StatusConfirmed || notes != "payment received" {
				t.Fatalf("unexpected args: %s %q", next, notes)
			}
			o := testOrder(id, "u1", domain.StatusConfirmed)
			o.StatusHistory = append(o.StatusHistory, domain.StatusHistoryEntry{
				Status: domain.StatusConfirmed, Timestamp: time.Now().UTC(), Notes: notes,
			})
			return o, nil
		},
	}
	handler := NewOrderHandler(stub)

	body := strings.NewReader(`{"status":"confirmed","notes":"payment received"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/orders/1/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "user")
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	history, ok := resp["status_history"].([]any)
	if !ok || len(history) != 2 {
		t.Fatalf("expected two history entries, got %v", resp["status_history"])
	}
}

func TestOrderHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateStatusFn: func(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error) {
			return nil, fmt.Errorf("%w: pending to delivered", domain.ErrInvalidTransition)
		},
	}
	handler := NewOrderHandler(stub)

	body := strings.NewReader(`{"status":"delivered"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/orders/1/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "user")
	c.SetParamNames("id")
	c.SetParamValues("1")

	_ = handler.UpdateStatus(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestOrderHandler_UpdateStatus_UnknownTargetStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateStatusFn: func(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewOrderHandler(stub)

	// "pending" is a valid status but never a valid target; "cancelled" is
	// not a status at all. Both fail schema validation.
	for _, target := range []string{"pending", "cancelled"} {
		body := strings.NewReader(`{"status":"` + target + `"}`)
		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/1/status", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", "u1")
		c.Set("role", "user")
		c.SetParamNames("id")
		c.SetParamValues("1")

		if err := handler.UpdateStatus(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("target %q: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestOrderHandler_UpdateStatus_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateStatusFn: func(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	handler := NewOrderHandler(stub)

	body := strings.NewReader(`{"status":"confirmed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/orders/ghost/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "user")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	_ = handler.UpdateStatus(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
