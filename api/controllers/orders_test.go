package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/tuananhdo/shopora-backend/internal/orders"
	"github.com/tuananhdo/shopora-backend/pkg/enums"
	"github.com/tuananhdo/shopora-backend/pkg/pagination"
)

type stubOrderService struct {
	dto   *ordersvc.OrderDTO
	items []ordersvc.OrderDTO
	meta  pagination.Meta
	err   error

	lastCreate ordersvc.CreateInput
	lastQuery  ordersvc.ListQuery
	lastStatus enums.OrderStatus
}

func (s *stubOrderService) Create(ctx context.Context, input ordersvc.CreateInput) (*ordersvc.OrderDTO, error) {
	s.lastCreate = input
	return s.dto, s.err
}

func (s *stubOrderService) List(ctx context.Context, query ordersvc.ListQuery) ([]ordersvc.OrderDTO, pagination.Meta, error) {
	s.lastQuery = query
	return s.items, s.meta, s.err
}

func (s *stubOrderService) Get(ctx context.Context, id uuid.UUID) (*ordersvc.OrderDTO, error) {
	return s.dto, s.err
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, updatedBy *uuid.UUID) (*ordersvc.OrderDTO, error) {
	s.lastStatus = status
	return s.dto, s.err
}

func (s *stubOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func TestCheckoutCreatesOrder(t *testing.T) {
	productID := uuid.New()
	svc := &stubOrderService{dto: &ordersvc.OrderDTO{ID: uuid.New(), TotalAmount: 25000}}
	handler := Checkout(svc, nil)

	payload := `{"name":"An Tran","phone":"0900000001","address":"12 Hang Bac, Hanoi","items":[{"product_id":"` + productID.String() + `","qty":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.lastCreate.Items) != 1 || svc.lastCreate.Items[0].ProductID != productID {
		t.Fatalf("cart lines not forwarded: %+v", svc.lastCreate.Items)
	}
	if svc.lastCreate.Items[0].Qty != 2 {
		t.Fatalf("qty not forwarded: %d", svc.lastCreate.Items[0].Qty)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	handler := Checkout(&stubOrderService{}, nil)

	payload := `{"name":"An Tran","phone":"0900000001","address":"12 Hang Bac, Hanoi","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderIndexForwardsStatusFilter(t *testing.T) {
	svc := &stubOrderService{meta: pagination.Meta{Page: 1, PerPage: 10}}
	handler := OrderIndex(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=4&keyword=Binh", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery.Status == nil || *svc.lastQuery.Status != enums.OrderStatusCompleted {
		t.Fatalf("status filter not forwarded: %+v", svc.lastQuery.Status)
	}
	if svc.lastQuery.Keyword != "Binh" {
		t.Fatalf("keyword not forwarded: %q", svc.lastQuery.Keyword)
	}
}

func TestOrderIndexRejectsOutOfRangeStatus(t *testing.T) {
	handler := OrderIndex(&stubOrderService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=9", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
