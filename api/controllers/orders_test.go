package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thitipat-dev/petshop-backend/internal/orders"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
)

type stubOrderService struct {
	order  *models.Order
	view   *orders.StatusView
	err    error
	lastID uuid.UUID
	target enums.OrderStatus
}

func (s *stubOrderService) Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) List(ctx context.Context, filter orders.ListFilter) ([]models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Order{*s.order}, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	s.lastID = id
	s.target = target
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) AdvanceStatus(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) Status(ctx context.Context, id uuid.UUID) (*orders.StatusView, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func sampleOrder() *models.Order {
	deposit := 1500.0
	remaining := 13500.0
	return &models.Order{
		ID:                  uuid.New(),
		OrderNumber:         1001,
		CustomerName:        "Somsak",
		Status:              enums.OrderStatusPending,
		PaymentType:         enums.PaymentTypeDeposit,
		ShippingMethod:      "รับที่ร้าน",
		HasPets:             true,
		RequiresDeposit:     true,
		TotalAmount:         15000,
		TotalBeforeDiscount: 15000,
		DepositAmount:       &deposit,
		RemainingAmount:     &remaining,
		DepositRate:         10,
	}
}

func routeWithOrderID(handler http.HandlerFunc, method, path string, body []byte) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	switch method {
	case http.MethodPatch:
		r.Patch(path, handler)
	case http.MethodPost:
		r.Post(path, handler)
	default:
		r.Get(path, handler)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func TestOrderUpdateStatus_Success(t *testing.T) {
	order := sampleOrder()
	order.Status = enums.OrderStatusConfirmed
	svc := &stubOrderService{order: order}

	body := []byte(`{"status":"CONFIRMED"}`)
	r := chi.NewRouter()
	r.Patch("/orders/{orderID}/status", OrderUpdateStatus(svc, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.String()+"/status", bytes.NewReader(body))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order.ID, svc.lastID)
	assert.Equal(t, enums.OrderStatusConfirmed, svc.target)

	var envelope struct {
		Data orderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFIRMED", envelope.Data.Status)
}

func TestOrderUpdateStatus_StateConflict(t *testing.T) {
	svc := &stubOrderService{
		err: pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
			WithDetails(map[string]any{"current": "PENDING", "requested": "DELIVERED"}),
	}

	body := []byte(`{"status":"DELIVERED"}`)
	r := chi.NewRouter()
	r.Patch("/orders/{orderID}/status", OrderUpdateStatus(svc, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+uuid.NewString()+"/status", bytes.NewReader(body))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "STATE_CONFLICT", envelope.Error.Code)
	assert.Equal(t, "PENDING", envelope.Error.Details["current"])
}

func TestOrderUpdateStatus_InvalidBody(t *testing.T) {
	svc := &stubOrderService{order: sampleOrder()}

	rec := routeWithOrderID(OrderUpdateStatus(svc, nil), http.MethodPatch, "/orders/"+uuid.NewString()+"/status", []byte(`{}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderUpdateStatus_InvalidID(t *testing.T) {
	svc := &stubOrderService{order: sampleOrder()}

	rec := routeWithOrderID(OrderUpdateStatus(svc, nil), http.MethodPatch, "/orders/not-a-uuid/status", []byte(`{"status":"CONFIRMED"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatus_View(t *testing.T) {
	recommended := enums.OrderStatusConfirmed
	svc := &stubOrderService{view: &orders.StatusView{
		Current:     enums.OrderStatusPending,
		Available:   []enums.OrderStatus{enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
		Recommended: &recommended,
		Progress:    0,
	}}

	r := chi.NewRouter()
	r.Get("/orders/{orderID}/status", OrderStatus(svc, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString()+"/status", nil)
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data statusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "PENDING", envelope.Data.Current)
	assert.Equal(t, []string{"CONFIRMED", "CANCELLED"}, envelope.Data.Available)
	require.NotNil(t, envelope.Data.Recommended)
	assert.Equal(t, "CONFIRMED", *envelope.Data.Recommended)
}

func TestOrderCreate_Created(t *testing.T) {
	svc := &stubOrderService{order: sampleOrder()}

	body := []byte(`{"customer_name":"Somsak","shipping_method":"รับที่ร้าน","items":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}`)
	rec := routeWithOrderID(OrderCreate(svc, nil), http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data orderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(1001), envelope.Data.OrderNumber)
	assert.True(t, envelope.Data.RequiresDeposit)
	require.NotNil(t, envelope.Data.DepositAmount)
	assert.Equal(t, 1500.0, *envelope.Data.DepositAmount)
}

func TestOrderCreate_MissingItems(t *testing.T) {
	svc := &stubOrderService{order: sampleOrder()}

	body := []byte(`{"customer_name":"Somsak","shipping_method":"pickup","items":[]}`)
	rec := routeWithOrderID(OrderCreate(svc, nil), http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
