package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/thitipat-dev/petshop-backend/api/responses"
	"github.com/thitipat-dev/petshop-backend/api/validators"
	checkoutsvc "github.com/thitipat-dev/petshop-backend/internal/checkout"
	"github.com/thitipat-dev/petshop-backend/internal/orders"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
	"github.com/thitipat-dev/petshop-backend/pkg/logger"
)

// OrderCreate persists a priced cart as a PENDING order.
func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]checkoutsvc.ItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, checkoutsvc.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		order, err := svc.Create(r.Context(), orders.CreateOrderInput{
			CustomerName:   payload.CustomerName,
			CustomerPhone:  payload.CustomerPhone,
			ShippingMethod: payload.ShippingMethod,
			Notes:          payload.Notes,
			DiscountCode:   payload.DiscountCode,
			Items:          items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

// OrderList returns recent orders, optionally filtered by status.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		status, err := validators.ParseStatusQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.List(r.Context(), orders.ListFilter{Status: status, Limit: limit, Offset: offset})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]orderResponse, 0, len(records))
		for i := range records {
			out = append(out, newOrderResponse(&records[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// OrderGet returns one order with its items.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// OrderStatus returns the lifecycle view: current, allowed, recommended, progress.
func OrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Status(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newStatusResponse(view))
	}
}

// OrderUpdateStatus applies an explicit status transition.
func OrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, id.String())
		}

		order, err := svc.UpdateStatus(ctx, id, enums.OrderStatus(payload.Status))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// OrderAdvance moves the order one step along the recommended path.
func OrderAdvance(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, id.String())
		}

		order, err := svc.AdvanceStatus(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

type createOrderRequest struct {
	CustomerName   string        `json:"customer_name" validate:"required"`
	CustomerPhone  *string       `json:"customer_phone,omitempty"`
	ShippingMethod string        `json:"shipping_method" validate:"required"`
	Notes          *string       `json:"notes,omitempty"`
	DiscountCode   *string       `json:"discount_code,omitempty"`
	Items          []analyzeItem `json:"items" validate:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderResponse struct {
	ID                  uuid.UUID           `json:"id"`
	OrderNumber         int64               `json:"order_number"`
	CustomerName        string              `json:"customer_name"`
	CustomerPhone       *string             `json:"customer_phone,omitempty"`
	Status              string              `json:"status"`
	PaymentType         string              `json:"payment_type"`
	ShippingMethod      string              `json:"shipping_method"`
	HasPets             bool                `json:"has_pets"`
	RequiresDeposit     bool                `json:"requires_deposit"`
	TotalAmount         float64             `json:"total_amount"`
	TotalBeforeDiscount float64             `json:"total_before_discount"`
	DiscountAmount      float64             `json:"discount_amount"`
	DiscountCode        *string             `json:"discount_code,omitempty"`
	DepositAmount       *float64            `json:"deposit_amount,omitempty"`
	RemainingAmount     *float64            `json:"remaining_amount,omitempty"`
	DepositRate         int                 `json:"deposit_rate"`
	Notes               *string             `json:"notes,omitempty"`
	Items               []orderItemResponse `json:"items"`
	CompletedAt         *time.Time          `json:"completed_at,omitempty"`
	CancelledAt         *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}

type orderItemResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	UnitPrice      float64   `json:"unit_price"`
	EffectivePrice float64   `json:"effective_price"`
	Quantity       int       `json:"quantity"`
	LineTotal      float64   `json:"line_total"`
	IsAnimal       bool      `json:"is_animal"`
}

type statusResponse struct {
	Current     string   `json:"current"`
	Available   []string `json:"available"`
	Recommended *string  `json:"recommended,omitempty"`
	Progress    int      `json:"progress"`
	Terminal    bool     `json:"terminal"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Category:       item.Category,
			UnitPrice:      item.UnitPrice,
			EffectivePrice: item.EffectivePrice,
			Quantity:       item.Quantity,
			LineTotal:      item.LineTotal,
			IsAnimal:       item.IsAnimal,
		})
	}

	return orderResponse{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		CustomerName:        order.CustomerName,
		CustomerPhone:       order.CustomerPhone,
		Status:              order.Status.String(),
		PaymentType:         order.PaymentType.String(),
		ShippingMethod:      order.ShippingMethod,
		HasPets:             order.HasPets,
		RequiresDeposit:     order.RequiresDeposit,
		TotalAmount:         order.TotalAmount,
		TotalBeforeDiscount: order.TotalBeforeDiscount,
		DiscountAmount:      order.DiscountAmount,
		DiscountCode:        order.DiscountCode,
		DepositAmount:       order.DepositAmount,
		RemainingAmount:     order.RemainingAmount,
		DepositRate:         order.DepositRate,
		Notes:               order.Notes,
		Items:               items,
		CompletedAt:         order.CompletedAt,
		CancelledAt:         order.CancelledAt,
		CreatedAt:           order.CreatedAt,
	}
}

func newStatusResponse(view *orders.StatusView) statusResponse {
	available := make([]string, 0, len(view.Available))
	for _, status := range view.Available {
		available = append(available, status.String())
	}

	resp := statusResponse{
		Current:   view.Current.String(),
		Available: available,
		Progress:  view.Progress,
		Terminal:  view.Terminal,
	}
	if view.Recommended != nil {
		recommended := view.Recommended.String()
		resp.Recommended = &recommended
	}
	return resp
}
