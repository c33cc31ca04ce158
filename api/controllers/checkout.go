package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/thitipat-dev/petshop-backend/api/responses"
	"github.com/thitipat-dev/petshop-backend/api/validators"
	checkoutsvc "github.com/thitipat-dev/petshop-backend/internal/checkout"
	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
	"github.com/thitipat-dev/petshop-backend/pkg/logger"
)

// defaultShippingOptions is the storefront channel catalog. Pickup stays free;
// courier delivery carries a flat fee.
var defaultShippingOptions = []pricing.ShippingOption{
	{ID: "pickup", Name: "รับที่ร้าน", Method: enums.ShippingMethodPickup, Fee: 0},
	{ID: "delivery", Name: "จัดส่งถึงบ้าน", Method: enums.ShippingMethodDelivery, Fee: 50},
}

// CheckoutAnalyze prices a prospective cart without creating an order.
func CheckoutAnalyze(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload analyzeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil && payload.DiscountCode != nil {
			ctx = logg.WithDiscountCode(ctx, *payload.DiscountCode)
		}

		items := make([]checkoutsvc.ItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, checkoutsvc.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		analysis, _, err := svc.AnalyzeItems(ctx, items, payload.DiscountCode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		options := svc.FilterShippingOptions(defaultShippingOptions, *analysis)
		responses.WriteSuccess(w, newAnalysisResponse(analysis, options))
	}
}

type analyzeRequest struct {
	Items        []analyzeItem `json:"items" validate:"required,min=1,dive"`
	DiscountCode *string       `json:"discount_code,omitempty"`
}

type analyzeItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type analysisResponse struct {
	HasPets                 bool                     `json:"has_pets"`
	RequiresDeposit         bool                     `json:"requires_deposit"`
	TotalAmount             float64                  `json:"total_amount"`
	TotalBeforeDiscount     float64                  `json:"total_before_discount"`
	DiscountAmount          float64                  `json:"discount_amount"`
	DepositAmount           *float64                 `json:"deposit_amount,omitempty"`
	RemainingAmount         *float64                 `json:"remaining_amount,omitempty"`
	DepositRate             int                      `json:"deposit_rate"`
	PaymentType             string                   `json:"payment_type"`
	SuggestedShippingMethod string                   `json:"suggested_shipping_method"`
	ShippingOptions         []shippingOptionResponse `json:"shipping_options"`
}

type shippingOptionResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Method string  `json:"method"`
	Fee    float64 `json:"fee"`
}

func newAnalysisResponse(analysis *pricing.OrderAnalysis, options []pricing.ShippingOption) analysisResponse {
	resp := analysisResponse{
		HasPets:                 analysis.HasPets,
		RequiresDeposit:         analysis.RequiresDeposit,
		TotalAmount:             analysis.TotalAmount,
		TotalBeforeDiscount:     analysis.TotalAmountBeforeDiscount,
		DiscountAmount:          analysis.DiscountAmount,
		DepositAmount:           analysis.DepositAmount,
		RemainingAmount:         analysis.RemainingAmount,
		DepositRate:             analysis.DepositRate,
		PaymentType:             analysis.PaymentType.String(),
		SuggestedShippingMethod: analysis.SuggestedShippingMethod.String(),
		ShippingOptions:         make([]shippingOptionResponse, 0, len(options)),
	}
	for _, option := range options {
		resp.ShippingOptions = append(resp.ShippingOptions, shippingOptionResponse{
			ID:     option.ID,
			Name:   option.Name,
			Method: option.Method.String(),
			Fee:    option.Fee,
		})
	}
	return resp
}
