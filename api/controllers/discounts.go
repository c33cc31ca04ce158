package controllers

import (
	"net/http"
	"time"

	"github.com/thitipat-dev/petshop-backend/api/responses"
	"github.com/thitipat-dev/petshop-backend/api/validators"
	"github.com/thitipat-dev/petshop-backend/internal/discounts"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
	"github.com/thitipat-dev/petshop-backend/pkg/logger"
)

// DiscountValidate checks a code against a subtotal without redeeming it.
func DiscountValidate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload validateDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithDiscountCode(ctx, payload.Code)
		}

		descriptor, err := svc.Resolve(ctx, payload.Code, payload.Subtotal, time.Now())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, validateDiscountResponse{
			Code:  descriptor.Code,
			Type:  descriptor.Type.String(),
			Value: descriptor.Value,
		})
	}
}

// DiscountCreate registers a new promotional code.
func DiscountCreate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload createDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateCode(r.Context(), discounts.CreateCodeInput{
			Code:       payload.Code,
			Type:       enums.DiscountType(payload.Type),
			Value:      payload.Value,
			MinAmount:  payload.MinAmount,
			ValidFrom:  payload.ValidFrom,
			ValidUntil: payload.ValidUntil,
			UsageLimit: payload.UsageLimit,
			IsActive:   payload.IsActive == nil || *payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newDiscountResponse(created))
	}
}

type validateDiscountRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"min=0"`
}

type validateDiscountResponse struct {
	Code  string  `json:"code"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type createDiscountRequest struct {
	Code       string     `json:"code" validate:"required"`
	Type       string     `json:"type" validate:"required"`
	Value      float64    `json:"value" validate:"min=0"`
	MinAmount  *float64   `json:"min_amount,omitempty"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	UsageLimit *int       `json:"usage_limit,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}

type discountResponse struct {
	Code       string     `json:"code"`
	Type       string     `json:"type"`
	Value      float64    `json:"value"`
	MinAmount  *float64   `json:"min_amount,omitempty"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	UsageLimit *int       `json:"usage_limit,omitempty"`
	UsageCount int        `json:"usage_count"`
	IsActive   bool       `json:"is_active"`
}

func newDiscountResponse(record *models.DiscountCode) discountResponse {
	return discountResponse{
		Code:       record.Code,
		Type:       record.Type.String(),
		Value:      record.Value,
		MinAmount:  record.MinAmount,
		ValidFrom:  record.ValidFrom,
		ValidUntil: record.ValidUntil,
		UsageLimit: record.UsageLimit,
		UsageCount: record.UsageCount,
		IsActive:   record.IsActive,
	}
}
