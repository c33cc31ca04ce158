// Package discounts validates promotional codes against their persisted
// records and hands the pricing engine an already-validated descriptor.
package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
)

// Service exposes discount code validation and administration.
type Service interface {
	// Resolve checks every constraint on the persisted code, in order, and
	// returns the descriptor the pricing engine consumes. Rejections carry
	// the specific reason surfaced verbatim to the shopper.
	Resolve(ctx context.Context, code string, subtotal float64, now time.Time) (*pricing.DiscountDescriptor, error)
	CreateCode(ctx context.Context, input CreateCodeInput) (*models.DiscountCode, error)
}

type service struct {
	repo Repository
}

// NewService builds a discounts service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discounts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Resolve(ctx context.Context, code string, subtotal float64, now time.Time) (*pricing.DiscountDescriptor, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount code")
	}

	record, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount code")
	}

	if !record.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is inactive")
	}
	if record.ValidFrom != nil && record.ValidFrom.After(now) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is not yet valid")
	}
	if record.ValidUntil != nil && record.ValidUntil.Before(now) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code has expired")
	}
	if record.UsageLimit != nil && record.UsageCount >= *record.UsageLimit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code usage limit reached")
	}
	if record.MinAmount != nil && subtotal < *record.MinAmount {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("order subtotal is below the minimum amount of %.2f", *record.MinAmount))
	}

	return &pricing.DiscountDescriptor{
		Type:  record.Type,
		Value: record.Value,
		Code:  record.Code,
	}, nil
}

// CreateCodeInput carries the admin payload for a new discount code.
type CreateCodeInput struct {
	Code       string
	Type       enums.DiscountType
	Value      float64
	MinAmount  *float64
	ValidFrom  *time.Time
	ValidUntil *time.Time
	UsageLimit *int
	IsActive   bool
}

func (s *service) CreateCode(ctx context.Context, input CreateCodeInput) (*models.DiscountCode, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount type must be percentage or fixed")
	}
	if input.Value < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value cannot be negative")
	}
	// Percentage codes above 100 would only be caught by the final total
	// clamp, so reject them at the door instead.
	if input.Type == enums.DiscountTypePercentage && input.Value > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage discount cannot exceed 100")
	}
	if input.MinAmount != nil && *input.MinAmount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum amount cannot be negative")
	}
	if input.UsageLimit != nil && *input.UsageLimit < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "usage limit must be at least 1")
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_until must be after valid_from")
	}

	record := &models.DiscountCode{
		Code:       code,
		Type:       input.Type,
		Value:      input.Value,
		MinAmount:  input.MinAmount,
		ValidFrom:  input.ValidFrom,
		ValidUntil: input.ValidUntil,
		UsageLimit: input.UsageLimit,
		IsActive:   input.IsActive,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist discount code")
	}
	return created, nil
}
