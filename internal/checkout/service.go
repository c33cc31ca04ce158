// Package checkout wires the pricing engine to its collaborators: the
// settings store, the discount validator and the product catalog. It is the
// single entry point storefront checkout flows call.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
	"github.com/thitipat-dev/petshop-backend/pkg/metrics"
)

type settingsProvider interface {
	GetDepositSettings(ctx context.Context) (pricing.DepositSettings, error)
}

type discountResolver interface {
	Resolve(ctx context.Context, code string, subtotal float64, now time.Time) (*pricing.DiscountDescriptor, error)
}

type productLoader interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// ItemInput references a catalog product and a quantity.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// Service exposes checkout-time order analysis.
type Service interface {
	// AnalyzeCart runs the pricing engine over prepared cart lines. Deposit
	// settings are fetched fresh on every call; the discount code, when
	// present, is validated against the pre-discount subtotal first.
	AnalyzeCart(ctx context.Context, lines []pricing.CartLine, discountCode *string) (*pricing.OrderAnalysis, error)
	// AnalyzeItems builds cart lines from the catalog, then delegates to
	// AnalyzeCart. The returned lines are reused by order creation.
	AnalyzeItems(ctx context.Context, items []ItemInput, discountCode *string) (*pricing.OrderAnalysis, []pricing.CartLine, error)
	FilterShippingOptions(candidates []pricing.ShippingOption, analysis pricing.OrderAnalysis) []pricing.ShippingOption
}

type service struct {
	settings  settingsProvider
	discounts discountResolver
	products  productLoader
	metrics   *metrics.CheckoutMetrics
	now       func() time.Time
}

// NewService builds a checkout service backed by the provided collaborators.
// Metrics may be nil.
func NewService(settings settingsProvider, discounts discountResolver, products productLoader, checkoutMetrics *metrics.CheckoutMetrics) (Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings provider required")
	}
	if discounts == nil {
		return nil, fmt.Errorf("discount resolver required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		settings:  settings,
		discounts: discounts,
		products:  products,
		metrics:   checkoutMetrics,
		now:       time.Now,
	}, nil
}

func (s *service) AnalyzeCart(ctx context.Context, lines []pricing.CartLine, discountCode *string) (*pricing.OrderAnalysis, error) {
	settings, err := s.settings.GetDepositSettings(ctx)
	if err != nil {
		return nil, err
	}

	var descriptor *pricing.DiscountDescriptor
	if discountCode != nil {
		var subtotal float64
		for _, line := range lines {
			subtotal += pricing.LineTotal(line)
		}
		descriptor, err = s.discounts.Resolve(ctx, *discountCode, subtotal, s.now())
		if err != nil {
			s.metrics.IncDiscountRejection()
			return nil, err
		}
	}

	analysis := pricing.Analyze(lines, descriptor, settings)
	s.metrics.IncAnalysis(string(analysis.PaymentType))
	return &analysis, nil
}

func (s *service) AnalyzeItems(ctx context.Context, items []ItemInput, discountCode *string) (*pricing.OrderAnalysis, []pricing.CartLine, error) {
	lines, err := s.buildCartLines(ctx, items)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := s.AnalyzeCart(ctx, lines, discountCode)
	if err != nil {
		return nil, nil, err
	}
	return analysis, lines, nil
}

func (s *service) FilterShippingOptions(candidates []pricing.ShippingOption, analysis pricing.OrderAnalysis) []pricing.ShippingOption {
	return pricing.FilterShippingOptions(candidates, analysis)
}

func (s *service) buildCartLines(ctx context.Context, items []ItemInput) ([]pricing.CartLine, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		ids = append(ids, item.ProductID)
	}

	records, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	byID := make(map[uuid.UUID]models.Product, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}

	lines := make([]pricing.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
		}
		lines = append(lines, pricing.CartLine{
			ProductID:       product.ID,
			Name:            product.Name,
			Category:        product.Category,
			UnitPrice:       product.Price,
			SalePrice:       product.SalePrice,
			DiscountPercent: product.DiscountPercent,
			Quantity:        item.Quantity,
		})
	}
	return lines, nil
}
