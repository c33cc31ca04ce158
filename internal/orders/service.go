// Package orders persists checkout analyses as orders and owns every status
// mutation. Status writes are serialized per order with an advisory Redis lock
// plus a conditional UPDATE, so concurrent admins cannot fork the lifecycle.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/internal/checkout"
	"github.com/thitipat-dev/petshop-backend/internal/discounts"
	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
	"github.com/thitipat-dev/petshop-backend/pkg/lifecycle"
	"github.com/thitipat-dev/petshop-backend/pkg/metrics"
)

type analyzer interface {
	AnalyzeItems(ctx context.Context, items []checkout.ItemInput, discountCode *string) (*pricing.OrderAnalysis, []pricing.CartLine, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type statusLocker interface {
	AcquireOrderStatusLock(ctx context.Context, orderID string, ttl time.Duration) (bool, error)
	ReleaseOrderStatusLock(ctx context.Context, orderID string) error
}

// Service exposes order creation and lifecycle mutation.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	// UpdateStatus moves the order to target after a lifecycle legality check.
	// Illegal moves fail with a state conflict carrying the allowed targets.
	UpdateStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error)
	// AdvanceStatus moves the order along the recommended path for its
	// shipping method and payment type.
	AdvanceStatus(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Status(ctx context.Context, id uuid.UUID) (*StatusView, error)
}

type service struct {
	repo      Repository
	discounts discounts.Repository
	tx        txRunner
	analyzer  analyzer
	locker    statusLocker
	metrics   *metrics.OrderMetrics
	now       func() time.Time
}

// NewService builds an order service. Locker and metrics may be nil; without a
// locker the conditional status write is the only concurrency guard.
func NewService(repo Repository, discountRepo discounts.Repository, tx txRunner, checkoutAnalyzer analyzer, locker statusLocker, orderMetrics *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if discountRepo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if checkoutAnalyzer == nil {
		return nil, fmt.Errorf("checkout analyzer required")
	}
	return &service{
		repo:      repo,
		discounts: discountRepo,
		tx:        tx,
		analyzer:  checkoutAnalyzer,
		locker:    locker,
		metrics:   orderMetrics,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.ShippingMethod) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping method is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	analysis, lines, err := s.analyzer.AnalyzeItems(ctx, input.Items, input.DiscountCode)
	if err != nil {
		return nil, err
	}
	if analysis.HasPets && !lifecycle.IsSelfPickup(input.ShippingMethod) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders with live animals must be picked up in store")
	}

	var discountCode *string
	if input.DiscountCode != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*input.DiscountCode))
		discountCode = &normalized
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.repo.WithTx(tx)

		number, err := orderRepo.NextOrderNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate order number")
		}

		if discountCode != nil {
			ok, err := s.discounts.WithTx(tx).IncrementUsage(ctx, *discountCode)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redeem discount code")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "discount code usage limit reached")
			}
		}

		order := buildOrder(number, input, discountCode, analysis, lines)
		created, err = orderRepo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// buildOrder freezes the analysis and cart lines into the persisted shape.
func buildOrder(number int64, input CreateOrderInput, discountCode *string, analysis *pricing.OrderAnalysis, lines []pricing.CartLine) *models.Order {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		effective := pricing.EffectiveUnitPrice(line)
		items = append(items, models.OrderItem{
			ProductID:      line.ProductID,
			Name:           line.Name,
			Category:       line.Category,
			UnitPrice:      line.UnitPrice,
			EffectivePrice: effective,
			Quantity:       line.Quantity,
			LineTotal:      pricing.LineTotal(line),
			IsAnimal:       pricing.IsAnimalCategory(line.Category),
		})
	}

	return &models.Order{
		OrderNumber:         number,
		CustomerName:        strings.TrimSpace(input.CustomerName),
		CustomerPhone:       input.CustomerPhone,
		Status:              enums.OrderStatusPending,
		PaymentType:         analysis.PaymentType,
		ShippingMethod:      strings.TrimSpace(input.ShippingMethod),
		HasPets:             analysis.HasPets,
		RequiresDeposit:     analysis.RequiresDeposit,
		TotalAmount:         analysis.TotalAmount,
		TotalBeforeDiscount: analysis.TotalAmountBeforeDiscount,
		DiscountAmount:      analysis.DiscountAmount,
		DiscountCode:        discountCode,
		DepositAmount:       analysis.DepositAmount,
		RemainingAmount:     analysis.RemainingAmount,
		DepositRate:         analysis.DepositRate,
		Notes:               input.Notes,
		Items:               items,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return records, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	if s.locker != nil {
		acquired, err := s.locker.AcquireOrderStatusLock(ctx, id.String(), 0)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire status lock")
		}
		if !acquired {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order status is being modified, retry shortly")
		}
		defer func() {
			_ = s.locker.ReleaseOrderStatusLock(context.WithoutCancel(ctx), id.String())
		}()
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.repo.WithTx(tx)

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if !lifecycle.CanTransition(order.Status, target) {
			s.metrics.IncIllegalTransition()
			return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
				WithDetails(map[string]any{
					"current":   order.Status,
					"requested": target,
					"allowed":   lifecycle.AvailableTransitions(order.Status),
				})
		}

		stamp := StatusStamp{}
		now := s.now()
		switch target {
		case enums.OrderStatusCompleted:
			stamp.CompletedAt = &now
		case enums.OrderStatusCancelled:
			stamp.CancelledAt = &now
		}

		ok, err := orderRepo.UpdateStatus(ctx, id, order.Status, target, stamp)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently, retry")
		}

		s.metrics.IncTransition(order.Status.String(), target.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *service) AdvanceStatus(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := lifecycle.RecommendNext(order.Status, lifecycle.OrderMeta{
		RequiresDeposit: order.RequiresDeposit,
		ShippingMethod:  order.ShippingMethod,
		PaymentType:     order.PaymentType,
	})
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order has no further transition").
			WithDetails(map[string]any{"current": order.Status})
	}
	return s.UpdateStatus(ctx, id, next)
}

func (s *service) Status(ctx context.Context, id uuid.UUID) (*StatusView, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &StatusView{
		Current:   order.Status,
		Available: lifecycle.AvailableTransitions(order.Status),
		Progress:  lifecycle.Progress(order.Status),
		Terminal:  lifecycle.IsTerminal(order.Status),
	}
	if next, ok := lifecycle.RecommendNext(order.Status, lifecycle.OrderMeta{
		RequiresDeposit: order.RequiresDeposit,
		ShippingMethod:  order.ShippingMethod,
		PaymentType:     order.PaymentType,
	}); ok {
		view.Recommended = &next
	}
	return view, nil
}
