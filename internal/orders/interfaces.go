package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

// Repository exposes order persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	// NextOrderNumber hands out the next human-facing order number. Call
	// inside the creation transaction so two orders never share a number.
	NextOrderNumber(ctx context.Context) (int64, error)
	// UpdateStatus moves the order from expected to target in one conditional
	// write. It reports false when the row no longer holds expected, which
	// means a concurrent mutation won.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, target enums.OrderStatus, stamp StatusStamp) (bool, error)
}

// ListFilter narrows the order listing.
type ListFilter struct {
	Status *enums.OrderStatus
	Limit  int
	Offset int
}

// StatusStamp carries the timestamps a transition may set.
type StatusStamp struct {
	CompletedAt *time.Time
	CancelledAt *time.Time
}
