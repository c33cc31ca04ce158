package discounts

import (
	"context"

	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
)

// Repository exposes discount code persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	Create(ctx context.Context, record *models.DiscountCode) (*models.DiscountCode, error)
	// IncrementUsage advances usage_count atomically. It reports false when
	// the code is unknown or its usage limit has already been reached, so two
	// concurrent redemptions cannot both consume the last slot.
	IncrementUsage(ctx context.Context, code string) (bool, error)
}
