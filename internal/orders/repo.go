package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

const defaultListLimit = 50

type repository struct {
	db *gorm.DB
}

// NewRepository builds an order repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("order_number DESC").
		Limit(limit).
		Offset(filter.Offset)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var records []models.Order
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) NextOrderNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(order_number), 0) + 1 FROM orders`).
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, target enums.OrderStatus, stamp StatusStamp) (bool, error) {
	updates := map[string]any{"status": target}
	if stamp.CompletedAt != nil {
		updates["completed_at"] = *stamp.CompletedAt
	}
	if stamp.CancelledAt != nil {
		updates["cancelled_at"] = *stamp.CancelledAt
	}

	// Conditional on the expected status so a concurrent mutation that
	// slipped past the advisory lock still cannot double-apply.
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
