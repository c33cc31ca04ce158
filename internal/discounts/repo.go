package discounts

import (
	"context"

	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a discount code repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var record models.DiscountCode
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Create(ctx context.Context, record *models.DiscountCode) (*models.DiscountCode, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE discount_codes
		SET usage_count = usage_count + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE code = ? AND (usage_limit IS NULL OR usage_count < usage_limit)
	`, code)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
