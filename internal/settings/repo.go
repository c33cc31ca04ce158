// Package settings exposes the admin-tunable shop configuration stored in a
// generic key/value table. Values are read fresh on every call; nothing is
// cached, so checkout always sees the latest deposit policy.
package settings

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
)

const (
	keyDepositMinAmount  = "deposit_min_amount"
	keyDepositPercentage = "deposit_percentage"
	keyDepositEnabled    = "deposit_enabled"
)

// Repository reads and writes shop settings.
type Repository interface {
	GetDepositSettings(ctx context.Context) (pricing.DepositSettings, error)
	UpdateDepositSettings(ctx context.Context, settings pricing.DepositSettings) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetDepositSettings returns the deposit policy, falling back to documented
// defaults for any key that is missing or unparsable.
func (r *repository) GetDepositSettings(ctx context.Context) (pricing.DepositSettings, error) {
	defaults := pricing.DefaultDepositSettings()

	var rows []models.ShopSetting
	err := r.db.WithContext(ctx).
		Where("key IN ?", []string{keyDepositMinAmount, keyDepositPercentage, keyDepositEnabled}).
		Find(&rows).Error
	if err != nil {
		return defaults, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deposit settings")
	}

	settings := defaults
	for _, row := range rows {
		switch row.Key {
		case keyDepositMinAmount:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				settings.MinAmount = v
			}
		case keyDepositPercentage:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				settings.Percentage = v
			}
		case keyDepositEnabled:
			if v, err := strconv.ParseBool(row.Value); err == nil {
				settings.Enabled = v
			}
		}
	}
	return settings, nil
}

// UpdateDepositSettings upserts the three deposit keys.
func (r *repository) UpdateDepositSettings(ctx context.Context, settings pricing.DepositSettings) error {
	if settings.Percentage < 0 || settings.Percentage > 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "deposit percentage must be between 0 and 1")
	}
	if settings.MinAmount < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "deposit minimum amount cannot be negative")
	}

	rows := []models.ShopSetting{
		{Key: keyDepositMinAmount, Value: strconv.FormatFloat(settings.MinAmount, 'f', -1, 64)},
		{Key: keyDepositPercentage, Value: strconv.FormatFloat(settings.Percentage, 'f', -1, 64)},
		{Key: keyDepositEnabled, Value: strconv.FormatBool(settings.Enabled)},
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			err := tx.Where("key = ?", row.Key).
				Assign(models.ShopSetting{Value: row.Value}).
				FirstOrCreate(&models.ShopSetting{Key: row.Key}).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist setting")
			}
		}
		return nil
	})
}
