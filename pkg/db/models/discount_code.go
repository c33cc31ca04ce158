package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

// DiscountCode is a persisted promotional code. UsageCount is only ever
// advanced through the conditional increment in the discounts repository.
type DiscountCode struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code       string             `gorm:"column:code;not null;uniqueIndex"`
	Type       enums.DiscountType `gorm:"column:type;type:text;not null"`
	Value      float64            `gorm:"column:value;not null"`
	MinAmount  *float64           `gorm:"column:min_amount"`
	ValidFrom  *time.Time         `gorm:"column:valid_from"`
	ValidUntil *time.Time         `gorm:"column:valid_until"`
	UsageLimit *int               `gorm:"column:usage_limit"`
	UsageCount int                `gorm:"column:usage_count;not null;default:0"`
	IsActive   bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
