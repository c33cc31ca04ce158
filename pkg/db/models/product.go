package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is one catalog entry, either a live animal or merchandise.
// SalePrice, when set, is the final price; DiscountPercent applies to Price
// only when no sale price is present.
type Product struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string     `gorm:"column:name;not null"`
	Description     *string    `gorm:"column:description"`
	Category        string     `gorm:"column:category;not null"`
	Price           float64    `gorm:"column:price;not null"`
	SalePrice       *float64   `gorm:"column:sale_price"`
	DiscountPercent *float64   `gorm:"column:discount_percent"`
	Stock           int        `gorm:"column:stock;not null;default:0"`
	IsActive        bool       `gorm:"column:is_active;not null;default:true"`
	ImageURL        *string    `gorm:"column:image_url"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       *time.Time `gorm:"column:deleted_at;index"`
}
