package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is the persisted snapshot of one cart line at order creation.
// Prices are frozen here so later catalog edits never change a sold order.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;not null"`
	Category       string    `gorm:"column:category;not null"`
	UnitPrice      float64   `gorm:"column:unit_price;not null"`
	EffectivePrice float64   `gorm:"column:effective_price;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	LineTotal      float64   `gorm:"column:line_total;not null"`
	IsAnimal       bool      `gorm:"column:is_animal;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
