package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

// Order holds the committed analysis snapshot plus the lifecycle status.
// Amount fields are written once at creation and never recomputed; status
// only moves through the lifecycle transition table.
type Order struct {
	ID                  uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber         int64                `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerName        string               `gorm:"column:customer_name;not null"`
	CustomerPhone       *string              `gorm:"column:customer_phone"`
	Status              enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'PENDING'"`
	PaymentType         enums.PaymentType    `gorm:"column:payment_type;type:text;not null"`
	ShippingMethod      string               `gorm:"column:shipping_method;not null"`
	HasPets             bool                 `gorm:"column:has_pets;not null"`
	RequiresDeposit     bool                 `gorm:"column:requires_deposit;not null"`
	TotalAmount         float64              `gorm:"column:total_amount;not null"`
	TotalBeforeDiscount float64              `gorm:"column:total_before_discount;not null"`
	DiscountAmount      float64              `gorm:"column:discount_amount;not null;default:0"`
	DiscountCode        *string              `gorm:"column:discount_code"`
	DepositAmount       *float64             `gorm:"column:deposit_amount"`
	RemainingAmount     *float64             `gorm:"column:remaining_amount"`
	DepositRate         int                  `gorm:"column:deposit_rate;not null;default:0"`
	Notes               *string              `gorm:"column:notes"`
	Items               []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CompletedAt         *time.Time           `gorm:"column:completed_at"`
	CancelledAt         *time.Time           `gorm:"column:cancelled_at"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
