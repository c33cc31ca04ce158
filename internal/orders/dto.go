package orders

import (
	"github.com/thitipat-dev/petshop-backend/internal/checkout"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

// CreateOrderInput is everything order creation needs from the caller. Amounts
// are never accepted from outside; the pricing engine recomputes them.
type CreateOrderInput struct {
	CustomerName   string
	CustomerPhone  *string
	ShippingMethod string
	Notes          *string
	DiscountCode   *string
	Items          []checkout.ItemInput
}

// StatusView is the lifecycle snapshot returned alongside an order.
type StatusView struct {
	Current     enums.OrderStatus
	Available   []enums.OrderStatus
	Recommended *enums.OrderStatus
	Progress    int
	Terminal    bool
}
