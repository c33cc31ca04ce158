package pricing

import "github.com/google/uuid"

// CartLine is one product entry in a checkout attempt. Built fresh by the
// caller per attempt; persisted later as an order item once an order exists.
type CartLine struct {
	ProductID       uuid.UUID
	Name            string
	Category        string
	UnitPrice       float64
	SalePrice       *float64
	DiscountPercent *float64
	Quantity        int
}

// EffectiveUnitPrice resolves the price one unit of the line actually sells
// for. Precedence, first match wins:
//
//  1. sale price, used verbatim and never combined with the percent discount
//  2. percent discount applied to the list price, floored at zero
//  3. list price
//
// No rounding happens here; rounding is an aggregate-level concern. Inputs are
// trusted (product data is admin-curated), so malformed values flow through
// arithmetic instead of erroring.
func EffectiveUnitPrice(line CartLine) float64 {
	if line.SalePrice != nil {
		return *line.SalePrice
	}
	if line.DiscountPercent != nil && *line.DiscountPercent > 0 {
		price := line.UnitPrice * (1 - *line.DiscountPercent/100)
		if price < 0 {
			return 0
		}
		return price
	}
	return line.UnitPrice
}

// LineTotal is the effective unit price multiplied by quantity.
func LineTotal(line CartLine) float64 {
	return EffectiveUnitPrice(line) * float64(line.Quantity)
}
