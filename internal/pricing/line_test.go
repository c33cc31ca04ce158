package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestEffectiveUnitPrice_ListPrice(t *testing.T) {
	line := CartLine{UnitPrice: 500, Quantity: 1}
	assert.Equal(t, 500.0, EffectiveUnitPrice(line))
}

func TestEffectiveUnitPrice_PercentDiscount(t *testing.T) {
	line := CartLine{UnitPrice: 500, DiscountPercent: floatPtr(20), Quantity: 2}
	assert.Equal(t, 400.0, EffectiveUnitPrice(line))
	assert.Equal(t, 800.0, LineTotal(line))
}

func TestEffectiveUnitPrice_SalePriceWinsOverPercent(t *testing.T) {
	// Sale price is final and never combined with the percent discount.
	line := CartLine{UnitPrice: 1000, SalePrice: floatPtr(750), DiscountPercent: floatPtr(50), Quantity: 1}
	assert.Equal(t, 750.0, EffectiveUnitPrice(line))
}

func TestEffectiveUnitPrice_ZeroPercentIgnored(t *testing.T) {
	line := CartLine{UnitPrice: 300, DiscountPercent: floatPtr(0), Quantity: 1}
	assert.Equal(t, 300.0, EffectiveUnitPrice(line))
}

func TestEffectiveUnitPrice_OversizedPercentFloorsAtZero(t *testing.T) {
	line := CartLine{UnitPrice: 200, DiscountPercent: floatPtr(150), Quantity: 1}
	assert.Equal(t, 0.0, EffectiveUnitPrice(line))
}
