package pricing

import "github.com/shopspring/decimal"

// round2 rounds to two decimal places with half-up semantics. All currency
// rounding in the engine funnels through here so the deposit split invariant
// (deposit + remaining == total) cannot drift between call sites.
func round2(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
