package pricing

import "github.com/thitipat-dev/petshop-backend/pkg/enums"

// DiscountDescriptor is an already-validated promotional reduction. The
// discounts service resolves one from a persisted code; the engine never
// talks to storage itself.
type DiscountDescriptor struct {
	Type  enums.DiscountType
	Value float64
	Code  string
}

// DiscountAmount computes the raw reduction a descriptor takes off a
// subtotal. The result is intentionally unclamped: Analyze clamps the final
// total at zero, so an oversized fixed discount zeroes the order rather than
// erroring.
func DiscountAmount(subtotal float64, descriptor DiscountDescriptor) float64 {
	if descriptor.Type == enums.DiscountTypePercentage {
		return subtotal * descriptor.Value / 100
	}
	return descriptor.Value
}
