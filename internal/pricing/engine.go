// Package pricing is the order analysis engine: it reduces a cart to amounts,
// applies a resolved discount code, and decides whether the shop's live-animal
// deposit policy splits the payment. Every function is a pure computation over
// its inputs; settings arrive as an explicit parameter so concurrent checkouts
// never share state.
package pricing

import (
	"math"

	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

// DepositSettings is the admin-configurable deposit policy, fetched fresh for
// every analysis. Percentage is a fraction in [0,1].
type DepositSettings struct {
	MinAmount  float64
	Percentage float64
	Enabled    bool
}

// DefaultDepositSettings mirrors the documented fallbacks used when the
// settings store has no values yet.
func DefaultDepositSettings() DepositSettings {
	return DepositSettings{MinAmount: 10000, Percentage: 0.10, Enabled: true}
}

// OrderAnalysis is the full engine output for one checkout attempt. The
// amounts are copied onto the persisted order at creation time and never
// recomputed afterwards.
type OrderAnalysis struct {
	HasPets                   bool
	RequiresDeposit           bool
	TotalAmount               float64
	TotalAmountBeforeDiscount float64
	DiscountAmount            float64
	DepositAmount             *float64
	RemainingAmount           *float64
	DepositRate               int
	PaymentType               enums.PaymentType
	SuggestedShippingMethod   enums.ShippingMethod
	PetLines                  []CartLine
	NonPetLines               []CartLine
}

// Analyze runs the full cart-to-amounts reduction and deposit policy. The
// discount descriptor, if present, must already have passed validation.
// An empty cart is not an error: it yields a zero total with no deposit.
func Analyze(lines []CartLine, discount *DiscountDescriptor, settings DepositSettings) OrderAnalysis {
	petLines := make([]CartLine, 0, len(lines))
	nonPetLines := make([]CartLine, 0, len(lines))
	var subtotal float64
	for _, line := range lines {
		if IsAnimalCategory(line.Category) {
			petLines = append(petLines, line)
		} else {
			nonPetLines = append(nonPetLines, line)
		}
		subtotal += LineTotal(line)
	}
	hasPets := len(petLines) > 0

	var discountAmount float64
	if discount != nil {
		discountAmount = DiscountAmount(subtotal, *discount)
	}

	total := subtotal - discountAmount
	if total < 0 {
		total = 0
	}

	analysis := OrderAnalysis{
		HasPets:                   hasPets,
		TotalAmount:               total,
		TotalAmountBeforeDiscount: subtotal,
		DiscountAmount:            discountAmount,
		DepositRate:               int(math.Round(settings.Percentage * 100)),
		PaymentType:               enums.PaymentTypeFull,
		SuggestedShippingMethod:   SuggestShippingMethod(hasPets),
		PetLines:                  petLines,
		NonPetLines:               nonPetLines,
	}

	// Deposit gate: strictly greater than the threshold, never >=.
	if hasPets && settings.Enabled && total > settings.MinAmount {
		deposit := round2(total * settings.Percentage)
		remaining := round2(total - deposit)
		analysis.RequiresDeposit = true
		analysis.DepositAmount = &deposit
		analysis.RemainingAmount = &remaining
		analysis.PaymentType = enums.PaymentTypeDeposit
	}

	return analysis
}
