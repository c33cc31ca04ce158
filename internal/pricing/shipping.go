package pricing

import "github.com/thitipat-dev/petshop-backend/pkg/enums"

// ShippingOption is one deliverable channel offered at checkout.
type ShippingOption struct {
	ID     string
	Name   string
	Method enums.ShippingMethod
	Fee    float64
}

// SuggestShippingMethod recommends the channel implied by cart composition:
// live animals are handed over in store, everything else ships by courier.
func SuggestShippingMethod(hasPets bool) enums.ShippingMethod {
	if hasPets {
		return enums.ShippingMethodPickup
	}
	return enums.ShippingMethodDelivery
}

// FilterShippingOptions narrows candidate options to the ones usable for the
// analyzed cart. Carts containing animals may only use pickup options;
// merchandise-only carts can use any candidate.
func FilterShippingOptions(candidates []ShippingOption, analysis OrderAnalysis) []ShippingOption {
	if !analysis.HasPets {
		out := make([]ShippingOption, len(candidates))
		copy(out, candidates)
		return out
	}
	out := make([]ShippingOption, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Method == enums.ShippingMethodPickup {
			out = append(out, candidate)
		}
	}
	return out
}
