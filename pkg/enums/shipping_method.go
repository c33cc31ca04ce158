package enums

import "fmt"

// ShippingMethod is the channel an order is handed over through.
type ShippingMethod string

const (
	ShippingMethodPickup   ShippingMethod = "pickup"
	ShippingMethodDelivery ShippingMethod = "delivery"
)

var validShippingMethods = []ShippingMethod{
	ShippingMethodPickup,
	ShippingMethodDelivery,
}

// String implements fmt.Stringer.
func (m ShippingMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ShippingMethod.
func (m ShippingMethod) IsValid() bool {
	for _, candidate := range validShippingMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseShippingMethod converts raw input into a ShippingMethod.
func ParseShippingMethod(value string) (ShippingMethod, error) {
	for _, candidate := range validShippingMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping method %q", value)
}
