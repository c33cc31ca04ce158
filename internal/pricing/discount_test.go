package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

func TestDiscountAmount_Percentage(t *testing.T) {
	descriptor := DiscountDescriptor{Type: enums.DiscountTypePercentage, Value: 10, Code: "WELCOME10"}
	assert.Equal(t, 1500.0, DiscountAmount(15000, descriptor))
}

func TestDiscountAmount_Fixed(t *testing.T) {
	descriptor := DiscountDescriptor{Type: enums.DiscountTypeFixed, Value: 200}
	assert.Equal(t, 200.0, DiscountAmount(15000, descriptor))
}

func TestDiscountAmount_FixedLargerThanSubtotalIsNotClamped(t *testing.T) {
	// Clamping is the engine's job, not the evaluator's.
	descriptor := DiscountDescriptor{Type: enums.DiscountTypeFixed, Value: 999}
	assert.Equal(t, 999.0, DiscountAmount(300, descriptor))
}
