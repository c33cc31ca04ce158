package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAnimalCategory(t *testing.T) {
	tests := []struct {
		label    string
		expected bool
	}{
		{"dogs", true},
		{"Dogs - Small Breed", true},
		{"CATS", true},
		{"birds", true},
		{"fish", true},
		{"rabbits", true},
		{"hamsters", true},
		{"reptiles", true},
		{"small-pets", true},
		{"สุนัข", true},
		{"แมวเปอร์เซีย", true},
		{"นกแก้ว", true},
		{"ปลาสวยงาม", true},
		{"กระต่าย", true},
		{"accessories", false},
		{"food", false},
		{"toys", false},
		{"อาหารเม็ด", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, IsAnimalCategory(tc.label), "label %q", tc.label)
	}
}
