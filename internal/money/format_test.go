package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name string
		in   Paise
		want string
	}{
		{"zero", 0, "₹0.00"},
		{"paise only", 5, "₹0.05"},
		{"hundreds", 99900, "₹999.00"},
		{"thousand", 118000, "₹1,180.00"},
		{"lakh", 12345678, "₹1,23,456.78"},
		{"crore", 1234567890, "₹1,23,45,678.90"},
		{"negative", -40, "-₹0.40"},
		{"negative large", -12345678, "-₹1,23,456.78"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(tt.in))
		})
	}
}

func TestGroupIndian(t *testing.T) {
	assert.Equal(t, "1", GroupIndian("1"))
	assert.Equal(t, "1,000", GroupIndian("1000"))
	assert.Equal(t, "10,000", GroupIndian("10000"))
	assert.Equal(t, "1,00,000", GroupIndian("100000"))
	assert.Equal(t, "99,99,99,999", GroupIndian("999999999"))
}
