package words

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero", "0", "Zero"},
		{"negative clamps", "-150", "Zero"},
		{"below half rounds down", "0.49", "Zero"},
		{"half rounds up", "0.5", "One"},
		{"teen", "13", "Thirteen"},
		{"round tens", "40", "Forty"},
		{"tens and ones", "99", "Ninety Nine"},
		{"hundred", "100", "One Hundred"},
		{"hundred and change", "101", "One Hundred One"},
		{"thousand", "1000", "One Thousand"},
		{"invoice total", "1180", "One Thousand One Hundred Eighty"},
		{"paise rounded", "1234.4", "One Thousand Two Hundred Thirty Four"},
		{"lakh", "100000", "One Lakh"},
		{"lakh mixed", "913183", "Nine Lakh Thirteen Thousand One Hundred Eighty Three"},
		{"crore", "10000000", "One Crore"},
		{"grouping example", "12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{"upper contract bound", "9999999999", "Nine Hundred Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{"thousand crore", "10000000000", "One Thousand Crore"},
		{"crore of crore", "100000000000000", "One Crore Crore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountToWords(dec(tt.in)))
		})
	}
}

func TestAmountToWords_Properties(t *testing.T) {
	assert.Equal(t, "Zero", AmountToWords(decimal.Zero))

	hundred := AmountToWords(dec("100"))
	assert.Contains(t, hundred, "Hundred")
	assert.NotContains(t, hundred, "Thousand")

	assert.Contains(t, AmountToWords(dec("100000")), "Lakh")
	assert.Contains(t, AmountToWords(dec("10000000")), "Crore")
}

func TestAmountToWords_BeyondInt64DoesNotPanic(t *testing.T) {
	huge := dec("1e30")
	assert.NotPanics(t, func() {
		got := AmountToWords(huge)
		assert.Equal(t, Int(math.MaxInt64), got)
		assert.Contains(t, got, "Crore")
	})
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "Rupees One Thousand One Hundred Eighty Only", Rupees(dec("1180")))
	assert.Equal(t, "Rupees Zero Only", Rupees(dec("-1")))
}

func TestInt_NonPositive(t *testing.T) {
	assert.Equal(t, "Zero", Int(0))
	assert.Equal(t, "Zero", Int(-42))
}
