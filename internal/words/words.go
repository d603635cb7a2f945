// Package words spells rupee amounts in English using the Indian numbering
// system (thousand, lakh, crore).
package words

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousand = 1_000
	lakh     = 1_00_000
	crore    = 1_00_00_000
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var maxRupees = decimal.NewFromInt(math.MaxInt64)

// AmountToWords rounds amount to the nearest rupee (half-up) and spells it.
// Paise are not spelled. Zero and negative amounts render as "Zero". Amounts
// above the int64 range are spelled as the int64 maximum.
func AmountToWords(amount decimal.Decimal) string {
	if !amount.IsPositive() {
		return "Zero"
	}
	if amount.GreaterThan(maxRupees) {
		return Int(math.MaxInt64)
	}
	return Int(amount.Round(0).IntPart())
}

// Rupees wraps AmountToWords in the statutory "Rupees ... Only" phrase.
func Rupees(amount decimal.Decimal) string {
	return "Rupees " + AmountToWords(amount) + " Only"
}

// Int spells a whole number. Counts of crore above ninety-nine are spelled
// recursively, e.g. 1,000,00,00,000 is "One Thousand Crore".
func Int(n int64) string {
	if n <= 0 {
		return "Zero"
	}
	return strings.Join(indian(n), " ")
}

func indian(n int64) []string {
	var parts []string

	if n >= crore {
		parts = append(parts, indian(n/crore)...)
		parts = append(parts, "Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, belowHundred(n/lakh), "Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, belowHundred(n/thousand), "Thousand")
		n %= thousand
	}
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return parts
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
