package money

import "strings"

// FormatINR renders p in Indian Rupee notation: after the rightmost three
// digits the integer part is grouped in pairs, e.g. ₹1,23,45,678.90.
func FormatINR(p Paise) string {
	negative := p < 0
	if negative {
		p = -p
	}

	parts := strings.SplitN(p.String(), ".", 2)
	out := "₹" + GroupIndian(parts[0]) + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

// GroupIndian inserts commas into a string of digits using lakh/crore grouping.
func GroupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}
