package money

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Lenient is a decimal that decodes from a JSON number, a numeric string, or
// anything else (null, bool, "NaN", garbage) as zero. It never fails to
// decode, so one malformed field cannot reject a whole draft.
type Lenient struct {
	decimal.Decimal
}

// LStr parses s the same way JSON input is parsed.
func LStr(s string) Lenient {
	return Lenient{Decimal: Parse(s)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lenient) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			l.Decimal = decimal.Zero
			return nil
		}
		l.Decimal = Parse(s)
		return nil
	}
	l.Decimal = Parse(string(b))
	return nil
}

// MarshalJSON writes the value as a bare JSON number.
func (l Lenient) MarshalJSON() ([]byte, error) {
	return []byte(l.Decimal.String()), nil
}
