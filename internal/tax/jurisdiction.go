package tax

import (
	"regexp"
	"strings"
)

var (
	gstinPattern    = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	codeNamePattern = regexp.MustCompile(`^(\d{1,2})\s*[-:]\s*(.*)$`)
	codePattern     = regexp.MustCompile(`^\d{1,2}$`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// Jurisdiction identifies an Indian state or union territory by GST state
// code, name, or both.
type Jurisdiction struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// ParseJurisdiction accepts the shapes jurisdictions arrive in: a state name
// ("Karnataka"), a code ("29"), a code-name pair ("29-Karnataka") or a GSTIN.
// Known names are completed with their code and vice versa. Blank input
// yields the zero Jurisdiction.
func ParseJurisdiction(s string) Jurisdiction {
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return Jurisdiction{}
	}
	if upper := strings.ToUpper(s); gstinPattern.MatchString(upper) {
		return fromCode(upper[:2])
	}
	if m := codeNamePattern.FindStringSubmatch(s); m != nil {
		j := fromCode(padCode(m[1]))
		if name := strings.TrimSpace(m[2]); name != "" && j.Name == "" {
			j.Name = name
		}
		return j
	}
	if codePattern.MatchString(s) {
		return fromCode(padCode(s))
	}
	return Jurisdiction{Code: stateCodes[foldName(s)], Name: s}
}

// IsZero reports whether nothing is known about the jurisdiction.
func (j Jurisdiction) IsZero() bool {
	return j.Code == "" && strings.TrimSpace(j.Name) == ""
}

// String renders "29-Karnataka", or whichever half is known.
func (j Jurisdiction) String() string {
	switch {
	case j.Code != "" && j.Name != "":
		return j.Code + "-" + j.Name
	case j.Code != "":
		return j.Code
	default:
		return j.Name
	}
}

// SameState reports whether a and b are provably the same state. Codes are
// compared when both sides have one, otherwise trimmed case-folded names.
// Anything else is unknown and reports false.
func SameState(a, b Jurisdiction) bool {
	if a.Code != "" && b.Code != "" {
		return a.Code == b.Code
	}
	fa, fb := foldName(a.Name), foldName(b.Name)
	if fa == "" || fb == "" {
		return false
	}
	return fa == fb
}

// SupplyTypeFor picks the split for a buyer/seller pair.
func SupplyTypeFor(buyer, seller Jurisdiction) SupplyType {
	if SameState(buyer, seller) {
		return IntraState
	}
	return InterState
}

func fromCode(code string) Jurisdiction {
	name, _ := StateName(code)
	return Jurisdiction{Code: code, Name: name}
}

func padCode(code string) string {
	if len(code) == 1 {
		return "0" + code
	}
	return code
}

func foldName(s string) string {
	return strings.ToLower(whitespace.ReplaceAllString(strings.TrimSpace(s), " "))
}
