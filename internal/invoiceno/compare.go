package invoiceno

import (
	"errors"
	"regexp"
	"strings"
)

// MaxLength is the GST limit on invoice serial numbers (CGST Rule 46).
const MaxLength = 16

var manualRe = regexp.MustCompile(`^[A-Za-z0-9/-]+$`)

var (
	ErrEmptyNumber   = errors.New("invoice number is empty")
	ErrNumberTooLong = errors.New("invoice number exceeds 16 characters")
	ErrNumberCharset = errors.New("invoice number may contain only letters, digits, '-' and '/'")
)

// Normalize returns the comparison key for an invoice number. Two numbers
// collide when their keys are equal; the registry matches on this key.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateManual checks a user-supplied invoice number. It does not check
// uniqueness.
func ValidateManual(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ErrEmptyNumber
	case len(s) > MaxLength:
		return ErrNumberTooLong
	case !manualRe.MatchString(s):
		return ErrNumberCharset
	}
	return nil
}
