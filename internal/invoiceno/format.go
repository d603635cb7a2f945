// Package invoiceno builds human-readable invoice numbers from a sequence
// value, an issue date and a prefix. Nothing here reads or advances a counter.
package invoiceno

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTemplate sorts lexically in creation order within a year for
	// sequences below one million.
	DefaultTemplate = "{PREFIX}-{YYYY}-{SEQ6}"
	DefaultPrefix   = "INV"
)

var (
	seqPadRe   = regexp.MustCompile(`\{SEQ(\d+)\}`)
	spaceRe    = regexp.MustCompile(`\s+`)
	prefixTrim = regexp.MustCompile(`[^A-Z0-9/-]+`)

	ErrEmptyTemplate   = errors.New("invoice number template is empty")
	ErrNoSequenceToken = errors.New("invoice number template has no sequence token")
)

// MakeInvoiceNo renders the default template. A sequence below 1 is treated
// as 1.
//
//	MakeInvoiceNo(7, 2024-03-15, "BPH") == "BPH-2024-000007"
func MakeInvoiceNo(seq int64, date time.Time, prefix string) string {
	if seq < 1 {
		seq = 1
	}
	// DefaultTemplate always resolves for seq >= 1.
	out, _ := Format(DefaultTemplate, date, seq, prefix)
	return out
}

// Format renders template for the given issue date, sequence and prefix.
//
// Tokens: {PREFIX} {YYYY} {YY} {MM} {DD} {FY} {SEQ} {SEQn}. {FY} is the
// Indian fiscal year (April to March), e.g. "24-25".
func Format(template string, issuedAt time.Time, seq int64, prefix string) (string, error) {
	if err := ValidateTemplate(template); err != nil {
		return "", err
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := strings.ReplaceAll(template, "{PREFIX}", NormalizePrefix(prefix))
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))
	out = strings.ReplaceAll(out, "{FY}", FiscalYear(issuedAt))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 || width > 18 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in invoice number format: %s", out)
	}
	return out, nil
}

// ValidateTemplate rejects templates that cannot yield unique numbers.
func ValidateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return ErrEmptyTemplate
	}
	if !strings.Contains(template, "{SEQ}") && !seqPadRe.MatchString(template) {
		return ErrNoSequenceToken
	}
	return nil
}

// ValidateScheme checks that template and prefix render, for the first
// sequence value, a number ValidateManual accepts. Later numbers are never
// shorter.
func ValidateScheme(template, prefix string) error {
	sample, err := Format(template, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), 1, prefix)
	if err != nil {
		return err
	}
	if err := ValidateManual(sample); err != nil {
		return fmt.Errorf("template %q with prefix %q renders %q: %w", template, NormalizePrefix(prefix), sample, err)
	}
	return nil
}

// NormalizePrefix upper-cases p, joins words with "-" and drops characters
// outside A-Z 0-9 / -. An empty result falls back to DefaultPrefix.
func NormalizePrefix(p string) string {
	p = strings.ToUpper(strings.TrimSpace(p))
	p = spaceRe.ReplaceAllString(p, "-")
	p = prefixTrim.ReplaceAllString(p, "")
	p = strings.Trim(p, "-")
	if p == "" {
		return DefaultPrefix
	}
	return p
}

// FiscalYear returns the Indian fiscal year containing t as "YY-YY".
func FiscalYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}
