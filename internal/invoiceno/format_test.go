package invoiceno

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march15 = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestMakeInvoiceNo(t *testing.T) {
	assert.Equal(t, "BPH-2024-000007", MakeInvoiceNo(7, march15, "BPH"))
	assert.Equal(t, "BPH-2024-000008", MakeInvoiceNo(8, march15, "BPH"))
}

func TestMakeInvoiceNo_SortsInSequenceOrder(t *testing.T) {
	a := MakeInvoiceNo(7, march15, "BPH")
	b := MakeInvoiceNo(8, march15, "BPH")
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)

	var got []string
	for _, seq := range []int64{100, 9, 10, 1, 99999} {
		got = append(got, MakeInvoiceNo(seq, march15, "BPH"))
	}
	sort.Strings(got)
	assert.Equal(t, []string{
		"BPH-2024-000001",
		"BPH-2024-000009",
		"BPH-2024-000010",
		"BPH-2024-000100",
		"BPH-2024-099999",
	}, got)
}

func TestMakeInvoiceNo_Deterministic(t *testing.T) {
	assert.Equal(t, MakeInvoiceNo(42, march15, "x"), MakeInvoiceNo(42, march15, "x"))
}

func TestMakeInvoiceNo_ClampsSequence(t *testing.T) {
	assert.Equal(t, "INV-2024-000001", MakeInvoiceNo(0, march15, ""))
	assert.Equal(t, "INV-2024-000001", MakeInvoiceNo(-5, march15, ""))
}

func TestMakeInvoiceNo_WideSequence(t *testing.T) {
	assert.Equal(t, "BPH-2024-1234567", MakeInvoiceNo(1234567, march15, "BPH"))
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "INV"},
		{"   ", "INV"},
		{"bph", "BPH"},
		{" Bharat  Pharma ", "BHARAT-PHARMA"},
		{"{YYYY}", "YYYY"},
		{"ab/cd", "AB/CD"},
		{"b_p_h", "BPH"},
		{"!!", "INV"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePrefix(tt.in))
		})
	}
}

func TestFormat_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"date parts", "{PREFIX}/{YY}{MM}{DD}/{SEQ4}", "BPH/240315/0007"},
		{"fiscal year", "{PREFIX}/{FY}/{SEQ3}", "BPH/23-24/007"},
		{"plain seq", "{PREFIX}{SEQ}", "BPH7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, march15, 7, "bph")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Errors(t *testing.T) {
	_, err := Format("", march15, 1, "X")
	assert.ErrorIs(t, err, ErrEmptyTemplate)

	_, err = Format("{PREFIX}-{YYYY}", march15, 1, "X")
	assert.ErrorIs(t, err, ErrNoSequenceToken)

	_, err = Format("{PREFIX}-{SEQ6}", march15, 0, "X")
	assert.Error(t, err)

	_, err = Format("{PREFIX}-{BOGUS}-{SEQ6}", march15, 1, "X")
	assert.Error(t, err)
}

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), "23-24"},
		{time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "24-25"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "25-26"},
		{time.Date(2099, time.June, 1, 0, 0, 0, 0, time.UTC), "99-00"},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, FiscalYear(tt.date))
		})
	}
}

func TestValidateScheme(t *testing.T) {
	require.NoError(t, ValidateScheme(DefaultTemplate, "BPH"))
	require.NoError(t, ValidateScheme(DefaultTemplate, ""))
	require.NoError(t, ValidateScheme("{PREFIX}/{FY}/{SEQ4}", "bph"))

	err := ValidateScheme(DefaultTemplate, "BPH Retail")
	assert.ErrorIs(t, err, ErrNumberTooLong)
	assert.Contains(t, err.Error(), "BPH-RETAIL-2000-000001")

	assert.ErrorIs(t, ValidateScheme("{PREFIX} {SEQ4}", "BPH"), ErrNumberCharset)
	assert.ErrorIs(t, ValidateScheme("{PREFIX}-{YYYY}", "BPH"), ErrNoSequenceToken)
}

func TestValidateScheme_AgreesWithManualLimit(t *testing.T) {
	// 16 characters fits, 17 does not.
	require.NoError(t, ValidateScheme(DefaultTemplate, "BPHR"))
	assert.ErrorIs(t, ValidateScheme(DefaultTemplate, "BPHRX"), ErrNumberTooLong)
}
