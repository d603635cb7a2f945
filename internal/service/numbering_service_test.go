package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"gstcore/internal/config"
	"gstcore/internal/domain"
	"gstcore/internal/invoiceno"
	"gstcore/internal/service"
	"gstcore/mocks"
)

var issueDay = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func setupNumberingService(t *testing.T) (service.NumberingService, *mocks.MockSequenceStore, *mocks.MockInvoiceNumberRegistry) {
	t.Helper()
	seqs := new(mocks.MockSequenceStore)
	registry := new(mocks.MockInvoiceNumberRegistry)
	svc, err := service.NewNumberingService(seqs, registry, config.NumberingConfig{
		Series:   "default",
		Prefix:   "BPH",
		Template: invoiceno.DefaultTemplate,
	}, nil, nil)
	require.NoError(t, err)
	return svc, seqs, registry
}

func seq(last, version int64) *domain.InvoiceSequence {
	return &domain.InvoiceSequence{Series: "default", LastValue: last, Version: version}
}

func generatedNumber(number string, sequence int64) interface{} {
	return mock.MatchedBy(func(n *domain.IssuedNumber) bool {
		return n.InvoiceNumber == number &&
			n.Sequence != nil && *n.Sequence == sequence &&
			n.Source == domain.NumberSourceGenerated &&
			n.Series == "default"
	})
}

func TestNewNumberingService_RejectsTemplateWithoutSequence(t *testing.T) {
	_, err := service.NewNumberingService(nil, nil, config.NumberingConfig{
		Series:   "default",
		Template: "{PREFIX}-{YYYY}",
	}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestNewNumberingService_RejectsLongPrefix(t *testing.T) {
	_, err := service.NewNumberingService(nil, nil, config.NumberingConfig{
		Series:   "default",
		Prefix:   "BPH Retail",
		Template: invoiceno.DefaultTemplate,
	}, nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
	assert.ErrorIs(t, err, invoiceno.ErrNumberTooLong)
}

func TestNewNumberingService_RejectsCharsetOutsideManualRules(t *testing.T) {
	_, err := service.NewNumberingService(nil, nil, config.NumberingConfig{
		Series:   "default",
		Prefix:   "BPH",
		Template: "{PREFIX}.{SEQ4}",
	}, nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestNumberingService_Issue_GeneratedNumberOutgrowsLimit(t *testing.T) {
	seqs := new(mocks.MockSequenceStore)
	registry := new(mocks.MockInvoiceNumberRegistry)
	svc, err := service.NewNumberingService(seqs, registry, config.NumberingConfig{
		Series:   "default",
		Prefix:   "INV",
		Template: "{PREFIX}-{YYYY}-{SEQ}",
	}, nil, nil)
	require.NoError(t, err)
	// INV-2024-10000000 is 17 characters.
	seqs.On("Current", mock.Anything, "default").Return(seq(9_999_999, 12), nil)

	_, err = svc.Issue(context.Background(), issueDay)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
	assert.Contains(t, err.Error(), "INV-2024-10000000")

	_, err = svc.Preview(context.Background(), issueDay)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)

	registry.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	seqs.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewNumberingService_RequiresSeries(t *testing.T) {
	_, err := service.NewNumberingService(nil, nil, config.NumberingConfig{Series: " "}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNumberingService_Preview(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	seqs.On("Current", mock.Anything, "default").Return(seq(41, 41), nil)

	p, err := svc.Preview(context.Background(), issueDay)

	require.NoError(t, err)
	assert.Equal(t, int64(42), p.Sequence)
	assert.Equal(t, "BPH-2024-000042", p.InvoiceNumber)
	assert.Equal(t, "default", p.Series)
	seqs.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestNumberingService_Preview_FirstInvoice(t *testing.T) {
	svc, seqs, _ := setupNumberingService(t)
	seqs.On("Current", mock.Anything, "default").Return(seq(0, 0), nil)

	p, err := svc.Preview(context.Background(), issueDay)

	require.NoError(t, err)
	assert.Equal(t, "BPH-2024-000001", p.InvoiceNumber)
}

func TestNumberingService_Issue_Success(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil)
	seqs.On("Advance", mock.Anything, "default", int64(7), int64(6)).Return(nil).Once()
	registry.On("Exists", mock.Anything, "BPH-2024-000007").Return(false, nil)
	registry.On("Register", mock.Anything, generatedNumber("BPH-2024-000007", 7)).Return(nil).Once()

	issued, err := svc.Issue(ctx, issueDay)

	require.NoError(t, err)
	assert.Equal(t, "BPH-2024-000007", issued.InvoiceNumber)
	assert.Equal(t, int64(7), *issued.Sequence)
	assert.Equal(t, issueDay, issued.IssuedOn)
	seqs.AssertExpectations(t)
	registry.AssertExpectations(t)
}

func TestNumberingService_Issue_SkipsTakenNumber(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil).Twice()
	seqs.On("Advance", mock.Anything, "default", int64(7), int64(6)).Return(nil).Once()
	seqs.On("Current", mock.Anything, "default").Return(seq(7, 7), nil).Twice()
	seqs.On("Advance", mock.Anything, "default", int64(8), int64(7)).Return(nil).Once()

	registry.On("Exists", mock.Anything, "BPH-2024-000007").Return(true, nil).Once()
	registry.On("Exists", mock.Anything, "BPH-2024-000008").Return(false, nil).Once()
	registry.On("Register", mock.Anything, generatedNumber("BPH-2024-000008", 8)).Return(nil).Once()

	issued, err := svc.Issue(ctx, issueDay)

	require.NoError(t, err)
	assert.Equal(t, "BPH-2024-000008", issued.InvoiceNumber)
	seqs.AssertExpectations(t)
	registry.AssertExpectations(t)
}

func TestNumberingService_Issue_RegisterRaceRetried(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil).Twice()
	seqs.On("Advance", mock.Anything, "default", int64(7), int64(6)).Return(nil).Once()
	seqs.On("Current", mock.Anything, "default").Return(seq(7, 7), nil).Twice()
	seqs.On("Advance", mock.Anything, "default", int64(8), int64(7)).Return(nil).Once()

	registry.On("Exists", mock.Anything, mock.Anything).Return(false, nil)
	registry.On("Register", mock.Anything, generatedNumber("BPH-2024-000007", 7)).Return(domain.ErrDuplicateInvoiceNumber).Once()
	registry.On("Register", mock.Anything, generatedNumber("BPH-2024-000008", 8)).Return(nil).Once()

	issued, err := svc.Issue(ctx, issueDay)

	require.NoError(t, err)
	assert.Equal(t, "BPH-2024-000008", issued.InvoiceNumber)
	registry.AssertExpectations(t)
}

func TestNumberingService_Issue_DuplicateAfterRetry(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil).Twice()
	seqs.On("Advance", mock.Anything, "default", int64(7), int64(6)).Return(nil).Once()
	seqs.On("Current", mock.Anything, "default").Return(seq(7, 7), nil).Once()

	registry.On("Exists", mock.Anything, "BPH-2024-000007").Return(true, nil).Once()
	registry.On("Exists", mock.Anything, "BPH-2024-000008").Return(true, nil).Once()

	issued, err := svc.Issue(ctx, issueDay)

	assert.Nil(t, issued)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	seqs.AssertExpectations(t)
}

func TestNumberingService_Issue_CounterConflictTolerated(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil)
	seqs.On("Advance", mock.Anything, "default", int64(7), int64(6)).Return(domain.ErrConflict).Times(3)
	registry.On("Exists", mock.Anything, "BPH-2024-000007").Return(false, nil)
	registry.On("Register", mock.Anything, mock.Anything).Return(nil)

	issued, err := svc.Issue(ctx, issueDay)

	require.NoError(t, err)
	assert.Equal(t, "BPH-2024-000007", issued.InvoiceNumber)
	seqs.AssertNumberOfCalls(t, "Advance", 3)
}

func TestNumberingService_Issue_CounterAlreadyAhead(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil).Once()
	seqs.On("Current", mock.Anything, "default").Return(seq(9, 8), nil).Once()
	registry.On("Exists", mock.Anything, "BPH-2024-000007").Return(false, nil)
	registry.On("Register", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Issue(ctx, issueDay)

	require.NoError(t, err)
	seqs.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNumberingService_Issue_ConflictDuringRecovery(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil)
	seqs.On("Advance", mock.Anything, "default", int64(7), int64(6)).Return(domain.ErrConflict)
	registry.On("Exists", mock.Anything, "BPH-2024-000007").Return(true, nil)

	_, err := svc.Issue(ctx, issueDay)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestNumberingService_Issue_StoreError(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	boom := errors.New("connection refused")
	seqs.On("Current", mock.Anything, "default").Return(nil, boom)

	_, err := svc.Issue(context.Background(), issueDay)

	assert.ErrorIs(t, err, boom)
	registry.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestNumberingService_IssueManual_Success(t *testing.T) {
	svc, seqs, registry := setupNumberingService(t)
	ctx := context.Background()

	registry.On("Exists", mock.Anything, "BPH/24/77").Return(false, nil)
	registry.On("Register", mock.Anything, mock.MatchedBy(func(n *domain.IssuedNumber) bool {
		return n.InvoiceNumber == "BPH/24/77" && n.Sequence == nil && n.Source == domain.NumberSourceManual
	})).Return(nil)

	issued, err := svc.IssueManual(ctx, service.IssueManualInput{InvoiceNumber: "  BPH/24/77 ", IssuedOn: issueDay})

	require.NoError(t, err)
	assert.Equal(t, "BPH/24/77", issued.InvoiceNumber)
	assert.Equal(t, issueDay, issued.IssuedOn)
	seqs.AssertNotCalled(t, "Current", mock.Anything, mock.Anything)
	seqs.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNumberingService_IssueManual_Duplicate(t *testing.T) {
	svc, _, registry := setupNumberingService(t)
	ctx := context.Background()

	registry.On("Exists", mock.Anything, "inv-001").Return(true, nil)

	_, err := svc.IssueManual(ctx, service.IssueManualInput{InvoiceNumber: "inv-001"})

	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestNumberingService_IssueManual_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		number string
		cause  error
	}{
		{"blank", "   ", invoiceno.ErrEmptyNumber},
		{"too long", strings.Repeat("A", invoiceno.MaxLength+1), invoiceno.ErrNumberTooLong},
		{"charset", "INV 001", invoiceno.ErrNumberCharset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, registry := setupNumberingService(t)

			_, err := svc.IssueManual(context.Background(), service.IssueManualInput{InvoiceNumber: tt.number})

			assert.ErrorIs(t, err, domain.ErrInvalidInvoiceNumber)
			assert.Contains(t, err.Error(), tt.cause.Error())
			registry.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		})
	}
}

func TestNumberingService_Check(t *testing.T) {
	svc, _, registry := setupNumberingService(t)
	ctx := context.Background()

	registry.On("Exists", mock.Anything, "INV-2024-000001").Return(true, nil)
	registry.On("Exists", mock.Anything, "INV-2024-000002").Return(false, nil)
	registry.On("Exists", mock.Anything, "broken").Return(false, errors.New("db down"))

	assert.ErrorIs(t, svc.Check(ctx, " INV-2024-000001 "), domain.ErrDuplicateInvoiceNumber)
	assert.NoError(t, svc.Check(ctx, "INV-2024-000002"))
	assert.ErrorIs(t, svc.Check(ctx, ""), domain.ErrInvalidInvoiceNumber)
	assert.EqualError(t, svc.Check(ctx, "broken"), "db down")
}

func TestNumberingService_Get(t *testing.T) {
	svc, _, registry := setupNumberingService(t)
	ctx := context.Background()
	want := &domain.IssuedNumber{InvoiceNumber: "BPH-2024-000001"}
	registry.On("GetByNumber", mock.Anything, "bph-2024-000001").Return(want, nil)
	registry.On("GetByNumber", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	got, err := svc.Get(ctx, " bph-2024-000001 ")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceNumber)
}

func TestNumberingService_List(t *testing.T) {
	svc, _, registry := setupNumberingService(t)
	ctx := context.Background()
	want := []domain.IssuedNumber{{InvoiceNumber: "BPH-2024-000001"}}
	registry.On("ListBySeries", mock.Anything, "default", 0, 20).Return(want, 1, nil)

	got, total, err := svc.List(ctx, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, want, got)
}

func TestNumberingService_IssueSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	svc, seqs, registry := setupNumberingService(t)
	seqs.On("Current", mock.Anything, "default").Return(seq(6, 6), nil)
	seqs.On("Advance", mock.Anything, "default", int64(7), int64(6)).Return(nil)
	registry.On("Exists", mock.Anything, "BPH-2024-000007").Return(false, nil)
	registry.On("Exists", mock.Anything, "TAKEN-1").Return(true, nil)
	registry.On("Register", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Issue(context.Background(), issueDay)
	require.NoError(t, err)
	_, err = svc.IssueManual(context.Background(), service.IssueManualInput{InvoiceNumber: "TAKEN-1"})
	require.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "NumberingService.Issue", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "NumberingService.IssueManual", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
