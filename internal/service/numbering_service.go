package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"gstcore/internal/config"
	"gstcore/internal/domain"
	"gstcore/internal/invoiceno"
	"gstcore/internal/metrics"
	"gstcore/internal/port"
)

const (
	maxIssueAttempts   = 2
	maxAdvanceAttempts = 3
)

// IssueManualInput is the DTO for committing a user-chosen invoice number.
type IssueManualInput struct {
	InvoiceNumber string    `json:"invoice_number" binding:"required"`
	IssuedOn      time.Time `json:"issued_on"`
}

// NumberingService hands out invoice numbers for one configured series.
type NumberingService interface {
	// Preview returns the number the next Issue would produce. Nothing is
	// reserved, so a concurrent Issue may take it first.
	Preview(ctx context.Context, issuedOn time.Time) (*domain.NumberPreview, error)
	// Issue commits the next generated number. A number that collides with
	// an existing one is skipped and the issue retried once.
	Issue(ctx context.Context, issuedOn time.Time) (*domain.IssuedNumber, error)
	// IssueManual commits a user-chosen number. Collisions are reported,
	// never renumbered.
	IssueManual(ctx context.Context, input IssueManualInput) (*domain.IssuedNumber, error)
	// Check returns nil if number is free, domain.ErrDuplicateInvoiceNumber
	// if it is taken.
	Check(ctx context.Context, number string) error
	// Get returns the committed record for number, matched case-insensitively.
	Get(ctx context.Context, number string) (*domain.IssuedNumber, error)
	List(ctx context.Context, offset, limit int) ([]domain.IssuedNumber, int, error)
}

type numberingService struct {
	seqs     port.SequenceStore
	registry port.InvoiceNumberRegistry
	cfg      config.NumberingConfig
	metrics  *metrics.Metrics
	log      *zap.Logger
	tracer   trace.Tracer
}

// NewNumberingService creates a new NumberingService implementation. The
// configured template and prefix are validated up front.
func NewNumberingService(
	seqs port.SequenceStore,
	registry port.InvoiceNumberRegistry,
	cfg config.NumberingConfig,
	m *metrics.Metrics,
	log *zap.Logger,
) (NumberingService, error) {
	if cfg.Template == "" {
		cfg.Template = invoiceno.DefaultTemplate
	}
	if err := invoiceno.ValidateScheme(cfg.Template, cfg.Prefix); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTemplate, err)
	}
	if strings.TrimSpace(cfg.Series) == "" {
		return nil, fmt.Errorf("%w: numbering series is required", domain.ErrInvalidInput)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &numberingService{
		seqs:     seqs,
		registry: registry,
		cfg:      cfg,
		metrics:  m,
		log:      log.Named("numbering"),
		tracer:   otel.Tracer("gstcore/numbering"),
	}, nil
}

func (s *numberingService) Preview(ctx context.Context, issuedOn time.Time) (*domain.NumberPreview, error) {
	seq, err := s.seqs.Current(ctx, s.cfg.Series)
	if err != nil {
		return nil, err
	}
	next := seq.Next()
	number, err := s.format(issueDate(issuedOn), next)
	if err != nil {
		return nil, err
	}
	return &domain.NumberPreview{
		Series:        s.cfg.Series,
		Sequence:      next,
		InvoiceNumber: number,
	}, nil
}

func (s *numberingService) Issue(ctx context.Context, issuedOn time.Time) (*domain.IssuedNumber, error) {
	ctx, span := s.startSpan(ctx, "NumberingService.Issue")
	defer span.End()

	issued, err := s.issue(ctx, issuedOn)
	endSpan(span, issued, err)
	return issued, err
}

func (s *numberingService) issue(ctx context.Context, issuedOn time.Time) (*domain.IssuedNumber, error) {
	start := time.Now()
	issuedOn = issueDate(issuedOn)
	source := string(domain.NumberSourceGenerated)

	for attempt := 1; ; attempt++ {
		seq, err := s.seqs.Current(ctx, s.cfg.Series)
		if err != nil {
			s.metrics.ObserveIssue(source, metrics.OutcomeError, time.Since(start))
			return nil, err
		}
		next := seq.Next()
		number, err := s.format(issuedOn, next)
		if err != nil {
			s.metrics.ObserveIssue(source, metrics.OutcomeError, time.Since(start))
			return nil, err
		}

		issued := &domain.IssuedNumber{
			Series:        s.cfg.Series,
			InvoiceNumber: number,
			Sequence:      &next,
			Source:        domain.NumberSourceGenerated,
			IssuedOn:      issuedOn,
		}
		err = s.register(ctx, issued)
		if errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			s.metrics.ObserveIssue(source, metrics.OutcomeDuplicate, time.Since(start))
			s.log.Warn("numberingService.Issue: generated number already taken",
				zap.String("series", s.cfg.Series),
				zap.String("invoice_number", number),
				zap.Int("attempt", attempt))
			if attempt >= maxIssueAttempts {
				return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateInvoiceNumber, number)
			}
			// Skip the taken value so the retry derives a fresh one.
			if err := s.advanceTo(ctx, next); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					s.metrics.ObserveIssue(source, metrics.OutcomeConflict, time.Since(start))
				}
				return nil, err
			}
			s.metrics.IncRetry()
			continue
		}
		if err != nil {
			s.metrics.ObserveIssue(source, metrics.OutcomeError, time.Since(start))
			return nil, err
		}

		if err := s.advanceTo(ctx, next); err != nil {
			// The number is committed; the counter catches up on the next
			// issue via the duplicate path.
			s.log.Warn("numberingService.Issue: counter not advanced",
				zap.String("series", s.cfg.Series),
				zap.Int64("sequence", next),
				zap.Error(err))
		}
		s.metrics.ObserveIssue(source, metrics.OutcomeIssued, time.Since(start))
		s.log.Info("numberingService.Issue: issued invoice number",
			zap.String("series", s.cfg.Series),
			zap.String("invoice_number", number),
			zap.Int64("sequence", next))
		return issued, nil
	}
}

func (s *numberingService) IssueManual(ctx context.Context, input IssueManualInput) (*domain.IssuedNumber, error) {
	ctx, span := s.startSpan(ctx, "NumberingService.IssueManual")
	defer span.End()

	issued, err := s.issueManual(ctx, input)
	endSpan(span, issued, err)
	return issued, err
}

func (s *numberingService) issueManual(ctx context.Context, input IssueManualInput) (*domain.IssuedNumber, error) {
	start := time.Now()
	source := string(domain.NumberSourceManual)

	number := strings.TrimSpace(input.InvoiceNumber)
	if err := invoiceno.ValidateManual(number); err != nil {
		s.metrics.ObserveIssue(source, metrics.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInvoiceNumber, err)
	}

	issued := &domain.IssuedNumber{
		Series:        s.cfg.Series,
		InvoiceNumber: number,
		Source:        domain.NumberSourceManual,
		IssuedOn:      issueDate(input.IssuedOn),
	}
	if err := s.register(ctx, issued); err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			outcome = metrics.OutcomeDuplicate
		}
		s.metrics.ObserveIssue(source, outcome, time.Since(start))
		return nil, err
	}

	s.metrics.ObserveIssue(source, metrics.OutcomeIssued, time.Since(start))
	s.log.Info("numberingService.IssueManual: registered manual invoice number",
		zap.String("series", s.cfg.Series),
		zap.String("invoice_number", number))
	return issued, nil
}

func (s *numberingService) Check(ctx context.Context, number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInvoiceNumber, invoiceno.ErrEmptyNumber)
	}
	exists, err := s.registry.Exists(ctx, number)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateInvoiceNumber
	}
	return nil
}

func (s *numberingService) Get(ctx context.Context, number string) (*domain.IssuedNumber, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInvoiceNumber, invoiceno.ErrEmptyNumber)
	}
	return s.registry.GetByNumber(ctx, number)
}

func (s *numberingService) List(ctx context.Context, offset, limit int) ([]domain.IssuedNumber, int, error) {
	return s.registry.ListBySeries(ctx, s.cfg.Series, offset, limit)
}

func (s *numberingService) format(issuedOn time.Time, seq int64) (string, error) {
	number, err := invoiceno.Format(s.cfg.Template, issuedOn, seq, s.cfg.Prefix)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidTemplate, err)
	}
	// Generated and manual numbers obey the same rules.
	if err := invoiceno.ValidateManual(number); err != nil {
		return "", fmt.Errorf("%w: generated number %q: %v", domain.ErrInvalidTemplate, number, err)
	}
	return number, nil
}

// register commits n unless its number is already taken.
func (s *numberingService) register(ctx context.Context, n *domain.IssuedNumber) error {
	exists, err := s.registry.Exists(ctx, n.InvoiceNumber)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateInvoiceNumber
	}
	return s.registry.Register(ctx, n)
}

// advanceTo moves the series counter to at least `to`. Losing the version
// race is retried; a counter already at or past `to` is left alone.
func (s *numberingService) advanceTo(ctx context.Context, to int64) error {
	for i := 0; i < maxAdvanceAttempts; i++ {
		cur, err := s.seqs.Current(ctx, s.cfg.Series)
		if err != nil {
			return err
		}
		if cur.LastValue >= to {
			return nil
		}
		err = s.seqs.Advance(ctx, s.cfg.Series, to, cur.Version)
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	return domain.ErrConflict
}

func (s *numberingService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("numbering.series", s.cfg.Series)))
}

func endSpan(span trace.Span, issued *domain.IssuedNumber, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.String("invoice.number", issued.InvoiceNumber))
}

func issueDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
