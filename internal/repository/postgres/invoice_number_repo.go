package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstcore/internal/domain"
	"gstcore/internal/invoiceno"
	"gstcore/internal/port"
)

type invoiceNumberRepo struct {
	db *sqlx.DB
}

// NewInvoiceNumberRepo creates a new PostgreSQL-backed InvoiceNumberRegistry.
func NewInvoiceNumberRepo(db *sqlx.DB) port.InvoiceNumberRegistry {
	return &invoiceNumberRepo{db: db}
}

func (r *invoiceNumberRepo) Exists(ctx context.Context, invoiceNumber string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM invoice_numbers WHERE UPPER(invoice_number) = $1)",
		invoiceno.Normalize(invoiceNumber))
	if err != nil {
		return false, fmt.Errorf("invoiceNumberRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *invoiceNumberRepo) Register(ctx context.Context, n *domain.IssuedNumber) error {
	n.ID = uuid.New()
	n.InvoiceNumber = strings.TrimSpace(n.InvoiceNumber)
	n.CreatedAt = time.Now().UTC()

	query := `INSERT INTO invoice_numbers (id, series, invoice_number, sequence, source, issued_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.Series, n.InvoiceNumber, n.Sequence, n.Source, n.IssuedOn, n.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceNumberRepo.Register: %w", err)
	}
	return nil
}

func (r *invoiceNumberRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.IssuedNumber, error) {
	var n domain.IssuedNumber
	err := r.db.GetContext(ctx, &n,
		"SELECT * FROM invoice_numbers WHERE UPPER(invoice_number) = $1",
		invoiceno.Normalize(invoiceNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceNumberRepo.GetByNumber: %w", err)
	}
	return &n, nil
}

func (r *invoiceNumberRepo) ListBySeries(ctx context.Context, series string, offset, limit int) ([]domain.IssuedNumber, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoice_numbers WHERE series = $1", series)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceNumberRepo.ListBySeries count: %w", err)
	}

	var numbers []domain.IssuedNumber
	err = r.db.SelectContext(ctx, &numbers,
		"SELECT * FROM invoice_numbers WHERE series = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		series, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceNumberRepo.ListBySeries: %w", err)
	}
	return numbers, total, nil
}
