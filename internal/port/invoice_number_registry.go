package port

import (
	"context"

	"gstcore/internal/domain"
)

// InvoiceNumberRegistry holds every committed invoice number. Numbers are
// unique case-insensitively across all series.
type InvoiceNumberRegistry interface {
	Exists(ctx context.Context, invoiceNumber string) (bool, error)
	// Register returns domain.ErrDuplicateInvoiceNumber if the number is taken.
	Register(ctx context.Context, n *domain.IssuedNumber) error
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.IssuedNumber, error)
	ListBySeries(ctx context.Context, series string, offset, limit int) ([]domain.IssuedNumber, int, error)
}
