package port

import (
	"context"

	"gstcore/internal/domain"
)

// SequenceStore owns the invoice sequence counters.
type SequenceStore interface {
	// Current returns the counter for series. A series that has never been
	// advanced is returned with LastValue and Version zero.
	Current(ctx context.Context, series string) (*domain.InvoiceSequence, error)
	// Advance moves the counter to `to` if its version still equals
	// expectedVersion and `to` is ahead of the stored value. Otherwise it
	// returns domain.ErrConflict.
	Advance(ctx context.Context, series string, to, expectedVersion int64) error
}
