package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceSequence is the persisted counter behind one numbering series.
// LastValue is the highest sequence handed out; Version increments on every
// write and guards updates.
type InvoiceSequence struct {
	Series    string    `db:"series" json:"series"`
	LastValue int64     `db:"last_value" json:"last_value"`
	Version   int64     `db:"version" json:"version"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Next returns the sequence value the next invoice would take.
func (s *InvoiceSequence) Next() int64 {
	return s.LastValue + 1
}

// NumberSource records how an invoice number was chosen.
type NumberSource string

const (
	NumberSourceGenerated NumberSource = "generated"
	NumberSourceManual    NumberSource = "manual"
)

// IssuedNumber is an invoice number that has been committed to the registry.
// Sequence is nil for manual numbers.
type IssuedNumber struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	Series        string       `db:"series" json:"series"`
	InvoiceNumber string       `db:"invoice_number" json:"invoice_number"`
	Sequence      *int64       `db:"sequence" json:"sequence,omitempty"`
	Source        NumberSource `db:"source" json:"source"`
	IssuedOn      time.Time    `db:"issued_on" json:"issued_on"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// NumberPreview is what the next generated invoice number would be. It
// reserves nothing.
type NumberPreview struct {
	Series        string `json:"series"`
	Sequence      int64  `json:"sequence"`
	InvoiceNumber string `json:"invoice_number"`
}
