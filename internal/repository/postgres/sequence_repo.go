package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gstcore/internal/domain"
	"gstcore/internal/port"
)

type sequenceRepo struct {
	db *sqlx.DB
}

// NewSequenceRepo creates a new PostgreSQL-backed SequenceStore.
func NewSequenceRepo(db *sqlx.DB) port.SequenceStore {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) Current(ctx context.Context, series string) (*domain.InvoiceSequence, error) {
	var seq domain.InvoiceSequence
	err := r.db.GetContext(ctx, &seq,
		"SELECT series, last_value, version, updated_at FROM invoice_sequences WHERE series = $1", series)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.InvoiceSequence{Series: series}, nil
		}
		return nil, fmt.Errorf("sequenceRepo.Current: %w", err)
	}
	return &seq, nil
}

func (r *sequenceRepo) Advance(ctx context.Context, series string, to, expectedVersion int64) error {
	now := time.Now().UTC()

	var (
		res sql.Result
		err error
	)
	if expectedVersion == 0 {
		res, err = r.db.ExecContext(ctx, `INSERT INTO invoice_sequences (series, last_value, version, updated_at)
			VALUES ($1, $2, 1, $3)
			ON CONFLICT (series) DO NOTHING`,
			series, to, now)
	} else {
		res, err = r.db.ExecContext(ctx, `UPDATE invoice_sequences
			SET last_value = $2, version = version + 1, updated_at = $4
			WHERE series = $1 AND version = $3 AND last_value < $2`,
			series, to, expectedVersion, now)
	}
	if err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("sequenceRepo.Advance: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sequenceRepo.Advance rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrConflict
	}
	return nil
}
