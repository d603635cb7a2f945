package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstcore/internal/domain"
)

// MockSequenceStore is a mock implementation of port.SequenceStore.
type MockSequenceStore struct {
	mock.Mock
}

func (m *MockSequenceStore) Current(ctx context.Context, series string) (*domain.InvoiceSequence, error) {
	args := m.Called(ctx, series)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSequence), args.Error(1)
}

func (m *MockSequenceStore) Advance(ctx context.Context, series string, to, expectedVersion int64) error {
	args := m.Called(ctx, series, to, expectedVersion)
	return args.Error(0)
}
