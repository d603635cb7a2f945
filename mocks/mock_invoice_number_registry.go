package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstcore/internal/domain"
)

// MockInvoiceNumberRegistry is a mock implementation of port.InvoiceNumberRegistry.
type MockInvoiceNumberRegistry struct {
	mock.Mock
}

func (m *MockInvoiceNumberRegistry) Exists(ctx context.Context, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceNumberRegistry) Register(ctx context.Context, n *domain.IssuedNumber) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockInvoiceNumberRegistry) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.IssuedNumber, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedNumber), args.Error(1)
}

func (m *MockInvoiceNumberRegistry) ListBySeries(ctx context.Context, series string, offset, limit int) ([]domain.IssuedNumber, int, error) {
	args := m.Called(ctx, series, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IssuedNumber), args.Int(1), args.Error(2)
}
