package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gstcore/internal/domain"
	"gstcore/internal/service"
)

// MockNumberingService is a mock implementation of service.NumberingService.
type MockNumberingService struct {
	mock.Mock
}

func (m *MockNumberingService) Preview(ctx context.Context, issuedOn time.Time) (*domain.NumberPreview, error) {
	args := m.Called(ctx, issuedOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NumberPreview), args.Error(1)
}

func (m *MockNumberingService) Issue(ctx context.Context, issuedOn time.Time) (*domain.IssuedNumber, error) {
	args := m.Called(ctx, issuedOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedNumber), args.Error(1)
}

func (m *MockNumberingService) IssueManual(ctx context.Context, input service.IssueManualInput) (*domain.IssuedNumber, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedNumber), args.Error(1)
}

func (m *MockNumberingService) Check(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockNumberingService) Get(ctx context.Context, number string) (*domain.IssuedNumber, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedNumber), args.Error(1)
}

func (m *MockNumberingService) List(ctx context.Context, offset, limit int) ([]domain.IssuedNumber, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IssuedNumber), args.Int(1), args.Error(2)
}
