package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockBusinessAreaRepo is a mock implementation of port.BusinessAreaRepository.
type MockBusinessAreaRepo struct {
	mock.Mock
}

func (m *MockBusinessAreaRepo) Create(ctx context.Context, area *domain.BusinessArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockBusinessAreaRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessArea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessArea), args.Error(1)
}

func (m *MockBusinessAreaRepo) GetByName(ctx context.Context, name string) (*domain.BusinessArea, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessArea), args.Error(1)
}

func (m *MockBusinessAreaRepo) List(ctx context.Context) ([]domain.BusinessArea, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessArea), args.Error(1)
}
