package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockDocumentActionRepo is a mock implementation of port.DocumentActionRepository.
type MockDocumentActionRepo struct {
	mock.Mock
}

func (m *MockDocumentActionRepo) Create(ctx context.Context, action *domain.DocumentAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockDocumentActionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentAction, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentAction), args.Error(1)
}

func (m *MockDocumentActionRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.DocumentAction, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentAction), args.Error(1)
}
