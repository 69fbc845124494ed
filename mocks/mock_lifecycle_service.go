package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
	"docflow/internal/workflow"
)

// MockLifecycleService is a mock implementation of service.LifecycleService.
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) OnTransition(ctx context.Context, doc *domain.Document, tr workflow.Transition) error {
	args := m.Called(ctx, doc, tr)
	return args.Error(0)
}

func (m *MockLifecycleService) OnDelete(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockLifecycleService) Reconcile(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}
