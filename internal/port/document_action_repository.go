package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// DocumentActionRepository persists the audit log of committed workflow
// transitions. The log doubles as the replay source for reconciliation.
type DocumentActionRepository interface {
	Create(ctx context.Context, action *domain.DocumentAction) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentAction, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.DocumentAction, error)
}
