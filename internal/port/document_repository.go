package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// DocumentRepository persists documents. CompareAndSetApproval is the single
// write path for approval flags: it only commits when the stored tuple still
// equals the one the caller read, and returns ErrStateConflict otherwise.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Document, error)
	GetByProjectAndKind(ctx context.Context, projectID uuid.UUID, kind domain.DocumentKind, year int) (*domain.Document, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int, error)
	CompareAndSetApproval(ctx context.Context, id uuid.UUID, from, to domain.ApprovalState, status domain.DocumentStatus, modifierID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
