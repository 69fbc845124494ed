package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// ProjectRepository persists projects and their team membership.
type ProjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMember, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error
}
