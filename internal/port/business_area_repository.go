package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// BusinessAreaRepository persists business areas.
type BusinessAreaRepository interface {
	Create(ctx context.Context, area *domain.BusinessArea) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessArea, error)
	GetByName(ctx context.Context, name string) (*domain.BusinessArea, error)
	List(ctx context.Context) ([]domain.BusinessArea, error)
}
