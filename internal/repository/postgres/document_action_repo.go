package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type documentActionRepo struct {
	db *sqlx.DB
}

// NewDocumentActionRepo creates a new PostgreSQL-backed DocumentActionRepository.
func NewDocumentActionRepo(db *sqlx.DB) port.DocumentActionRepository {
	return &documentActionRepo{db: db}
}

func (r *documentActionRepo) Create(ctx context.Context, action *domain.DocumentAction) error {
	action.CreatedAt = time.Now().UTC()

	query := `INSERT INTO document_actions (
		id, document_id, project_id, kind, stage, action, actor_id, to_status, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		action.ID, action.DocumentID, action.ProjectID, action.Kind,
		action.Stage, action.Action, action.ActorID, action.ToStatus, action.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentActionRepo.Create: %w", err)
	}
	return nil
}

func (r *documentActionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentAction, error) {
	var actions []domain.DocumentAction
	err := r.db.SelectContext(ctx, &actions,
		`SELECT * FROM document_actions WHERE document_id = $1 ORDER BY created_at DESC`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("documentActionRepo.ListByDocument: %w", err)
	}
	return actions, nil
}

func (r *documentActionRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.DocumentAction, error) {
	var actions []domain.DocumentAction
	err := r.db.SelectContext(ctx, &actions,
		`SELECT * FROM document_actions WHERE project_id = $1 ORDER BY created_at DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("documentActionRepo.ListByProject: %w", err)
	}
	return actions, nil
}
