package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type projectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new PostgreSQL-backed ProjectRepository.
func NewProjectRepo(db *sqlx.DB) port.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p, "SELECT * FROM projects WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects ORDER BY year DESC, number")
	if err != nil {
		return nil, fmt.Errorf("projectRepo.List: %w", err)
	}
	return projects, nil
}

func (r *projectRepo) ListMembers(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMember, error) {
	var members []domain.ProjectMember
	err := r.db.SelectContext(ctx, &members,
		`SELECT * FROM project_members WHERE project_id = $1
		 ORDER BY is_leader DESC, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.ListMembers: %w", err)
	}
	return members, nil
}

func (r *projectRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE projects SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("projectRepo.UpdateStatus: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("projectRepo.UpdateStatus rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
