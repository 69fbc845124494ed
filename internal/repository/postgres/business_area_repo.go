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

type businessAreaRepo struct {
	db *sqlx.DB
}

// NewBusinessAreaRepo creates a new PostgreSQL-backed BusinessAreaRepository.
func NewBusinessAreaRepo(db *sqlx.DB) port.BusinessAreaRepository {
	return &businessAreaRepo{db: db}
}

func (r *businessAreaRepo) Create(ctx context.Context, area *domain.BusinessArea) error {
	now := time.Now().UTC()
	area.CreatedAt = now
	area.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO business_areas (id, name, leader_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		area.ID, area.Name, area.LeaderID, area.CreatedAt, area.UpdatedAt)
	if err != nil {
		return fmt.Errorf("businessAreaRepo.Create: %w", err)
	}
	return nil
}

func (r *businessAreaRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessArea, error) {
	var area domain.BusinessArea
	err := r.db.GetContext(ctx, &area, "SELECT * FROM business_areas WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBusinessAreaNotFound
		}
		return nil, fmt.Errorf("businessAreaRepo.GetByID: %w", err)
	}
	return &area, nil
}

func (r *businessAreaRepo) GetByName(ctx context.Context, name string) (*domain.BusinessArea, error) {
	var area domain.BusinessArea
	err := r.db.GetContext(ctx, &area, "SELECT * FROM business_areas WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBusinessAreaNotFound
		}
		return nil, fmt.Errorf("businessAreaRepo.GetByName: %w", err)
	}
	return &area, nil
}

func (r *businessAreaRepo) List(ctx context.Context) ([]domain.BusinessArea, error) {
	var areas []domain.BusinessArea
	err := r.db.SelectContext(ctx, &areas, "SELECT * FROM business_areas ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("businessAreaRepo.List: %w", err)
	}
	return areas, nil
}
