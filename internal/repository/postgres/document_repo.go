package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, project_id, kind, status,
		project_lead_approved, business_area_lead_approved, directorate_approved,
		year, creator_id, modifier_id, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7,
		$8, $9, $10, $11, $12
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.ProjectID, doc.Kind, doc.Status,
		doc.ProjectLeadApproved, doc.BusinessAreaLeadApproved, doc.DirectorateApproved,
		doc.Year, doc.CreatorID, doc.ModifierID, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDocumentAlreadyExists
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE project_id = $1
		 ORDER BY kind, year, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByProject: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) GetByProjectAndKind(ctx context.Context, projectID uuid.UUID, kind domain.DocumentKind, year int) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		`SELECT * FROM documents WHERE project_id = $1 AND kind = $2 AND year = $3`,
		projectID, kind, year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByProjectAndKind: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) CountByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE project_id = $1", projectID)
	if err != nil {
		return 0, fmt.Errorf("documentRepo.CountByProject: %w", err)
	}
	return total, nil
}

// CompareAndSetApproval writes a new approval tuple and status only if the
// stored tuple still equals from. A concurrent writer who got there first
// leaves zero matching rows, which surfaces as ErrStateConflict so the caller
// can re-read and retry.
func (r *documentRepo) CompareAndSetApproval(ctx context.Context, id uuid.UUID, from, to domain.ApprovalState, status domain.DocumentStatus, modifierID uuid.UUID) error {
	query := `UPDATE documents SET
		project_lead_approved = $1,
		business_area_lead_approved = $2,
		directorate_approved = $3,
		status = $4,
		modifier_id = $5,
		updated_at = $6
	WHERE id = $7
	  AND project_lead_approved = $8
	  AND business_area_lead_approved = $9
	  AND directorate_approved = $10`

	res, err := r.db.ExecContext(ctx, query,
		to.ProjectLead, to.BusinessAreaLead, to.Directorate,
		status, modifierID, time.Now().UTC(),
		id, from.ProjectLead, from.BusinessAreaLead, from.Directorate)
	if err != nil {
		return fmt.Errorf("documentRepo.CompareAndSetApproval: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.CompareAndSetApproval rows: %w", err)
	}
	if rows == 0 {
		// Either the document is gone or the tuple moved under us.
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			"SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)", id); err != nil {
			return fmt.Errorf("documentRepo.CompareAndSetApproval exists: %w", err)
		}
		if !exists {
			return domain.ErrDocumentNotFound
		}
		return domain.ErrStateConflict
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
