package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// ProjectDetail is a project with its team and documents.
type ProjectDetail struct {
	Project   domain.Project         `json:"project"`
	Members   []domain.ProjectMember `json:"members"`
	Documents []domain.Document      `json:"documents"`
}

// validProjectStatuses gates the direct status interface.
var validProjectStatuses = map[domain.ProjectStatus]bool{
	domain.ProjectStatusNew:        true,
	domain.ProjectStatusPending:    true,
	domain.ProjectStatusActive:     true,
	domain.ProjectStatusUpdating:   true,
	domain.ProjectStatusClosed:     true,
	domain.ProjectStatusTerminated: true,
	domain.ProjectStatusSuspended:  true,
}

// ProjectService reads projects and exposes the administrative status and
// reconciliation interfaces. Workflow-driven status changes go through the
// lifecycle coordinator, never through SetStatus.
type ProjectService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProjectDetail, error)
	List(ctx context.Context) ([]domain.Project, error)
	SetStatus(ctx context.Context, projectID uuid.UUID, status domain.ProjectStatus, actorID uuid.UUID) error
	Reconcile(ctx context.Context, projectID, actorID uuid.UUID) error
}

type projectService struct {
	projectRepo port.ProjectRepository
	docRepo     port.DocumentRepository
	userRepo    port.UserRepository
	lifecycle   LifecycleService
}

// NewProjectService creates a new ProjectService implementation.
func NewProjectService(
	projectRepo port.ProjectRepository,
	docRepo port.DocumentRepository,
	userRepo port.UserRepository,
	lifecycle LifecycleService,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		userRepo:    userRepo,
		lifecycle:   lifecycle,
	}
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*ProjectDetail, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.projectRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{Project: *project, Members: members, Documents: docs}, nil
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.List(ctx)
}

// SetStatus writes a project status directly. Superuser only; the workflow
// path never calls this.
func (s *projectService) SetStatus(ctx context.Context, projectID uuid.UUID, status domain.ProjectStatus, actorID uuid.UUID) error {
	if !validProjectStatuses[status] {
		return fmt.Errorf("project.SetStatus: status %q: %w", status, domain.ErrInvalidRequest)
	}
	if err := s.requireSuperuser(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return err
	}
	if err := s.projectRepo.UpdateStatus(ctx, projectID, status); err != nil {
		return err
	}
	log.Printf("project.SetStatus: project %s -> %s by %s", projectID, status, actorID)
	return nil
}

// Reconcile replays lifecycle side effects for a project whose document and
// project state have diverged.
func (s *projectService) Reconcile(ctx context.Context, projectID, actorID uuid.UUID) error {
	if err := s.requireSuperuser(ctx, actorID); err != nil {
		return err
	}
	if err := s.lifecycle.Reconcile(ctx, projectID); err != nil {
		return fmt.Errorf("project.Reconcile: %w", err)
	}
	log.Printf("project.Reconcile: project %s reconciled by %s", projectID, actorID)
	return nil
}

func (s *projectService) requireSuperuser(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsSuperuser {
		return fmt.Errorf("project: actor %s: %w", actorID, domain.ErrUnauthorized)
	}
	return nil
}
