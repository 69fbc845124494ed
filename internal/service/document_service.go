package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
	"docflow/internal/workflow"
)

// SpawnDocumentInput is the DTO for creating an empty document on a project.
type SpawnDocumentInput struct {
	ProjectID uuid.UUID
	Kind      domain.DocumentKind
	Year      int
	ActorID   uuid.UUID
}

// DocumentService manages document creation and deletion around the workflow.
type DocumentService interface {
	Spawn(ctx context.Context, input SpawnDocumentInput) (*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Document, error)
	Delete(ctx context.Context, documentID, actorID uuid.UUID) error
}

type documentService struct {
	docRepo     port.DocumentRepository
	projectRepo port.ProjectRepository
	userRepo    port.UserRepository
	lifecycle   LifecycleService
	policy      workflow.Policy
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	projectRepo port.ProjectRepository,
	userRepo port.UserRepository,
	lifecycle LifecycleService,
	policy workflow.Policy,
) DocumentService {
	return &documentService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		lifecycle:   lifecycle,
		policy:      policy,
	}
}

// Spawn creates an empty document of the given kind. Singleton kinds allow
// one per project; report kinds allow one per reporting year. Violations
// surface as ErrDocumentAlreadyExists from the unique index.
func (s *documentService) Spawn(ctx context.Context, input SpawnDocumentInput) (*domain.Document, error) {
	if !domain.ValidDocumentKinds[input.Kind] {
		return nil, fmt.Errorf("document.Spawn: kind %q: %w", input.Kind, domain.ErrInvalidRequest)
	}
	if domain.SingletonKinds[input.Kind] {
		input.Year = 0
	} else if input.Year <= 0 {
		return nil, fmt.Errorf("document.Spawn: %s requires a reporting year: %w", input.Kind, domain.ErrInvalidRequest)
	}

	project, err := s.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	actor, members, err := s.loadActorAndMembers(ctx, project.ID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperuser && !isMember(members, actor.ID) {
		return nil, fmt.Errorf("document.Spawn: actor %s is not on project %s: %w", actor.ID, project.ID, domain.ErrUnauthorized)
	}

	doc := &domain.Document{
		ID:         uuid.New(),
		ProjectID:  project.ID,
		Kind:       input.Kind,
		Status:     domain.DocumentStatusNew,
		Year:       input.Year,
		CreatorID:  actor.ID,
		ModifierID: actor.ID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	log.Printf("document.Spawn: %s %s on project %s by %s", doc.Kind, doc.ID, doc.ProjectID, actor.ID)
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

func (s *documentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Document, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByProject(ctx, projectID)
}

// Delete removes a document that has collected no stage-1 or stage-2
// approval. The lifecycle coordinator runs synchronously with the delete so
// the project phase cannot outlive its anchoring document.
func (s *documentService) Delete(ctx context.Context, documentID, actorID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	project, err := s.projectRepo.GetByID(ctx, doc.ProjectID)
	if err != nil {
		return err
	}
	actor, members, err := s.loadActorAndMembers(ctx, project.ID, actorID)
	if err != nil {
		return err
	}

	actx := workflow.AuthContext{Actor: actor, Project: project, Members: members}
	if !s.policy.Authorize(actx, domain.StageProjectLead) {
		return fmt.Errorf("document.Delete: actor %s document %s: %w", actorID, documentID, domain.ErrUnauthorized)
	}
	if !workflow.CanDelete(doc) {
		return fmt.Errorf("document.Delete: document %s has approvals: %w", documentID, domain.ErrDeletionBlocked)
	}

	if err := s.docRepo.Delete(ctx, documentID); err != nil {
		return err
	}
	log.Printf("document.Delete: %s %s on project %s by %s", doc.Kind, doc.ID, doc.ProjectID, actorID)

	if err := s.lifecycle.OnDelete(ctx, doc); err != nil {
		log.Printf("document.Delete: side effect failed for document %s: %v", doc.ID, err)
	}
	return nil
}

func (s *documentService) loadActorAndMembers(ctx context.Context, projectID, actorID uuid.UUID) (*domain.User, []domain.ProjectMember, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return actor, members, nil
}

func isMember(members []domain.ProjectMember, userID uuid.UUID) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
