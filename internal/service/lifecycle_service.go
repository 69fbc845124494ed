package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
	"docflow/internal/workflow"
)

// LifecycleService applies project-level side effects of committed document
// transitions: spawning follow-on documents, moving the project between
// lifecycle states, and repairing the two when they diverge. Every effect is
// idempotent so the same event can be replayed safely.
type LifecycleService interface {
	OnTransition(ctx context.Context, doc *domain.Document, tr workflow.Transition) error
	OnDelete(ctx context.Context, doc *domain.Document) error
	Reconcile(ctx context.Context, projectID uuid.UUID) error
}

type lifecycleService struct {
	docRepo     port.DocumentRepository
	projectRepo port.ProjectRepository
	actionRepo  port.DocumentActionRepository
}

// NewLifecycleService creates a new LifecycleService implementation.
func NewLifecycleService(
	docRepo port.DocumentRepository,
	projectRepo port.ProjectRepository,
	actionRepo port.DocumentActionRepository,
) LifecycleService {
	return &lifecycleService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		actionRepo:  actionRepo,
	}
}

// OnTransition reacts to a committed transition. The document's approval
// flags are already durable; nothing here may roll them back.
func (s *lifecycleService) OnTransition(ctx context.Context, doc *domain.Document, tr workflow.Transition) error {
	if tr.ReopensProject {
		// Open-question decision: the closure record does not retain the
		// pre-closure status, so reopening always lands on updating.
		return s.setStatus(ctx, doc.ProjectID, domain.ProjectStatusUpdating)
	}

	if tr.Action != domain.ActionApprove || !tr.To.FullyApproved() {
		return nil
	}

	switch doc.Kind {
	case domain.KindConceptPlan:
		if err := s.ensureProjectPlan(ctx, doc); err != nil {
			return err
		}
		return s.setStatus(ctx, doc.ProjectID, domain.ProjectStatusPending)
	case domain.KindProjectClosure:
		return s.setStatus(ctx, doc.ProjectID, domain.ProjectStatusClosed)
	}
	return nil
}

// phaseAnchoredBy maps a document kind to the project statuses that depend on
// a document of that kind existing. Deleting the last such document leaves
// the project without the paperwork its phase rests on.
var phaseAnchoredBy = map[domain.DocumentKind]map[domain.ProjectStatus]bool{
	domain.KindConceptPlan: {domain.ProjectStatusPending: true},
	domain.KindProjectPlan: {domain.ProjectStatusPending: true, domain.ProjectStatusActive: true},
	domain.KindProjectClosure: {
		domain.ProjectStatusClosed:     true,
		domain.ProjectStatusTerminated: true,
		domain.ProjectStatusSuspended:  true,
	},
}

// OnDelete reacts to a committed deletion. Called synchronously with the
// delete so the project phase never outlives its anchoring document.
func (s *lifecycleService) OnDelete(ctx context.Context, doc *domain.Document) error {
	dependent := phaseAnchoredBy[doc.Kind]
	if dependent == nil {
		return nil
	}

	project, err := s.projectRepo.GetByID(ctx, doc.ProjectID)
	if err != nil {
		return fmt.Errorf("lifecycle.OnDelete: %w", err)
	}
	if !dependent[project.Status] {
		return nil
	}

	_, err = s.docRepo.GetByProjectAndKind(ctx, doc.ProjectID, doc.Kind, doc.Year)
	if err == nil {
		// Another document of the kind survives; the phase still holds.
		return nil
	}
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		return fmt.Errorf("lifecycle.OnDelete: %w", err)
	}
	return s.setStatus(ctx, doc.ProjectID, domain.ProjectStatusUpdating)
}

// Reconcile replays the coordinator's rules from current state. It repairs a
// project whose side effects were lost between a transition's commit and the
// coordinator's write (crash, partial failure).
func (s *lifecycleService) Reconcile(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("lifecycle.Reconcile: %w", err)
	}
	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("lifecycle.Reconcile: %w", err)
	}

	var concept, closure *domain.Document
	for i := range docs {
		switch docs[i].Kind {
		case domain.KindConceptPlan:
			concept = &docs[i]
		case domain.KindProjectClosure:
			closure = &docs[i]
		}
	}

	if concept != nil && concept.Approvals().FullyApproved() {
		if err := s.ensureProjectPlan(ctx, concept); err != nil {
			return err
		}
		if project.Status == domain.ProjectStatusNew {
			if err := s.setStatus(ctx, projectID, domain.ProjectStatusPending); err != nil {
				return err
			}
		}
	}

	if closure != nil && closure.Approvals().FullyApproved() {
		reopened, err := s.lastActionWasReopen(ctx, closure.ID)
		if err != nil {
			return err
		}
		if reopened {
			if domain.ClosedProjectStatuses[project.Status] {
				return s.setStatus(ctx, projectID, domain.ProjectStatusUpdating)
			}
		} else if !domain.ClosedProjectStatuses[project.Status] {
			return s.setStatus(ctx, projectID, domain.ProjectStatusClosed)
		}
	}
	return nil
}

// ensureProjectPlan spawns the follow-on project plan exactly once. A
// concurrent spawn loses to the uniqueness constraint, which is fine.
func (s *lifecycleService) ensureProjectPlan(ctx context.Context, concept *domain.Document) error {
	_, err := s.docRepo.GetByProjectAndKind(ctx, concept.ProjectID, domain.KindProjectPlan, 0)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		return fmt.Errorf("lifecycle.ensureProjectPlan: %w", err)
	}

	plan := &domain.Document{
		ID:         uuid.New(),
		ProjectID:  concept.ProjectID,
		Kind:       domain.KindProjectPlan,
		Status:     domain.DocumentStatusNew,
		CreatorID:  concept.ModifierID,
		ModifierID: concept.ModifierID,
	}
	if err := s.docRepo.Create(ctx, plan); err != nil {
		if errors.Is(err, domain.ErrDocumentAlreadyExists) {
			return nil
		}
		return fmt.Errorf("lifecycle.ensureProjectPlan: %w", err)
	}
	log.Printf("lifecycle.ensureProjectPlan: spawned project plan %s for project %s", plan.ID, plan.ProjectID)
	return nil
}

func (s *lifecycleService) lastActionWasReopen(ctx context.Context, documentID uuid.UUID) (bool, error) {
	actions, err := s.actionRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return false, fmt.Errorf("lifecycle.lastActionWasReopen: %w", err)
	}
	if len(actions) == 0 {
		return false, nil
	}
	// ListByDocument returns newest first.
	return actions[0].Action == domain.ActionReopen, nil
}

func (s *lifecycleService) setStatus(ctx context.Context, projectID uuid.UUID, status domain.ProjectStatus) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("lifecycle.setStatus: %w", err)
	}
	if project.Status == status {
		return nil
	}
	if err := s.projectRepo.UpdateStatus(ctx, projectID, status); err != nil {
		return fmt.Errorf("lifecycle.setStatus: %w", err)
	}
	log.Printf("lifecycle.setStatus: project %s %s -> %s", projectID, project.Status, status)
	return nil
}
