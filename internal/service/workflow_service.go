package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
	"docflow/internal/workflow"
)

// SubmitActionInput is the DTO for submitting a workflow action.
type SubmitActionInput struct {
	DocumentID uuid.UUID
	Stage      domain.ApprovalStage
	Action     domain.WorkflowAction
	ActorID    uuid.UUID
}

// WorkflowService orchestrates document workflow actions: authorization, the
// transition itself, the optimistic commit, and everything that hangs off a
// committed transition.
type WorkflowService interface {
	SubmitAction(ctx context.Context, input SubmitActionInput) (*domain.Document, error)
	NextActions(ctx context.Context, documentID, actorID uuid.UUID) (workflow.ActionSet, error)
	History(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentAction, error)
}

type workflowService struct {
	docRepo     port.DocumentRepository
	projectRepo port.ProjectRepository
	userRepo    port.UserRepository
	areaRepo    port.BusinessAreaRepository
	actionRepo  port.DocumentActionRepository
	lifecycle   LifecycleService
	notifier    port.Notifier
	policy      workflow.Policy
}

// NewWorkflowService creates a new WorkflowService implementation.
func NewWorkflowService(
	docRepo port.DocumentRepository,
	projectRepo port.ProjectRepository,
	userRepo port.UserRepository,
	areaRepo port.BusinessAreaRepository,
	actionRepo port.DocumentActionRepository,
	lifecycle LifecycleService,
	notifier port.Notifier,
	policy workflow.Policy,
) WorkflowService {
	return &workflowService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		areaRepo:    areaRepo,
		actionRepo:  actionRepo,
		lifecycle:   lifecycle,
		notifier:    notifier,
		policy:      policy,
	}
}

// SubmitAction runs one action through the full pipeline:
// validate -> load -> authorize -> transition -> compare-and-set commit ->
// audit -> lifecycle side effects -> async notification.
//
// The commit is the linearization point. Everything after it is best-effort
// and repairable through Reconcile; nothing after it can undo the commit.
func (s *workflowService) SubmitAction(ctx context.Context, input SubmitActionInput) (*domain.Document, error) {
	if !input.Stage.Valid() {
		return nil, fmt.Errorf("workflow.SubmitAction: stage %d: %w", input.Stage, domain.ErrInvalidRequest)
	}
	if !domain.ValidWorkflowActions[input.Action] {
		return nil, fmt.Errorf("workflow.SubmitAction: action %q: %w", input.Action, domain.ErrInvalidRequest)
	}

	doc, err := s.docRepo.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	actx, err := s.loadAuthContext(ctx, doc.ProjectID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if !s.policy.Authorize(actx, input.Stage) {
		return nil, fmt.Errorf("workflow.SubmitAction: actor %s stage %d: %w", input.ActorID, input.Stage, domain.ErrUnauthorized)
	}

	tr, err := workflow.Apply(doc, actx.Project.Status, input.Stage, input.Action)
	if err != nil {
		return nil, err
	}

	if tr.Changed() {
		err = s.docRepo.CompareAndSetApproval(ctx, doc.ID, tr.From, tr.To, tr.Status, input.ActorID)
		if err != nil {
			return nil, err
		}
		doc.SetApprovals(tr.To)
		doc.Status = tr.Status
		doc.ModifierID = input.ActorID
		doc.UpdatedAt = time.Now().UTC()
	}

	// Audit is best-effort: a missing log entry never blocks the workflow.
	audit := &domain.DocumentAction{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		ProjectID:  doc.ProjectID,
		Kind:       doc.Kind,
		Stage:      input.Stage,
		Action:     input.Action,
		ActorID:    input.ActorID,
		ToStatus:   doc.Status,
	}
	if err := s.actionRepo.Create(ctx, audit); err != nil {
		log.Printf("workflow.SubmitAction: audit write failed for document %s: %v", doc.ID, err)
	}

	if err := s.lifecycle.OnTransition(ctx, doc, tr); err != nil {
		// The approval committed; the project state is now stale until an
		// operator reconciles. Logged distinctly so it is not mistaken for
		// a request error.
		log.Printf("workflow.SubmitAction: side effect failed for document %s after %s(stage %d): %v",
			doc.ID, input.Action, input.Stage, err)
	}

	s.dispatchAsync(actx, doc, tr)

	log.Printf("workflow.SubmitAction: document %s %s(stage %d) by %s -> %s",
		doc.ID, input.Action, input.Stage, input.ActorID, doc.Status)
	return doc, nil
}

// NextActions computes the permitted action set for one actor on one document.
func (s *workflowService) NextActions(ctx context.Context, documentID, actorID uuid.UUID) (workflow.ActionSet, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return workflow.ActionSet{}, err
	}
	actx, err := s.loadAuthContext(ctx, doc.ProjectID, actorID)
	if err != nil {
		return workflow.ActionSet{}, err
	}
	return s.policy.NextActions(actx, doc), nil
}

// History returns the audit trail of a document, newest first.
func (s *workflowService) History(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentAction, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.actionRepo.ListByDocument(ctx, documentID)
}

func (s *workflowService) loadAuthContext(ctx context.Context, projectID, actorID uuid.UUID) (workflow.AuthContext, error) {
	var actx workflow.AuthContext

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return actx, err
	}
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return actx, err
	}
	projectArea, err := s.areaRepo.GetByID(ctx, project.BusinessAreaID)
	if err != nil && !errors.Is(err, domain.ErrBusinessAreaNotFound) {
		return actx, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return actx, err
	}
	var actorArea *domain.BusinessArea
	if actor.BusinessAreaID != nil {
		actorArea, err = s.areaRepo.GetByID(ctx, *actor.BusinessAreaID)
		if err != nil && !errors.Is(err, domain.ErrBusinessAreaNotFound) {
			return actx, err
		}
	}

	actx = workflow.AuthContext{
		Actor:       actor,
		ActorArea:   actorArea,
		Project:     project,
		Members:     members,
		ProjectArea: projectArea,
	}
	return actx, nil
}

// dispatchAsync fires the notification for a committed transition without
// holding up the response. Failures are logged and dropped.
func (s *workflowService) dispatchAsync(actx workflow.AuthContext, doc *domain.Document, tr workflow.Transition) {
	event, ok := s.eventFor(actx, doc, tr)
	if !ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.Dispatch(ctx, event); err != nil {
			log.Printf("workflow.dispatchAsync: notification failed for document %s: %v", doc.ID, err)
		}
	}()
}

// eventFor maps a committed transition to a notification and its recipient:
// the next stage's authority on approve, the project leader otherwise.
func (s *workflowService) eventFor(actx workflow.AuthContext, doc *domain.Document, tr workflow.Transition) (domain.NotificationEvent, bool) {
	event := domain.NotificationEvent{
		DocumentID:   doc.ID,
		DocumentKind: doc.Kind,
		ProjectID:    doc.ProjectID,
		ProjectTitle: actx.Project.Title,
		Stage:        tr.Stage,
		ActorID:      actx.Actor.ID,
	}

	leader := domain.LeaderOf(actx.Members)

	switch tr.Action {
	case domain.ActionApprove:
		if tr.To.FullyApproved() {
			event.Kind = domain.NotifyApproved
			if leader == nil {
				return event, false
			}
			event.RecipientID = leader.UserID
			return event, true
		}
		event.Kind = domain.NotifyApprovalRequested
		switch tr.Stage {
		case domain.StageProjectLead:
			if actx.ProjectArea == nil || actx.ProjectArea.LeaderID == nil {
				return event, false
			}
			event.RecipientID = *actx.ProjectArea.LeaderID
			return event, true
		case domain.StageBusinessAreaLead:
			// Directorate recipients are resolved by the notifier from
			// the configured area name.
			return event, true
		}
		return event, false

	case domain.ActionRecall:
		event.Kind = domain.NotifyRecalled
	case domain.ActionSendBack:
		event.Kind = domain.NotifySentBack
	case domain.ActionReopen:
		event.Kind = domain.NotifyProjectReopened
	default:
		return event, false
	}

	if leader == nil {
		return event, false
	}
	event.RecipientID = leader.UserID
	return event, true
}
