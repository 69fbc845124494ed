package workflow

import (
	"fmt"

	"docflow/internal/domain"
)

// Transition is the computed outcome of applying an action to a document's
// approval state. Nothing is persisted here; the caller commits To against
// From with a compare-and-set and reacts to ReopensProject afterwards.
type Transition struct {
	Stage          domain.ApprovalStage
	Action         domain.WorkflowAction
	From           domain.ApprovalState
	To             domain.ApprovalState
	Status         domain.DocumentStatus
	ReopensProject bool
}

// Changed reports whether the transition mutates the approval tuple.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// StatusFor derives a document status from an approval tuple. send_back is
// the one transition that overrides this with revising; inreview is a legacy
// stored value that no transition produces.
func StatusFor(s domain.ApprovalState) domain.DocumentStatus {
	switch {
	case s.FullyApproved():
		return domain.DocumentStatusApproved
	case s.ProjectLead || s.BusinessAreaLead || s.Directorate:
		return domain.DocumentStatusInApproval
	}
	return domain.DocumentStatusNew
}

// Apply computes the transition for one (stage, action) request against the
// document's current approval tuple. It is pure: no I/O, no clock, no
// randomness. Authorization is the caller's concern and happens first.
//
// Errors: ErrInvalidRequest for combinations that do not exist in the table,
// ErrPreconditionFailed when the flags or project status do not permit the
// action.
func Apply(doc *domain.Document, projectStatus domain.ProjectStatus, stage domain.ApprovalStage, action domain.WorkflowAction) (Transition, error) {
	if !stage.Valid() {
		return Transition{}, fmt.Errorf("workflow.Apply: stage %d: %w", stage, domain.ErrInvalidRequest)
	}
	if !domain.ValidWorkflowActions[action] {
		return Transition{}, fmt.Errorf("workflow.Apply: action %q: %w", action, domain.ErrInvalidRequest)
	}

	from := doc.Approvals()
	tr := Transition{Stage: stage, Action: action, From: from, To: from}

	switch action {
	case domain.ActionApprove:
		if stage > domain.StageProjectLead && !from.Stage(stage-1) {
			return Transition{}, fmt.Errorf("workflow.Apply: approve stage %d before stage %d: %w", stage, stage-1, domain.ErrPreconditionFailed)
		}
		if from.Stage(stage) {
			return Transition{}, fmt.Errorf("workflow.Apply: stage %d already approved: %w", stage, domain.ErrPreconditionFailed)
		}
		tr.To = from.WithStage(stage, true)
		tr.Status = StatusFor(tr.To)
		return tr, nil

	case domain.ActionRecall:
		if !from.Stage(stage) {
			return Transition{}, fmt.Errorf("workflow.Apply: recall stage %d not approved: %w", stage, domain.ErrPreconditionFailed)
		}
		if stage < domain.StageDirectorate && from.Stage(stage+1) {
			return Transition{}, fmt.Errorf("workflow.Apply: recall stage %d with stage %d granted: %w", stage, stage+1, domain.ErrPreconditionFailed)
		}
		tr.To = from.WithStage(stage, false)
		tr.Status = StatusFor(tr.To)
		return tr, nil

	case domain.ActionSendBack:
		// A send-back rejects the document at the frontier stage by
		// clearing the predecessor's approval, so stage 1 has nothing
		// to send back to.
		if stage == domain.StageProjectLead {
			return Transition{}, fmt.Errorf("workflow.Apply: send_back at stage 1: %w", domain.ErrInvalidRequest)
		}
		if !from.Stage(stage - 1) {
			return Transition{}, fmt.Errorf("workflow.Apply: send_back stage %d without stage %d approval: %w", stage, stage-1, domain.ErrPreconditionFailed)
		}
		if from.Stage(stage) {
			return Transition{}, fmt.Errorf("workflow.Apply: send_back stage %d already approved: %w", stage, domain.ErrPreconditionFailed)
		}
		tr.To = from.WithStage(stage-1, false)
		tr.Status = domain.DocumentStatusRevising
		return tr, nil

	case domain.ActionReopen:
		if stage != domain.StageDirectorate || doc.Kind != domain.KindProjectClosure {
			return Transition{}, fmt.Errorf("workflow.Apply: reopen on %s stage %d: %w", doc.Kind, stage, domain.ErrInvalidRequest)
		}
		if !from.Directorate {
			return Transition{}, fmt.Errorf("workflow.Apply: reopen before final approval: %w", domain.ErrPreconditionFailed)
		}
		if !domain.ClosedProjectStatuses[projectStatus] {
			return Transition{}, fmt.Errorf("workflow.Apply: reopen with project %s: %w", projectStatus, domain.ErrPreconditionFailed)
		}
		// Flags stay put; the coordinator moves the project back to an
		// open status.
		tr.Status = doc.Status
		tr.ReopensProject = true
		return tr, nil
	}

	return Transition{}, fmt.Errorf("workflow.Apply: action %q: %w", action, domain.ErrInvalidRequest)
}

// CanDelete reports whether a document may still be deleted. Once the first
// or second stage has signed off the document is part of the approval record
// and deletion is blocked; stage 3 is unreachable without stage 2.
func CanDelete(doc *domain.Document) bool {
	return !doc.ProjectLeadApproved && !doc.BusinessAreaLeadApproved
}
