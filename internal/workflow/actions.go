package workflow

import "docflow/internal/domain"

// PermittedAction is one (stage, action) pair the actor may legally submit
// against a document right now.
type PermittedAction struct {
	Stage  domain.ApprovalStage `json:"stage"`
	Action domain.WorkflowAction `json:"action"`
}

// ActionSet is the full set of moves available to one actor on one document.
// The client renders it verbatim instead of re-deriving permissions from the
// approval flags.
type ActionSet struct {
	Actions   []PermittedAction `json:"actions"`
	CanDelete bool              `json:"can_delete"`
}

// nextActionCandidates is the fixed probe order: every stage crossed with
// every action. Apply and Authorize reject what does not fit.
var nextActionCandidates = []PermittedAction{
	{domain.StageProjectLead, domain.ActionApprove},
	{domain.StageProjectLead, domain.ActionRecall},
	{domain.StageBusinessAreaLead, domain.ActionApprove},
	{domain.StageBusinessAreaLead, domain.ActionRecall},
	{domain.StageBusinessAreaLead, domain.ActionSendBack},
	{domain.StageDirectorate, domain.ActionApprove},
	{domain.StageDirectorate, domain.ActionRecall},
	{domain.StageDirectorate, domain.ActionSendBack},
	{domain.StageDirectorate, domain.ActionReopen},
}

// NextActions computes the permitted action set by dry-running every
// candidate (stage, action) through the policy and the transition table.
// It is pure; the result is only as fresh as the document snapshot passed in.
func (p Policy) NextActions(c AuthContext, doc *domain.Document) ActionSet {
	set := ActionSet{Actions: []PermittedAction{}}
	if doc == nil || c.Project == nil {
		return set
	}
	for _, cand := range nextActionCandidates {
		if !p.Authorize(c, cand.Stage) {
			continue
		}
		if _, err := Apply(doc, c.Project.Status, cand.Stage, cand.Action); err != nil {
			continue
		}
		set.Actions = append(set.Actions, cand)
	}
	// Deletion follows the guard rule plus stage-1 authority: only someone
	// who could start the approval may discard the draft.
	set.CanDelete = CanDelete(doc) && p.Authorize(c, domain.StageProjectLead)
	return set
}
