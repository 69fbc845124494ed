package domain

// DocumentKind identifies the kind of a project document.
type DocumentKind string

const (
	KindConceptPlan    DocumentKind = "concept_plan"
	KindProjectPlan    DocumentKind = "project_plan"
	KindProgressReport DocumentKind = "progress_report"
	KindStudentReport  DocumentKind = "student_report"
	KindProjectClosure DocumentKind = "project_closure"
)

// ValidDocumentKinds is the set of accepted document kinds.
var ValidDocumentKinds = map[DocumentKind]bool{
	KindConceptPlan:    true,
	KindProjectPlan:    true,
	KindProgressReport: true,
	KindStudentReport:  true,
	KindProjectClosure: true,
}

// SingletonKinds are document kinds limited to one per project.
// Report kinds instead allow one per reporting year.
var SingletonKinds = map[DocumentKind]bool{
	KindConceptPlan:    true,
	KindProjectPlan:    true,
	KindProjectClosure: true,
}

// DisplayName returns the human-readable name of a document kind.
func (k DocumentKind) DisplayName() string {
	switch k {
	case KindConceptPlan:
		return "Concept Plan"
	case KindProjectPlan:
		return "Project Plan"
	case KindProgressReport:
		return "Progress Report"
	case KindStudentReport:
		return "Student Report"
	case KindProjectClosure:
		return "Project Closure"
	}
	return "Document"
}

// DocumentStatus is the derived workflow status of a document. It is computed
// from the approval flag tuple and never set directly by clients.
type DocumentStatus string

const (
	DocumentStatusNew        DocumentStatus = "new"
	DocumentStatusRevising   DocumentStatus = "revising"
	DocumentStatusInReview   DocumentStatus = "inreview"
	DocumentStatusInApproval DocumentStatus = "inapproval"
	DocumentStatusApproved   DocumentStatus = "approved"
)

// ProjectStatus is the lifecycle status of a project.
type ProjectStatus string

const (
	ProjectStatusNew        ProjectStatus = "new"
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusActive     ProjectStatus = "active"
	ProjectStatusUpdating   ProjectStatus = "updating"
	ProjectStatusClosed     ProjectStatus = "closed"
	ProjectStatusTerminated ProjectStatus = "terminated"
	ProjectStatusSuspended  ProjectStatus = "suspended"
)

// ClosedProjectStatuses are project states a closure reopen may act on.
var ClosedProjectStatuses = map[ProjectStatus]bool{
	ProjectStatusClosed:     true,
	ProjectStatusTerminated: true,
	ProjectStatusSuspended:  true,
}

// ProjectKind categorises a project.
type ProjectKind string

const (
	ProjectKindCoreFunction ProjectKind = "core_function"
	ProjectKindScience      ProjectKind = "science"
	ProjectKindStudent      ProjectKind = "student"
	ProjectKindExternal     ProjectKind = "external"
)

// ApprovalStage is one of the three ordered sign-off checkpoints.
type ApprovalStage int

const (
	StageProjectLead      ApprovalStage = 1
	StageBusinessAreaLead ApprovalStage = 2
	StageDirectorate      ApprovalStage = 3
)

// Valid reports whether the stage is one of the three defined checkpoints.
func (s ApprovalStage) Valid() bool {
	return s >= StageProjectLead && s <= StageDirectorate
}

// Capacity returns the name of the role that acts at this stage.
func (s ApprovalStage) Capacity() string {
	switch s {
	case StageProjectLead:
		return "Project Lead"
	case StageBusinessAreaLead:
		return "Business Area Lead"
	case StageDirectorate:
		return "Directorate"
	}
	return "Unknown"
}

// WorkflowAction is an action requested against a document's approval state.
type WorkflowAction string

const (
	ActionApprove  WorkflowAction = "approve"
	ActionRecall   WorkflowAction = "recall"
	ActionSendBack WorkflowAction = "send_back"
	ActionReopen   WorkflowAction = "reopen"
)

// ValidWorkflowActions is the set of accepted workflow actions.
var ValidWorkflowActions = map[WorkflowAction]bool{
	ActionApprove:  true,
	ActionRecall:   true,
	ActionSendBack: true,
	ActionReopen:   true,
}

// NotificationKind identifies an outbound workflow notification.
type NotificationKind string

const (
	NotifyApprovalRequested NotificationKind = "approval_requested"
	NotifyApproved          NotificationKind = "approved"
	NotifyRecalled          NotificationKind = "recalled"
	NotifySentBack          NotificationKind = "sent_back"
	NotifyProjectReopened   NotificationKind = "project_reopened"
)
