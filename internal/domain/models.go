package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user of the system.
type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	IsSuperuser    bool       `db:"is_superuser" json:"is_superuser"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	BusinessAreaID *uuid.UUID `db:"business_area_id" json:"business_area_id"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// BusinessArea represents an organisational unit. The area whose name matches
// the configured directorate name carries stage-3 approval authority.
type BusinessArea struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	LeaderID  *uuid.UUID `db:"leader_id" json:"leader_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Project represents a project that documents are attached to.
type Project struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	Title          string        `db:"title" json:"title"`
	Kind           ProjectKind   `db:"kind" json:"kind"`
	Year           int           `db:"year" json:"year"`
	Number         int           `db:"number" json:"number"`
	Status         ProjectStatus `db:"status" json:"status"`
	BusinessAreaID uuid.UUID     `db:"business_area_id" json:"business_area_id"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// ProjectMember represents a user's membership of a project team.
type ProjectMember struct {
	ProjectID uuid.UUID `db:"project_id" json:"project_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	IsLeader  bool      `db:"is_leader" json:"is_leader"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LeaderOf returns the leader member of a team, or nil if none is set.
func LeaderOf(members []ProjectMember) *ProjectMember {
	for i := range members {
		if members[i].IsLeader {
			return &members[i]
		}
	}
	return nil
}

// ApprovalState is the tuple of the three stage approval flags. It is the
// unit of optimistic concurrency: every committed transition replaces one
// exact tuple with another.
type ApprovalState struct {
	ProjectLead      bool `json:"project_lead"`
	BusinessAreaLead bool `json:"business_area_lead"`
	Directorate      bool `json:"directorate"`
}

// Stage reports whether the given stage's flag is set.
func (s ApprovalState) Stage(stage ApprovalStage) bool {
	switch stage {
	case StageProjectLead:
		return s.ProjectLead
	case StageBusinessAreaLead:
		return s.BusinessAreaLead
	case StageDirectorate:
		return s.Directorate
	}
	return false
}

// WithStage returns a copy of the state with the given stage's flag set to v.
func (s ApprovalState) WithStage(stage ApprovalStage, v bool) ApprovalState {
	switch stage {
	case StageProjectLead:
		s.ProjectLead = v
	case StageBusinessAreaLead:
		s.BusinessAreaLead = v
	case StageDirectorate:
		s.Directorate = v
	}
	return s
}

// FullyApproved reports whether all three stages have signed off.
func (s ApprovalState) FullyApproved() bool {
	return s.ProjectLead && s.BusinessAreaLead && s.Directorate
}

// Frontier returns the lowest-numbered stage that has not yet approved,
// or 0 when the document is fully approved.
func (s ApprovalState) Frontier() ApprovalStage {
	switch {
	case !s.ProjectLead:
		return StageProjectLead
	case !s.BusinessAreaLead:
		return StageBusinessAreaLead
	case !s.Directorate:
		return StageDirectorate
	}
	return 0
}

// Document represents a project document moving through the approval pipeline.
type Document struct {
	ID                       uuid.UUID      `db:"id" json:"id"`
	ProjectID                uuid.UUID      `db:"project_id" json:"project_id"`
	Kind                     DocumentKind   `db:"kind" json:"kind"`
	Status                   DocumentStatus `db:"status" json:"status"`
	ProjectLeadApproved      bool           `db:"project_lead_approved" json:"project_lead_approved"`
	BusinessAreaLeadApproved bool           `db:"business_area_lead_approved" json:"business_area_lead_approved"`
	DirectorateApproved      bool           `db:"directorate_approved" json:"directorate_approved"`
	Year                     int            `db:"year" json:"year"`
	CreatorID                uuid.UUID      `db:"creator_id" json:"creator_id"`
	ModifierID               uuid.UUID      `db:"modifier_id" json:"modifier_id"`
	CreatedAt                time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time      `db:"updated_at" json:"updated_at"`
}

// Approvals returns the document's approval flag tuple.
func (d *Document) Approvals() ApprovalState {
	return ApprovalState{
		ProjectLead:      d.ProjectLeadApproved,
		BusinessAreaLead: d.BusinessAreaLeadApproved,
		Directorate:      d.DirectorateApproved,
	}
}

// SetApprovals writes an approval tuple back onto the document's flags.
func (d *Document) SetApprovals(s ApprovalState) {
	d.ProjectLeadApproved = s.ProjectLead
	d.BusinessAreaLeadApproved = s.BusinessAreaLead
	d.DirectorateApproved = s.Directorate
}

// DocumentAction is the audit record of a committed workflow transition.
// It doubles as the replay log for lifecycle side-effect reconciliation.
type DocumentAction struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	DocumentID uuid.UUID      `db:"document_id" json:"document_id"`
	ProjectID  uuid.UUID      `db:"project_id" json:"project_id"`
	Kind       DocumentKind   `db:"kind" json:"kind"`
	Stage      ApprovalStage  `db:"stage" json:"stage"`
	Action     WorkflowAction `db:"action" json:"action"`
	ActorID    uuid.UUID      `db:"actor_id" json:"actor_id"`
	ToStatus   DocumentStatus `db:"to_status" json:"to_status"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// ActionRequest is the input to the workflow: one actor requesting one
// (stage, action) pair against one document.
type ActionRequest struct {
	DocumentID uuid.UUID      `json:"document_id"`
	Stage      ApprovalStage  `json:"stage"`
	Action     WorkflowAction `json:"action"`
	ActorID    uuid.UUID      `json:"actor_id"`
}

// NotificationEvent describes a workflow transition to be communicated to an
// affected party. Dispatch is fire-and-forget relative to the transition.
type NotificationEvent struct {
	Kind         NotificationKind `json:"kind"`
	DocumentID   uuid.UUID        `json:"document_id"`
	DocumentKind DocumentKind     `json:"document_kind"`
	ProjectID    uuid.UUID        `json:"project_id"`
	ProjectTitle string           `json:"project_title"`
	Stage        ApprovalStage    `json:"stage"`
	ActorID      uuid.UUID        `json:"actor_id"`
	RecipientID  uuid.UUID        `json:"recipient_id"`
}
