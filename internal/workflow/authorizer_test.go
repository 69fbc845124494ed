package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"docflow/internal/domain"
)

func TestPolicy_Authorize(t *testing.T) {
	policy := NewPolicy("")

	leader := &domain.User{ID: uuid.New(), Email: "lead@example.com"}
	member := &domain.User{ID: uuid.New(), Email: "member@example.com"}
	areaLead := &domain.User{ID: uuid.New(), Email: "area@example.com"}
	director := &domain.User{ID: uuid.New(), Email: "dir@example.com"}
	super := &domain.User{ID: uuid.New(), Email: "admin@example.com", IsSuperuser: true}
	outsider := &domain.User{ID: uuid.New(), Email: "other@example.com"}

	projectArea := &domain.BusinessArea{ID: uuid.New(), Name: "Fisheries", LeaderID: &areaLead.ID}
	directorate := &domain.BusinessArea{ID: uuid.New(), Name: "Directorate"}
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive, BusinessAreaID: projectArea.ID}
	members := []domain.ProjectMember{
		{ProjectID: project.ID, UserID: leader.ID, IsLeader: true},
		{ProjectID: project.ID, UserID: member.ID},
	}

	ctx := func(actor *domain.User, actorArea *domain.BusinessArea) AuthContext {
		return AuthContext{
			Actor:       actor,
			ActorArea:   actorArea,
			Project:     project,
			Members:     members,
			ProjectArea: projectArea,
		}
	}

	tests := []struct {
		name  string
		ctx   AuthContext
		stage domain.ApprovalStage
		want  bool
	}{
		{"leader member holds stage 1", ctx(leader, projectArea), domain.StageProjectLead, true},
		{"plain member lacks stage 1", ctx(member, projectArea), domain.StageProjectLead, false},
		{"leader member lacks stage 2", ctx(leader, projectArea), domain.StageBusinessAreaLead, false},
		{"area leader holds stage 2", ctx(areaLead, projectArea), domain.StageBusinessAreaLead, true},
		{"area leader lacks stage 3", ctx(areaLead, projectArea), domain.StageDirectorate, false},
		{"directorate member holds stage 3", ctx(director, directorate), domain.StageDirectorate, true},
		{"directorate member lacks stage 1", ctx(director, directorate), domain.StageProjectLead, false},
		{"directorate member lacks stage 2", ctx(director, directorate), domain.StageBusinessAreaLead, false},
		{"outsider holds nothing", ctx(outsider, nil), domain.StageBusinessAreaLead, false},
		{"superuser bypasses stage 1", ctx(super, nil), domain.StageProjectLead, true},
		{"superuser bypasses stage 2", ctx(super, nil), domain.StageBusinessAreaLead, true},
		{"superuser bypasses stage 3", ctx(super, nil), domain.StageDirectorate, true},
		{"invalid stage", ctx(super, nil), 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Authorize(tt.ctx, tt.stage))
		})
	}
}

func TestPolicy_AuthorizeCustomDirectorateName(t *testing.T) {
	policy := NewPolicy("Executive Board")
	board := &domain.BusinessArea{ID: uuid.New(), Name: "Executive Board"}
	plain := &domain.BusinessArea{ID: uuid.New(), Name: "Directorate"}
	actor := &domain.User{ID: uuid.New()}
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive}

	assert.True(t, policy.Authorize(AuthContext{Actor: actor, ActorArea: board, Project: project}, domain.StageDirectorate))
	assert.False(t, policy.Authorize(AuthContext{Actor: actor, ActorArea: plain, Project: project}, domain.StageDirectorate))
}

func TestPolicy_AuthorizeMissingData(t *testing.T) {
	policy := NewPolicy("")
	actor := &domain.User{ID: uuid.New()}

	assert.False(t, policy.Authorize(AuthContext{}, domain.StageProjectLead), "nil actor")
	assert.False(t, policy.Authorize(AuthContext{Actor: actor}, domain.StageBusinessAreaLead), "no project area")
	assert.False(t, policy.Authorize(AuthContext{Actor: actor, ProjectArea: &domain.BusinessArea{}}, domain.StageBusinessAreaLead), "area without leader")
	assert.False(t, policy.Authorize(AuthContext{Actor: actor}, domain.StageDirectorate), "no actor area")
}
