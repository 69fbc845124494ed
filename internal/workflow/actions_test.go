package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"docflow/internal/domain"
)

func TestPolicy_NextActions(t *testing.T) {
	policy := NewPolicy("")

	leader := &domain.User{ID: uuid.New()}
	areaLead := &domain.User{ID: uuid.New()}
	director := &domain.User{ID: uuid.New()}

	projectArea := &domain.BusinessArea{ID: uuid.New(), Name: "Oceanography", LeaderID: &areaLead.ID}
	directorate := &domain.BusinessArea{ID: uuid.New(), Name: "Directorate"}
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive, BusinessAreaID: projectArea.ID}
	members := []domain.ProjectMember{{ProjectID: project.ID, UserID: leader.ID, IsLeader: true}}

	ctx := func(actor *domain.User, area *domain.BusinessArea) AuthContext {
		return AuthContext{Actor: actor, ActorArea: area, Project: project, Members: members, ProjectArea: projectArea}
	}

	t.Run("leader on a fresh document", func(t *testing.T) {
		doc := docWith(domain.KindConceptPlan, false, false, false)
		set := policy.NextActions(ctx(leader, projectArea), doc)
		assert.Equal(t, []PermittedAction{{domain.StageProjectLead, domain.ActionApprove}}, set.Actions)
		assert.True(t, set.CanDelete)
	})

	t.Run("leader after submitting", func(t *testing.T) {
		doc := docWith(domain.KindConceptPlan, true, false, false)
		set := policy.NextActions(ctx(leader, projectArea), doc)
		assert.Equal(t, []PermittedAction{{domain.StageProjectLead, domain.ActionRecall}}, set.Actions)
		assert.False(t, set.CanDelete, "deletion blocked once stage 1 is granted")
	})

	t.Run("area lead at the stage-2 frontier", func(t *testing.T) {
		doc := docWith(domain.KindConceptPlan, true, false, false)
		set := policy.NextActions(ctx(areaLead, projectArea), doc)
		assert.ElementsMatch(t, []PermittedAction{
			{domain.StageBusinessAreaLead, domain.ActionApprove},
			{domain.StageBusinessAreaLead, domain.ActionSendBack},
		}, set.Actions)
		assert.False(t, set.CanDelete)
	})

	t.Run("directorate member at the stage-3 frontier", func(t *testing.T) {
		doc := docWith(domain.KindConceptPlan, true, true, false)
		set := policy.NextActions(ctx(director, directorate), doc)
		assert.ElementsMatch(t, []PermittedAction{
			{domain.StageDirectorate, domain.ActionApprove},
			{domain.StageDirectorate, domain.ActionSendBack},
		}, set.Actions)
	})

	t.Run("nothing for an unauthorized user", func(t *testing.T) {
		doc := docWith(domain.KindConceptPlan, true, false, false)
		set := policy.NextActions(ctx(&domain.User{ID: uuid.New()}, nil), doc)
		assert.Empty(t, set.Actions)
		assert.False(t, set.CanDelete)
	})

	t.Run("reopen offered on approved closure of a closed project", func(t *testing.T) {
		closed := *project
		closed.Status = domain.ProjectStatusClosed
		c := ctx(director, directorate)
		c.Project = &closed
		doc := docWith(domain.KindProjectClosure, true, true, true)
		set := policy.NextActions(c, doc)
		assert.ElementsMatch(t, []PermittedAction{
			{domain.StageDirectorate, domain.ActionRecall},
			{domain.StageDirectorate, domain.ActionReopen},
		}, set.Actions)
	})

	t.Run("nil document yields the empty set", func(t *testing.T) {
		set := policy.NextActions(ctx(leader, projectArea), nil)
		assert.Empty(t, set.Actions)
		assert.False(t, set.CanDelete)
	})
}
