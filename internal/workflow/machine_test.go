package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
)

func docWith(kind domain.DocumentKind, s1, s2, s3 bool) *domain.Document {
	d := &domain.Document{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Kind:      kind,
	}
	d.SetApprovals(domain.ApprovalState{ProjectLead: s1, BusinessAreaLead: s2, Directorate: s3})
	d.Status = StatusFor(d.Approvals())
	return d
}

func TestApply_ApproveAdvancesFrontier(t *testing.T) {
	tests := []struct {
		name  string
		from  [3]bool
		stage domain.ApprovalStage
		want  [3]bool
		status domain.DocumentStatus
	}{
		{"stage 1 on fresh document", [3]bool{false, false, false}, domain.StageProjectLead, [3]bool{true, false, false}, domain.DocumentStatusInApproval},
		{"stage 2 after stage 1", [3]bool{true, false, false}, domain.StageBusinessAreaLead, [3]bool{true, true, false}, domain.DocumentStatusInApproval},
		{"stage 3 completes approval", [3]bool{true, true, false}, domain.StageDirectorate, [3]bool{true, true, true}, domain.DocumentStatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWith(domain.KindConceptPlan, tt.from[0], tt.from[1], tt.from[2])
			tr, err := Apply(doc, domain.ProjectStatusActive, tt.stage, domain.ActionApprove)
			require.NoError(t, err)
			assert.Equal(t, tt.want[0], tr.To.ProjectLead)
			assert.Equal(t, tt.want[1], tr.To.BusinessAreaLead)
			assert.Equal(t, tt.want[2], tr.To.Directorate)
			assert.Equal(t, tt.status, tr.Status)
			assert.True(t, tr.Changed())
		})
	}
}

func TestApply_ApproveCannotSkipStages(t *testing.T) {
	tests := []struct {
		name  string
		from  [3]bool
		stage domain.ApprovalStage
	}{
		{"stage 2 before stage 1", [3]bool{false, false, false}, domain.StageBusinessAreaLead},
		{"stage 3 before stage 2", [3]bool{true, false, false}, domain.StageDirectorate},
		{"stage 1 twice", [3]bool{true, false, false}, domain.StageProjectLead},
		{"stage 3 on approved document", [3]bool{true, true, true}, domain.StageDirectorate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWith(domain.KindConceptPlan, tt.from[0], tt.from[1], tt.from[2])
			_, err := Apply(doc, domain.ProjectStatusActive, tt.stage, domain.ActionApprove)
			assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
		})
	}
}

// Every committed approve keeps the no-skipped-stages invariant: stage 2
// implies stage 1, stage 3 implies stage 2.
func TestApply_ApprovePreservesMonotoneFlags(t *testing.T) {
	for s1 := 0; s1 < 2; s1++ {
		for s2 := 0; s2 < 2; s2++ {
			for s3 := 0; s3 < 2; s3++ {
				for stage := domain.StageProjectLead; stage <= domain.StageDirectorate; stage++ {
					doc := docWith(domain.KindProgressReport, s1 == 1, s2 == 1, s3 == 1)
					tr, err := Apply(doc, domain.ProjectStatusActive, stage, domain.ActionApprove)
					if err != nil {
						continue
					}
					if tr.To.BusinessAreaLead {
						assert.True(t, tr.To.ProjectLead, "stage 2 set without stage 1 from %v via approve(%d)", doc.Approvals(), stage)
					}
					if tr.To.Directorate {
						assert.True(t, tr.To.BusinessAreaLead, "stage 3 set without stage 2 from %v via approve(%d)", doc.Approvals(), stage)
					}
				}
			}
		}
	}
}

// approve(N) then recall(N) restores the exact tuple and status held before.
func TestApply_ApproveRecallRoundTrip(t *testing.T) {
	starts := []struct {
		from  [3]bool
		stage domain.ApprovalStage
	}{
		{[3]bool{false, false, false}, domain.StageProjectLead},
		{[3]bool{true, false, false}, domain.StageBusinessAreaLead},
		{[3]bool{true, true, false}, domain.StageDirectorate},
	}

	for _, s := range starts {
		doc := docWith(domain.KindProjectPlan, s.from[0], s.from[1], s.from[2])
		before := doc.Approvals()
		beforeStatus := doc.Status

		up, err := Apply(doc, domain.ProjectStatusActive, s.stage, domain.ActionApprove)
		require.NoError(t, err)
		doc.SetApprovals(up.To)
		doc.Status = up.Status

		down, err := Apply(doc, domain.ProjectStatusActive, s.stage, domain.ActionRecall)
		require.NoError(t, err)
		assert.Equal(t, before, down.To, "stage %d round trip", s.stage)
		assert.Equal(t, beforeStatus, down.Status, "stage %d round trip status", s.stage)
	}
}

func TestApply_RecallBlockedOnceNextStageGranted(t *testing.T) {
	doc := docWith(domain.KindConceptPlan, true, true, false)
	_, err := Apply(doc, domain.ProjectStatusActive, domain.StageProjectLead, domain.ActionRecall)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	// The frontier's predecessor can still recall.
	tr, err := Apply(doc, domain.ProjectStatusActive, domain.StageBusinessAreaLead, domain.ActionRecall)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalState{ProjectLead: true}, tr.To)
	assert.Equal(t, domain.DocumentStatusInApproval, tr.Status)
}

func TestApply_RecallFinalApproval(t *testing.T) {
	doc := docWith(domain.KindProjectClosure, true, true, true)
	tr, err := Apply(doc, domain.ProjectStatusActive, domain.StageDirectorate, domain.ActionRecall)
	require.NoError(t, err)
	assert.False(t, tr.To.Directorate)
	assert.Equal(t, domain.DocumentStatusInApproval, tr.Status)
}

func TestApply_RecallToEmptyRestoresNew(t *testing.T) {
	doc := docWith(domain.KindConceptPlan, true, false, false)
	tr, err := Apply(doc, domain.ProjectStatusActive, domain.StageProjectLead, domain.ActionRecall)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalState{}, tr.To)
	assert.Equal(t, domain.DocumentStatusNew, tr.Status)
}

func TestApply_SendBackClearsPredecessorAndSetsRevising(t *testing.T) {
	doc := docWith(domain.KindConceptPlan, true, false, false)
	tr, err := Apply(doc, domain.ProjectStatusActive, domain.StageBusinessAreaLead, domain.ActionSendBack)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalState{}, tr.To)
	assert.Equal(t, domain.DocumentStatusRevising, tr.Status)
	assert.False(t, tr.To.BusinessAreaLead, "send_back must never leave the sender's flag set")

	doc = docWith(domain.KindConceptPlan, true, true, false)
	tr, err = Apply(doc, domain.ProjectStatusActive, domain.StageDirectorate, domain.ActionSendBack)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalState{ProjectLead: true}, tr.To)
	assert.Equal(t, domain.DocumentStatusRevising, tr.Status)
	assert.False(t, tr.To.Directorate)
}

func TestApply_SendBackRejections(t *testing.T) {
	doc := docWith(domain.KindConceptPlan, true, false, false)
	_, err := Apply(doc, domain.ProjectStatusActive, domain.StageProjectLead, domain.ActionSendBack)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest, "stage 1 has no predecessor")

	doc = docWith(domain.KindConceptPlan, false, false, false)
	_, err = Apply(doc, domain.ProjectStatusActive, domain.StageBusinessAreaLead, domain.ActionSendBack)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "nothing submitted yet")

	doc = docWith(domain.KindConceptPlan, true, true, false)
	_, err = Apply(doc, domain.ProjectStatusActive, domain.StageBusinessAreaLead, domain.ActionSendBack)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "stage already approved")
}

// Fresh concept plan: lead approves, then the business area lead pushes it
// back for revision.
func TestApply_ApproveThenSendBackScenario(t *testing.T) {
	doc := docWith(domain.KindConceptPlan, false, false, false)

	tr, err := Apply(doc, domain.ProjectStatusActive, domain.StageProjectLead, domain.ActionApprove)
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalState{ProjectLead: true}, tr.To)
	require.Equal(t, domain.DocumentStatusInApproval, tr.Status)
	doc.SetApprovals(tr.To)
	doc.Status = tr.Status

	tr, err = Apply(doc, domain.ProjectStatusActive, domain.StageBusinessAreaLead, domain.ActionSendBack)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalState{}, tr.To)
	assert.Equal(t, domain.DocumentStatusRevising, tr.Status)
}

func TestApply_Reopen(t *testing.T) {
	t.Run("approved closure on closed project", func(t *testing.T) {
		doc := docWith(domain.KindProjectClosure, true, true, true)
		tr, err := Apply(doc, domain.ProjectStatusClosed, domain.StageDirectorate, domain.ActionReopen)
		require.NoError(t, err)
		assert.True(t, tr.ReopensProject)
		assert.Equal(t, tr.From, tr.To, "reopen must not flip document flags")
		assert.False(t, tr.Changed())
	})

	t.Run("terminated and suspended projects reopen too", func(t *testing.T) {
		for _, status := range []domain.ProjectStatus{domain.ProjectStatusTerminated, domain.ProjectStatusSuspended} {
			doc := docWith(domain.KindProjectClosure, true, true, true)
			tr, err := Apply(doc, status, domain.StageDirectorate, domain.ActionReopen)
			require.NoError(t, err, "project %s", status)
			assert.True(t, tr.ReopensProject)
		}
	})

	t.Run("rejected on non-closure kinds", func(t *testing.T) {
		doc := docWith(domain.KindConceptPlan, true, true, true)
		_, err := Apply(doc, domain.ProjectStatusClosed, domain.StageDirectorate, domain.ActionReopen)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("rejected below stage 3", func(t *testing.T) {
		doc := docWith(domain.KindProjectClosure, true, true, true)
		_, err := Apply(doc, domain.ProjectStatusClosed, domain.StageBusinessAreaLead, domain.ActionReopen)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("rejected before final approval", func(t *testing.T) {
		doc := docWith(domain.KindProjectClosure, true, true, false)
		_, err := Apply(doc, domain.ProjectStatusClosed, domain.StageDirectorate, domain.ActionReopen)
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	})

	t.Run("rejected on open project", func(t *testing.T) {
		doc := docWith(domain.KindProjectClosure, true, true, true)
		_, err := Apply(doc, domain.ProjectStatusActive, domain.StageDirectorate, domain.ActionReopen)
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	})
}

func TestApply_InvalidInputs(t *testing.T) {
	doc := docWith(domain.KindConceptPlan, false, false, false)

	_, err := Apply(doc, domain.ProjectStatusActive, 0, domain.ActionApprove)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = Apply(doc, domain.ProjectStatusActive, 4, domain.ActionApprove)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = Apply(doc, domain.ProjectStatusActive, domain.StageProjectLead, "escalate")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, domain.DocumentStatusNew, StatusFor(domain.ApprovalState{}))
	assert.Equal(t, domain.DocumentStatusInApproval, StatusFor(domain.ApprovalState{ProjectLead: true}))
	assert.Equal(t, domain.DocumentStatusInApproval, StatusFor(domain.ApprovalState{ProjectLead: true, BusinessAreaLead: true}))
	assert.Equal(t, domain.DocumentStatusApproved, StatusFor(domain.ApprovalState{ProjectLead: true, BusinessAreaLead: true, Directorate: true}))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(docWith(domain.KindConceptPlan, false, false, false)))
	assert.False(t, CanDelete(docWith(domain.KindConceptPlan, true, false, false)))
	assert.False(t, CanDelete(docWith(domain.KindConceptPlan, true, true, false)))
	assert.False(t, CanDelete(docWith(domain.KindConceptPlan, true, true, true)))
}
