package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/workflow"
	"docflow/mocks"
)

type lifecycleFixture struct {
	docRepo     *mocks.MockDocumentRepo
	projectRepo *mocks.MockProjectRepo
	actionRepo  *mocks.MockDocumentActionRepo
	svc         LifecycleService
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		docRepo:     new(mocks.MockDocumentRepo),
		projectRepo: new(mocks.MockProjectRepo),
		actionRepo:  new(mocks.MockDocumentActionRepo),
	}
	f.svc = NewLifecycleService(f.docRepo, f.projectRepo, f.actionRepo)
	return f
}

func approveTransition(doc *domain.Document, stage domain.ApprovalStage) workflow.Transition {
	tr, err := workflow.Apply(doc, domain.ProjectStatusActive, stage, domain.ActionApprove)
	if err != nil {
		panic(err)
	}
	return tr
}

func TestLifecycle_ConceptPlanFinalApprovalSpawnsProjectPlan(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive}
	concept := newDoc(project.ID, domain.KindConceptPlan, true, true, false)
	tr := approveTransition(concept, domain.StageDirectorate)

	f.docRepo.On("GetByProjectAndKind", mock.Anything, project.ID, domain.KindProjectPlan, 0).
		Return(nil, domain.ErrDocumentNotFound)
	f.docRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.Kind == domain.KindProjectPlan && d.ProjectID == project.ID &&
			d.Status == domain.DocumentStatusNew && !d.ProjectLeadApproved
	})).Return(nil)
	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.projectRepo.On("UpdateStatus", mock.Anything, project.ID, domain.ProjectStatusPending).Return(nil)

	err := f.svc.OnTransition(context.Background(), concept, tr)
	require.NoError(t, err)
	f.docRepo.AssertExpectations(t)
	f.projectRepo.AssertExpectations(t)
}

// Re-running the coordinator for an already-applied event must not spawn a
// second project plan or rewrite the project status.
func TestLifecycle_ConceptPlanFinalApprovalIsIdempotent(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusPending}
	concept := newDoc(project.ID, domain.KindConceptPlan, true, true, false)
	tr := approveTransition(concept, domain.StageDirectorate)

	existing := newDoc(project.ID, domain.KindProjectPlan, false, false, false)
	f.docRepo.On("GetByProjectAndKind", mock.Anything, project.ID, domain.KindProjectPlan, 0).
		Return(existing, nil)
	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)

	err := f.svc.OnTransition(context.Background(), concept, tr)
	require.NoError(t, err)
	f.docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.projectRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Two coordinators racing on the spawn: the loser hits the uniqueness
// constraint and treats it as already done.
func TestLifecycle_SpawnRaceLoserSucceeds(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusPending}
	concept := newDoc(project.ID, domain.KindConceptPlan, true, true, false)
	tr := approveTransition(concept, domain.StageDirectorate)

	f.docRepo.On("GetByProjectAndKind", mock.Anything, project.ID, domain.KindProjectPlan, 0).
		Return(nil, domain.ErrDocumentNotFound)
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDocumentAlreadyExists)
	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)

	err := f.svc.OnTransition(context.Background(), concept, tr)
	assert.NoError(t, err)
}

func TestLifecycle_ClosureFinalApprovalClosesProject(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive}
	closure := newDoc(project.ID, domain.KindProjectClosure, true, true, false)
	tr := approveTransition(closure, domain.StageDirectorate)

	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.projectRepo.On("UpdateStatus", mock.Anything, project.ID, domain.ProjectStatusClosed).Return(nil)

	err := f.svc.OnTransition(context.Background(), closure, tr)
	require.NoError(t, err)
	f.projectRepo.AssertExpectations(t)
}

func TestLifecycle_IntermediateApprovalsHaveNoSideEffects(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive}
	concept := newDoc(project.ID, domain.KindConceptPlan, false, false, false)
	tr := approveTransition(concept, domain.StageProjectLead)

	err := f.svc.OnTransition(context.Background(), concept, tr)
	require.NoError(t, err)
	f.projectRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Reopening an approved closure restores the project to updating: the
// closure record keeps no pre-closure status, so the project re-enters the
// revision phase rather than guessing at its old state.
func TestLifecycle_ReopenRestoresUpdating(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusClosed}
	closure := newDoc(project.ID, domain.KindProjectClosure, true, true, true)
	tr, err := workflow.Apply(closure, domain.ProjectStatusClosed, domain.StageDirectorate, domain.ActionReopen)
	require.NoError(t, err)

	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.projectRepo.On("UpdateStatus", mock.Anything, project.ID, domain.ProjectStatusUpdating).Return(nil)

	err = f.svc.OnTransition(context.Background(), closure, tr)
	require.NoError(t, err)
	f.projectRepo.AssertExpectations(t)
}

func TestLifecycle_OnDeleteResetsPhaseWhenAnchorGone(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusPending}
	concept := newDoc(project.ID, domain.KindConceptPlan, false, false, false)

	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.docRepo.On("GetByProjectAndKind", mock.Anything, project.ID, domain.KindConceptPlan, 0).
		Return(nil, domain.ErrDocumentNotFound)
	f.projectRepo.On("UpdateStatus", mock.Anything, project.ID, domain.ProjectStatusUpdating).Return(nil)

	err := f.svc.OnDelete(context.Background(), concept)
	require.NoError(t, err)
	f.projectRepo.AssertExpectations(t)
}

func TestLifecycle_OnDeleteIgnoresUnanchoredKinds(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive}
	report := newDoc(project.ID, domain.KindProgressReport, false, false, false)
	report.Year = 2026

	err := f.svc.OnDelete(context.Background(), report)
	require.NoError(t, err)
	f.projectRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycle_OnDeleteKeepsPhaseWhenStatusUnrelated(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusNew}
	concept := newDoc(project.ID, domain.KindConceptPlan, false, false, false)

	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)

	err := f.svc.OnDelete(context.Background(), concept)
	require.NoError(t, err)
	f.projectRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycle_ReconcileRepairsLostSpawn(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusNew}
	concept := newDoc(project.ID, domain.KindConceptPlan, true, true, true)

	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.docRepo.On("ListByProject", mock.Anything, project.ID).Return([]domain.Document{*concept}, nil)
	f.docRepo.On("GetByProjectAndKind", mock.Anything, project.ID, domain.KindProjectPlan, 0).
		Return(nil, domain.ErrDocumentNotFound)
	f.docRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.Kind == domain.KindProjectPlan
	})).Return(nil)
	f.projectRepo.On("UpdateStatus", mock.Anything, project.ID, domain.ProjectStatusPending).Return(nil)

	err := f.svc.Reconcile(context.Background(), project.ID)
	require.NoError(t, err)
	f.docRepo.AssertExpectations(t)
	f.projectRepo.AssertExpectations(t)
}

func TestLifecycle_ReconcileRepairsLostClose(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusActive}
	closure := newDoc(project.ID, domain.KindProjectClosure, true, true, true)

	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.docRepo.On("ListByProject", mock.Anything, project.ID).Return([]domain.Document{*closure}, nil)
	f.actionRepo.On("ListByDocument", mock.Anything, closure.ID).Return([]domain.DocumentAction{
		{DocumentID: closure.ID, Action: domain.ActionApprove, Stage: domain.StageDirectorate},
	}, nil)
	f.projectRepo.On("UpdateStatus", mock.Anything, project.ID, domain.ProjectStatusClosed).Return(nil)

	err := f.svc.Reconcile(context.Background(), project.ID)
	require.NoError(t, err)
	f.projectRepo.AssertExpectations(t)
}

// A reopened closure must not be re-closed by reconciliation; the audit log
// records that the last word on the document was a reopen.
func TestLifecycle_ReconcileHonorsReopen(t *testing.T) {
	f := newLifecycleFixture()
	project := &domain.Project{ID: uuid.New(), Status: domain.ProjectStatusClosed}
	closure := newDoc(project.ID, domain.KindProjectClosure, true, true, true)

	f.projectRepo.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.docRepo.On("ListByProject", mock.Anything, project.ID).Return([]domain.Document{*closure}, nil)
	f.actionRepo.On("ListByDocument", mock.Anything, closure.ID).Return([]domain.DocumentAction{
		{DocumentID: closure.ID, Action: domain.ActionReopen, Stage: domain.StageDirectorate},
		{DocumentID: closure.ID, Action: domain.ActionApprove, Stage: domain.StageDirectorate},
	}, nil)
	f.projectRepo.On("UpdateStatus", mock.Anything, project.ID, domain.ProjectStatusUpdating).Return(nil)

	err := f.svc.Reconcile(context.Background(), project.ID)
	require.NoError(t, err)
	f.projectRepo.AssertExpectations(t)
}
