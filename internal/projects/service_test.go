package projects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pathway-compass/survey-portal-backend/internal/notifications"
	"pathway-compass/survey-portal-backend/internal/projection"
	"pathway-compass/survey-portal-backend/internal/registry"
	"pathway-compass/survey-portal-backend/internal/survey"
)

const testUserID = "user-1"

func newTestService(t *testing.T) (*Service, *survey.MemoryStore) {
	t.Helper()
	store := survey.NewMemoryStore()
	store.PutUser(&survey.UserRecord{
		ID:       testUserID,
		Email:    "dana@example.com",
		Projects: make(map[string]*survey.Project),
	})
	return NewService(store, projection.NewCache(time.Minute), nil, zap.NewNop()), store
}

func newTestProject(t *testing.T, svc *Service) *survey.Project {
	t.Helper()
	project, err := svc.CreateProject(context.Background(), testUserID, CreateProjectRequest{
		Name: "Riverside Retrofit",
	})
	require.NoError(t, err)
	return project
}

// requiredAnswers fills every required question of a section with the
// given value.
func requiredAnswers(key registry.SectionKey, value string) survey.SectionAnswers {
	answers := make(survey.SectionAnswers)
	for _, q := range registry.QuestionsFor(key) {
		if q.Required {
			answers[q.ID] = survey.SingleAnswer(value)
		}
	}
	return answers
}

func sectionValue(key registry.SectionKey) string {
	if registry.IsPathway(key) {
		return string(survey.StatusOngoing)
	}
	return "filled in"
}

func completeAllSections(t *testing.T, svc *Service, projectID string) {
	t.Helper()
	for _, key := range registry.SectionOrder() {
		_, err := svc.SaveSection(context.Background(), testUserID, projectID, key, SaveSectionRequest{
			Answers:  requiredAnswers(key, sectionValue(key)),
			Complete: true,
		})
		require.NoError(t, err)
	}
}

type captureBroadcaster struct {
	updates []notifications.ProgressUpdate
}

func (b *captureBroadcaster) BroadcastProgress(userID string, update notifications.ProgressUpdate) {
	b.updates = append(b.updates, update)
}

func TestCreateProject(t *testing.T) {
	svc, _ := newTestService(t)

	project := newTestProject(t, svc)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Riverside Retrofit", project.Name)
	assert.Equal(t, 8, project.Progress)
	assert.Empty(t, project.Sections)
	assert.False(t, project.Submitted)

	list, err := svc.ListProjects(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, project.ID, list[0].ID)
}

func TestCreateProjectRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProject(context.Background(), testUserID, CreateProjectRequest{})
	assert.Error(t, err)
}

func TestSaveSectionUnknownKey(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	_, err := svc.SaveSection(context.Background(), testUserID, project.ID, "Pathway42", SaveSectionRequest{
		Answers: survey.SectionAnswers{"Q42_1": survey.SingleAnswer("Planned")},
	})
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestSaveSectionCompleteRejectsMissingRequired(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	_, err := svc.SaveSection(context.Background(), testUserID, project.ID, registry.SectionRespondentDetails, SaveSectionRequest{
		Answers:  survey.SectionAnswers{"RD_1": survey.SingleAnswer("Dana Okafor")},
		Complete: true,
	})
	assert.ErrorIs(t, err, ErrValidationIncomplete)

	// The rejected save must not have touched storage.
	stored, err := svc.GetProject(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Sections)
}

func TestSaveSectionDraftDoesNotWriteProgress(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	result, err := svc.SaveSection(context.Background(), testUserID, project.ID, registry.SectionRespondentDetails, SaveSectionRequest{
		Answers: survey.SectionAnswers{"RD_1": survey.SingleAnswer("Dana Okafor")},
	})
	require.NoError(t, err)
	assert.False(t, result.StepCompleted)

	stored, err := svc.GetProject(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Progress)
	assert.Len(t, stored.Sections[registry.SectionRespondentDetails], 1)
}

func TestSaveSectionCompleteWritesProgress(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	result, err := svc.SaveSection(context.Background(), testUserID, project.ID, registry.SectionRespondentDetails, SaveSectionRequest{
		Answers:  requiredAnswers(registry.SectionRespondentDetails, "filled in"),
		Complete: true,
	})
	require.NoError(t, err)
	assert.True(t, result.StepCompleted)
	assert.Equal(t, 2, result.CurrentStep)
	assert.Equal(t, []int{1}, result.CompletedSteps)
	assert.Equal(t, 17, result.Progress)

	stored, err := svc.GetProject(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, stored.Progress)
}

func TestSaveSectionBroadcastsOnCompletion(t *testing.T) {
	store := survey.NewMemoryStore()
	store.PutUser(&survey.UserRecord{ID: testUserID, Projects: make(map[string]*survey.Project)})
	broadcaster := &captureBroadcaster{}
	svc := NewService(store, projection.NewCache(time.Minute), broadcaster, zap.NewNop())
	project := newTestProject(t, svc)

	_, err := svc.SaveSection(context.Background(), testUserID, project.ID, registry.SectionRespondentDetails, SaveSectionRequest{
		Answers: survey.SectionAnswers{"RD_1": survey.SingleAnswer("Dana Okafor")},
	})
	require.NoError(t, err)
	assert.Empty(t, broadcaster.updates, "draft saves must not broadcast")

	_, err = svc.SaveSection(context.Background(), testUserID, project.ID, registry.SectionRespondentDetails, SaveSectionRequest{
		Answers:  requiredAnswers(registry.SectionRespondentDetails, "filled in"),
		Complete: true,
	})
	require.NoError(t, err)
	require.Len(t, broadcaster.updates, 1)
	assert.Equal(t, project.ID, broadcaster.updates[0].ProjectID)
	assert.Equal(t, 17, broadcaster.updates[0].Progress)
}

func TestWizardState(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	for _, key := range []registry.SectionKey{registry.SectionRespondentDetails, registry.SectionProjectInformation} {
		_, err := svc.SaveSection(context.Background(), testUserID, project.ID, key, SaveSectionRequest{
			Answers:  requiredAnswers(key, "filled in"),
			Complete: true,
		})
		require.NoError(t, err)
	}

	state, err := svc.WizardState(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, state.CurrentStep)
	assert.Equal(t, []int{1, 2}, state.CompletedSteps)
	assert.Equal(t, 25, state.Progress)
	assert.Equal(t, 25, state.StoredProgress)
	require.Len(t, state.Sections, registry.TotalSteps)
	assert.True(t, state.Sections[0].Completed)
	assert.True(t, state.Sections[0].RequiredSatisfied)
	assert.False(t, state.Sections[2].Completed)
	assert.False(t, state.Sections[2].RequiredSatisfied)
}

func TestNavigateGoto(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	// Step 3 is unreachable while step 2 is incomplete.
	result, err := svc.Navigate(context.Background(), testUserID, project.ID, NavigateRequest{Action: "goto", Target: 3})
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 1, result.CurrentStep)

	// Step 1 is always open.
	result, err = svc.Navigate(context.Background(), testUserID, project.ID, NavigateRequest{Action: "goto", Target: 1})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.CurrentStep)
}

func TestNavigateSkipToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	result, err := svc.Navigate(context.Background(), testUserID, project.ID, NavigateRequest{Action: "skip_to_end"})
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// Completing through step 9 unlocks the shortcut.
	for step := 1; step <= 9; step++ {
		key, ok := registry.SectionFor(step)
		require.True(t, ok)
		_, err := svc.SaveSection(context.Background(), testUserID, project.ID, key, SaveSectionRequest{
			Answers:  requiredAnswers(key, sectionValue(key)),
			Complete: true,
		})
		require.NoError(t, err)
	}

	result, err = svc.Navigate(context.Background(), testUserID, project.ID, NavigateRequest{Action: "skip_to_end"})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, registry.TotalSteps, result.CurrentStep)
}

func TestNavigateRestartAndUnknownAction(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	result, err := svc.Navigate(context.Background(), testUserID, project.ID, NavigateRequest{Action: "restart"})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.CurrentStep)

	_, err = svc.Navigate(context.Background(), testUserID, project.ID, NavigateRequest{Action: "teleport"})
	assert.Error(t, err)
}

func TestSubmitRequiresFinalStep(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	err := svc.Submit(context.Background(), testUserID, project.ID)
	assert.ErrorIs(t, err, ErrValidationIncomplete)
}

func TestSubmit(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)
	completeAllSections(t, svc, project.ID)

	require.NoError(t, svc.Submit(context.Background(), testUserID, project.ID))

	stored, err := svc.GetProject(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	assert.True(t, stored.Submitted)
	assert.Equal(t, 100, stored.Progress)
}

func TestProjectionCachedBetweenWrites(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)
	completeAllSections(t, svc, project.ID)

	first, err := svc.Projection(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	second, err := svc.Projection(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = svc.SaveSection(context.Background(), testUserID, project.ID, registry.SectionPathway1, SaveSectionRequest{
		Answers: requiredAnswers(registry.SectionPathway1, string(survey.StatusCompleted)),
	})
	require.NoError(t, err)

	third, err := svc.Projection(context.Background(), testUserID, project.ID)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 100, third.Sections[0].CompletionPercent)
}

func TestDeleteProject(t *testing.T) {
	svc, _ := newTestService(t)
	project := newTestProject(t, svc)

	require.NoError(t, svc.DeleteProject(context.Background(), testUserID, project.ID))

	_, err := svc.GetProject(context.Background(), testUserID, project.ID)
	assert.ErrorIs(t, err, survey.ErrNotFound)
}

func TestDriftAuditFlagsStaleProgress(t *testing.T) {
	svc, store := newTestService(t)
	project := newTestProject(t, svc)

	_, err := svc.SaveSection(context.Background(), testUserID, project.ID, registry.SectionRespondentDetails, SaveSectionRequest{
		Answers:  requiredAnswers(registry.SectionRespondentDetails, "filled in"),
		Complete: true,
	})
	require.NoError(t, err)

	// Simulate the stale-progress case: the section landed but the
	// progress write was lost.
	require.NoError(t, store.SetProgress(context.Background(), testUserID, project.ID, 8))

	auditor := NewDriftAuditor(store, zap.NewNop())
	drifted, err := auditor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, drifted)
}
