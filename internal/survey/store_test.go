package survey

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway-compass/survey-portal-backend/internal/registry"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	store.PutUser(&UserRecord{
		ID:    "u-1",
		Email: "ada@example.org",
		Name:  "Ada",
	})
	return store
}

func TestLoadProjectNotFound(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	_, err := store.LoadProject(ctx, "u-missing", "p-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.LoadProject(ctx, "u-1", "p-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAndListProjects(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	first := &Project{ID: "p-1", Name: "Harbour retrofit", CreatedAt: time.Now().Add(-time.Hour)}
	second := &Project{ID: "p-2", Name: "Fleet renewal", CreatedAt: time.Now()}
	require.NoError(t, store.CreateProject(ctx, "u-1", first))
	require.NoError(t, store.CreateProject(ctx, "u-1", second))

	// Duplicate ids are rejected.
	assert.Error(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1"}))

	projects, err := store.ListProjects(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p-1", projects[0].ID)
	assert.Equal(t, "p-2", projects[1].ID)
}

func TestMergeSectionRoundTrip(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1", Name: "Harbour retrofit"}))

	answers := SectionAnswers{
		"Q1_1": SingleAnswer("Completed"),
		"Q1_2": {Value: "Planned", Observation: "awaiting budget"},
	}
	require.NoError(t, store.MergeSection(ctx, "u-1", "p-1", registry.SectionPathway1, answers))

	project, err := store.LoadProject(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, answers, project.Sections[registry.SectionPathway1])
}

func TestMergeSectionLeavesOthersUntouched(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1"}))
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-2"}))

	pathway1 := SectionAnswers{"Q1_1": SingleAnswer("Ongoing")}
	pathway2 := SectionAnswers{"Q2_1": SingleAnswer("Planned")}
	require.NoError(t, store.MergeSection(ctx, "u-1", "p-1", registry.SectionPathway1, pathway1))
	require.NoError(t, store.MergeSection(ctx, "u-1", "p-1", registry.SectionPathway2, pathway2))

	// Re-merging one section replaces only that section.
	replacement := SectionAnswers{"Q1_1": SingleAnswer("Completed")}
	require.NoError(t, store.MergeSection(ctx, "u-1", "p-1", registry.SectionPathway1, replacement))

	project, err := store.LoadProject(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, replacement, project.Sections[registry.SectionPathway1])
	assert.Equal(t, pathway2, project.Sections[registry.SectionPathway2])

	// The sibling project is untouched.
	other, err := store.LoadProject(ctx, "u-1", "p-2")
	require.NoError(t, err)
	assert.Empty(t, other.Sections)
}

func TestMergeSectionMissingProject(t *testing.T) {
	store := seedStore(t)
	err := store.MergeSection(context.Background(), "u-1", "p-missing", registry.SectionPathway1, SectionAnswers{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetProgress(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1"}))

	require.NoError(t, store.SetProgress(ctx, "u-1", "p-1", 42))
	project, err := store.LoadProject(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, 42, project.Progress)

	assert.Error(t, store.SetProgress(ctx, "u-1", "p-1", -1))
	assert.Error(t, store.SetProgress(ctx, "u-1", "p-1", 101))
	assert.ErrorIs(t, store.SetProgress(ctx, "u-1", "p-missing", 10), ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1"}))

	require.NoError(t, store.DeleteProject(ctx, "u-1", "p-1"))
	_, err := store.LoadProject(ctx, "u-1", "p-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteProject(ctx, "u-1", "p-1"), ErrNotFound)
}

func TestMarkSubmitted(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1"}))

	require.NoError(t, store.MarkSubmitted(ctx, "u-1", "p-1"))
	project, err := store.LoadProject(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.True(t, project.Submitted)
}

func TestLoadProjectReturnsCopy(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1"}))
	require.NoError(t, store.MergeSection(ctx, "u-1", "p-1", registry.SectionPathway1,
		SectionAnswers{"Q1_1": SingleAnswer("Ongoing")}))

	project, err := store.LoadProject(ctx, "u-1", "p-1")
	require.NoError(t, err)
	project.Sections[registry.SectionPathway1]["Q1_1"] = SingleAnswer("Completed")

	fresh, err := store.LoadProject(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Ongoing", fresh.Sections[registry.SectionPathway1]["Q1_1"].Value)
}

func TestAllProjects(t *testing.T) {
	store := seedStore(t)
	store.PutUser(&UserRecord{ID: "u-2", Email: "grace@example.org"})
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, "u-1", &Project{ID: "p-1"}))
	require.NoError(t, store.CreateProject(ctx, "u-2", &Project{ID: "p-2"}))

	seen := map[string]string{}
	err := store.AllProjects(ctx, func(userID string, p *Project) error {
		seen[p.ID] = userID
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"p-1": "u-1", "p-2": "u-2"}, seen)
}
