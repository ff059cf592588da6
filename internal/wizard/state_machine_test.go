package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway-compass/survey-portal-backend/internal/registry"
)

func TestNewStartsAtStepOne(t *testing.T) {
	s := New()
	assert.Equal(t, 1, s.Current())
	assert.Empty(t, s.Completed())
	assert.Equal(t, 8, s.Progress()) // round(100 * 1/12)
}

func TestGoToStepGating(t *testing.T) {
	s := New()

	// Step 1 is always reachable.
	assert.True(t, s.GoToStep(1))
	assert.Equal(t, 1, s.Current())

	// Step 2 requires step 1 to be completed.
	assert.False(t, s.GoToStep(2))
	assert.Equal(t, 1, s.Current())

	s.CompleteStep(1)
	assert.True(t, s.GoToStep(2))
	assert.Equal(t, 2, s.Current())

	// Out-of-range targets are no-ops.
	assert.False(t, s.GoToStep(0))
	assert.False(t, s.GoToStep(TotalSteps+1))
	assert.Equal(t, 2, s.Current())
}

func TestGoToStepBeyondCompletedIsNoOp(t *testing.T) {
	s := New()
	for _, step := range []int{1, 2, 3} {
		s.CompleteStep(step)
	}

	before := s.Current()
	assert.False(t, s.GoToStep(5))
	assert.Equal(t, before, s.Current())

	assert.True(t, s.GoToStep(4))
	assert.Equal(t, 4, s.Current())
}

func TestCompleteStepSequence(t *testing.T) {
	s := New()
	for step := 1; step <= 5; step++ {
		s.CompleteStep(step)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.Completed())
	assert.Equal(t, 6, s.Current())

	// Completing the last step clamps at the last step.
	for step := 6; step <= TotalSteps; step++ {
		s.CompleteStep(step)
	}
	assert.Equal(t, TotalSteps, s.Current())
	assert.Equal(t, 100, s.Progress())
}

func TestCompleteStepReturnsProgress(t *testing.T) {
	s := New()
	got := s.CompleteStep(1)
	assert.Equal(t, 17, got) // round(100 * 2/12)

	got = s.CompleteStep(2)
	assert.Equal(t, 25, got) // round(100 * 3/12)

	// Out-of-range steps leave state untouched.
	got = s.CompleteStep(99)
	assert.Equal(t, 25, got)
	assert.Equal(t, 3, s.Current())
}

func TestSkipToEnd(t *testing.T) {
	s := New()
	assert.False(t, s.SkipToEnd())
	assert.Equal(t, 1, s.Current())

	for step := 1; step <= 8; step++ {
		s.CompleteStep(step)
	}
	assert.False(t, s.SkipToEnd())

	s.CompleteStep(9)
	require.True(t, s.SkipToEnd())
	assert.Equal(t, TotalSteps, s.Current())
}

func TestRestartKeepsCompletedSteps(t *testing.T) {
	s := New()
	s.CompleteStep(1)
	s.CompleteStep(2)

	s.Restart()
	assert.Equal(t, 1, s.Current())
	assert.Equal(t, []int{1, 2}, s.Completed())

	// Previously unlocked steps stay reachable.
	assert.True(t, s.GoToStep(3))
}

func TestNewFromSections(t *testing.T) {
	tests := []struct {
		name          string
		keys          []registry.SectionKey
		wantCurrent   int
		wantCompleted []int
	}{
		{
			name:        "empty storage starts at step one",
			keys:        nil,
			wantCurrent: 1,
		},
		{
			name:          "contiguous sections resume past them",
			keys:          []registry.SectionKey{registry.SectionRespondentDetails, registry.SectionProjectInformation, registry.SectionPathway1},
			wantCurrent:   4,
			wantCompleted: []int{1, 2, 3},
		},
		{
			name:          "gap stops the resume point",
			keys:          []registry.SectionKey{registry.SectionRespondentDetails, registry.SectionPathway2},
			wantCurrent:   2,
			wantCompleted: []int{1, 4},
		},
		{
			name: "all sections clamp to the last step",
			keys: func() []registry.SectionKey { return registry.SectionOrder() }(),

			wantCurrent:   TotalSteps,
			wantCompleted: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		},
		{
			name:          "unknown keys are ignored",
			keys:          []registry.SectionKey{"Pathway99"},
			wantCurrent:   1,
			wantCompleted: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFromSections(tt.keys)
			assert.Equal(t, tt.wantCurrent, s.Current())
			if tt.wantCompleted == nil {
				assert.Empty(t, s.Completed())
			} else {
				assert.Equal(t, tt.wantCompleted, s.Completed())
			}
		})
	}
}

func TestDeriveProgress(t *testing.T) {
	assert.Equal(t, 8, DeriveProgress(nil))
	assert.Equal(t, 100, DeriveProgress(registry.SectionOrder()))
}
