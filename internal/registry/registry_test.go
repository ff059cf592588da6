package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionOrder(t *testing.T) {
	order := SectionOrder()
	require.Len(t, order, TotalSteps)

	assert.Equal(t, SectionRespondentDetails, order[0])
	assert.Equal(t, SectionProjectInformation, order[1])
	assert.Equal(t, SectionPathway1, order[2])
	assert.Equal(t, SectionPathway10, order[11])

	// The order is fixed; a second call returns the same sequence.
	assert.Equal(t, order, SectionOrder())
}

func TestStepMapping(t *testing.T) {
	for i, key := range SectionOrder() {
		step := i + 1
		assert.Equal(t, step, StepFor(key))

		got, ok := SectionFor(step)
		require.True(t, ok)
		assert.Equal(t, key, got)
	}

	_, ok := SectionFor(0)
	assert.False(t, ok)
	_, ok = SectionFor(TotalSteps + 1)
	assert.False(t, ok)
	assert.Equal(t, 0, StepFor(SectionKey("Pathway11")))
}

func TestQuestionsFor(t *testing.T) {
	for _, key := range SectionOrder() {
		qs := QuestionsFor(key)
		require.NotEmpty(t, qs, "section %s has no questions", key)
		for _, q := range qs {
			assert.Equal(t, key, q.Section)
			assert.NotEmpty(t, q.Prompt)
		}
	}

	assert.Empty(t, QuestionsFor(SectionKey("Pathway11")))
}

func TestLookupQuestion(t *testing.T) {
	q, ok := LookupQuestion("Q1_1")
	require.True(t, ok)
	assert.Equal(t, SectionPathway1, q.Section)
	assert.Equal(t, KindSingleChoice, q.Kind)
	assert.True(t, q.Required)

	// The one multi-select question.
	q, ok = LookupQuestion("Q9_6")
	require.True(t, ok)
	assert.Equal(t, KindMultiChoice, q.Kind)

	// Unknown ids are tolerated, not fatal.
	_, ok = LookupQuestion("Q99_1")
	assert.False(t, ok)
}

func TestCatalogueConsistency(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range catalogue {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
	}

	// Lead-in sections are free text, pathways are choice questions.
	for _, q := range QuestionsFor(SectionRespondentDetails) {
		assert.Equal(t, KindFreeText, q.Kind)
	}
	for _, key := range SectionOrder()[2:] {
		assert.True(t, IsPathway(key))
		for _, q := range QuestionsFor(key) {
			assert.NotEqual(t, KindFreeText, q.Kind)
		}
	}
	assert.False(t, IsPathway(SectionRespondentDetails))
	assert.False(t, IsPathway(SectionProjectInformation))
}

func TestPathwayTitle(t *testing.T) {
	assert.Equal(t, "Energy & Emissions", PathwayTitle(SectionPathway1))
	assert.Equal(t, "Finance & Investment", PathwayTitle(SectionPathway10))
	assert.Equal(t, "RespondentDetails", PathwayTitle(SectionRespondentDetails))
}
