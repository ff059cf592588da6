package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pathway-compass/survey-portal-backend/internal/projection"
	"pathway-compass/survey-portal-backend/internal/registry"
	"pathway-compass/survey-portal-backend/internal/survey"
)

func exportFixture() (*survey.Project, *projection.Projection) {
	project := &survey.Project{
		ID:       "proj-1",
		Name:     "Riverside Retrofit",
		Progress: 42,
		Sections: survey.SectionMap{
			registry.SectionRespondentDetails: {
				"RD_1": survey.SingleAnswer("Dana Okafor"),
				"RD_4": survey.SingleAnswer("dana@example.com"),
			},
			registry.SectionPathway1: {
				"Q1_1": survey.SingleAnswer(string(survey.StatusCompleted)),
				"Q1_2": survey.SingleAnswer(string(survey.StatusPlanned)),
				"ZZ_9": survey.SingleAnswer("orphaned"),
			},
			registry.SectionPathway9: {
				"Q9_6": survey.MultiAnswer("GRI", "CSRD"),
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return project, projection.Build(project)
}

func TestProjectPDF(t *testing.T) {
	project, p := exportFixture()

	data, err := ProjectPDF(project, p, DefaultPDFOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestProjectExcel(t *testing.T) {
	project, p := exportFixture()

	data, err := ProjectExcel(project, p)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(answersSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Section", "Question ID", "Question", "Answer", "Observation"}, rows[0])
	// Header plus one row per answer, the orphaned id included.
	assert.Len(t, rows, 7)

	summary, err := file.GetRows(summarySheet)
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, "Pathway", summary[0][0])
}

func TestAnswerText(t *testing.T) {
	assert.Equal(t, "Planned", answerText(survey.SingleAnswer("Planned")))
	assert.Equal(t, "GRI, CSRD", answerText(survey.MultiAnswer("GRI", "CSRD")))
}
