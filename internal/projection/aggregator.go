package projection

import (
	"math"
	"time"

	"pathway-compass/survey-portal-backend/internal/registry"
	"pathway-compass/survey-portal-backend/internal/survey"
)

// StatusCounts tallies answers of one pathway section by their literal
// enum value. Unanswered questions are excluded entirely; they are not
// a sixth category.
type StatusCounts map[survey.Status]int

// Total returns the number of answered status questions in the section.
func (c StatusCounts) Total() int {
	n := 0
	for _, count := range c {
		n += count
	}
	return n
}

// Intervention flags an answer needing follow-up attention: anything
// answered Planned or Not in Focus.
type Intervention struct {
	Section    registry.SectionKey `json:"section"`
	QuestionID string              `json:"question_id"`
	Prompt     string              `json:"prompt"`
	Answer     survey.Status       `json:"answer"`
}

// Dataset is one labelled series of the chart payload.
type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// ChartData is the plain shape handed to an external chart renderer.
// The core carries no dependency on any renderer beyond this contract.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// SectionSummary is the per-pathway slice of a projection.
type SectionSummary struct {
	Section           registry.SectionKey `json:"section"`
	Title             string              `json:"title"`
	Counts            StatusCounts        `json:"counts"`
	CompletionPercent int                 `json:"completion_percent"`
}

// Projection is the aggregated, chartable view of a project's answers.
// It is a pure function of the stored sections and the registry, so it
// can be recomputed at any time from persisted state alone.
type Projection struct {
	ProjectID     string                               `json:"project_id"`
	Sections      []SectionSummary                     `json:"sections"`
	Tallies       map[registry.SectionKey]StatusCounts `json:"tallies"`
	Interventions []Intervention                       `json:"interventions"`
	Chart         ChartData                            `json:"chart"`
	ComputedAt    time.Time                            `json:"computed_at"`
}

// RequiredSatisfied reports whether every required question of the
// section has a non-empty answer. This is the only validation performed;
// free text is never checked beyond non-emptiness.
func RequiredSatisfied(key registry.SectionKey, answers survey.SectionAnswers) bool {
	for _, q := range registry.QuestionsFor(key) {
		if !q.Required {
			continue
		}
		a, ok := answers[q.ID]
		if !ok || !a.Answered() {
			return false
		}
	}
	return true
}

// TallyStatuses counts answers by their literal enum value for each
// pathway section present in the map. Lead-in sections, unanswered
// questions, tag sets, and free-text values are all excluded.
func TallyStatuses(sections survey.SectionMap) map[registry.SectionKey]StatusCounts {
	tallies := make(map[registry.SectionKey]StatusCounts)
	for key, answers := range sections {
		if !registry.IsPathway(key) {
			continue
		}
		counts := make(StatusCounts)
		for _, a := range answers {
			if status, ok := a.Status(); ok {
				counts[status]++
			}
		}
		tallies[key] = counts
	}
	return tallies
}

// CompletionPercent returns round(100 * completed / answered) for one
// section's counts. A section with nothing answered reports 0, never a
// division-by-zero NaN.
func CompletionPercent(counts StatusCounts) int {
	total := counts.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(counts[survey.StatusCompleted]) / float64(total)))
}

// Interventions returns every answer whose value is Planned or Not in
// Focus, in registry section-then-question order. An empty result is
// valid and common.
func Interventions(sections survey.SectionMap) []Intervention {
	out := []Intervention{}
	for _, key := range registry.SectionOrder() {
		answers, ok := sections[key]
		if !ok {
			continue
		}
		for _, q := range registry.QuestionsFor(key) {
			a, ok := answers[q.ID]
			if !ok {
				continue
			}
			status, ok := a.Status()
			if !ok {
				continue
			}
			if status == survey.StatusPlanned || status == survey.StatusNotInFocus {
				out = append(out, Intervention{
					Section:    key,
					QuestionID: q.ID,
					Prompt:     q.Prompt,
					Answer:     status,
				})
			}
		}
	}
	return out
}

// Build computes the full projection for a project.
func Build(project *survey.Project) *Projection {
	tallies := TallyStatuses(project.Sections)

	var summaries []SectionSummary
	for _, key := range registry.SectionOrder() {
		counts, ok := tallies[key]
		if !ok {
			continue
		}
		summaries = append(summaries, SectionSummary{
			Section:           key,
			Title:             registry.PathwayTitle(key),
			Counts:            counts,
			CompletionPercent: CompletionPercent(counts),
		})
	}

	return &Projection{
		ProjectID:     project.ID,
		Sections:      summaries,
		Tallies:       tallies,
		Interventions: Interventions(project.Sections),
		Chart:         buildChart(summaries),
		ComputedAt:    time.Now(),
	}
}

// buildChart shapes the per-section tallies into one dataset per status,
// labelled by pathway title.
func buildChart(summaries []SectionSummary) ChartData {
	chart := ChartData{Labels: []string{}}
	for _, s := range summaries {
		chart.Labels = append(chart.Labels, s.Title)
	}
	for _, status := range survey.Statuses {
		ds := Dataset{Label: string(status), Data: make([]int, len(summaries))}
		for i, s := range summaries {
			ds.Data[i] = s.Counts[status]
		}
		chart.Datasets = append(chart.Datasets, ds)
	}
	return chart
}
