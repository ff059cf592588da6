package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pathway-compass/survey-portal-backend/internal/projection"
	"pathway-compass/survey-portal-backend/internal/registry"
	"pathway-compass/survey-portal-backend/internal/survey"
)

const (
	answersSheet = "Answers"
	summarySheet = "Summary"
)

// ProjectExcel renders a project's answers and per-pathway tallies as a
// two-sheet workbook.
func ProjectExcel(project *survey.Project, p *projection.Projection) ([]byte, error) {
	file := excelize.NewFile()
	file.SetSheetName("Sheet1", answersSheet)
	if _, err := file.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeAnswersSheet(file, project, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(file, p, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAnswersSheet(file *excelize.File, project *survey.Project, headerStyle int) error {
	headers := []string{"Section", "Question ID", "Question", "Answer", "Observation"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(answersSheet, cell, h)
		file.SetCellStyle(answersSheet, cell, cell, headerStyle)
	}

	row := 2
	for _, key := range registry.SectionOrder() {
		answers, ok := project.Sections[key]
		if !ok {
			continue
		}
		for _, q := range registry.QuestionsFor(key) {
			a, ok := answers[q.ID]
			if !ok {
				continue
			}
			writeAnswerRow(file, row, sectionHeading(key), q.ID, q.Prompt, a)
			row++
		}
		for id, a := range answers {
			if _, ok := registry.LookupQuestion(id); !ok {
				writeAnswerRow(file, row, sectionHeading(key), id, "Unknown Question", a)
				row++
			}
		}
	}

	file.SetColWidth(answersSheet, "A", "A", 24)
	file.SetColWidth(answersSheet, "C", "C", 60)
	file.SetColWidth(answersSheet, "D", "E", 24)
	if row > 2 {
		file.AutoFilter(answersSheet, fmt.Sprintf("A1:E%d", row-1), nil)
	}
	return nil
}

func writeAnswerRow(file *excelize.File, row int, section, id, prompt string, a survey.Answer) {
	values := []interface{}{section, id, prompt, answerText(a), a.Observation}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		file.SetCellValue(answersSheet, cell, v)
	}
}

func writeSummarySheet(file *excelize.File, p *projection.Projection, headerStyle int) error {
	headers := []string{"Pathway"}
	for _, status := range survey.Statuses {
		headers = append(headers, string(status))
	}
	headers = append(headers, "Completion %")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(summarySheet, cell, h)
		file.SetCellStyle(summarySheet, cell, cell, headerStyle)
	}

	for rowIdx, s := range p.Sections {
		values := []interface{}{s.Title}
		for _, status := range survey.Statuses {
			values = append(values, s.Counts[status])
		}
		values = append(values, s.CompletionPercent)
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			file.SetCellValue(summarySheet, cell, v)
		}
	}

	file.SetColWidth(summarySheet, "A", "A", 28)
	return nil
}
