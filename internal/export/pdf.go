package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pathway-compass/survey-portal-backend/internal/projection"
	"pathway-compass/survey-portal-backend/internal/registry"
	"pathway-compass/survey-portal-backend/internal/survey"
)

// PDFOptions configures the review document.
type PDFOptions struct {
	Title       string
	FontFamily  string
	FontSize    float64
	HeaderColor [3]int
	DateFormat  string
}

// DefaultPDFOptions returns the portal's standard review layout.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Title:       "Pathway Assessment Review",
		FontFamily:  "Arial",
		FontSize:    10,
		HeaderColor: [3]int{68, 114, 196},
		DateFormat:  "2006-01-02",
	}
}

// ProjectPDF renders a project's full review document: header, answers
// per section, completion summary, and the interventions list.
func ProjectPDF(project *survey.Project, p *projection.Projection, options PDFOptions) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g := &pdfWriter{pdf: pdf, options: options}
	g.title(options.Title)
	g.subtitle(project.Name)
	g.meta(fmt.Sprintf("Progress: %d%%    Generated: %s", project.Progress, time.Now().Format(options.DateFormat)))
	pdf.Ln(6)

	for _, key := range registry.SectionOrder() {
		answers, ok := project.Sections[key]
		if !ok {
			continue
		}
		g.sectionHeading(sectionHeading(key))
		g.answerTable(key, answers)
		pdf.Ln(4)
	}

	if len(p.Sections) > 0 {
		g.sectionHeading("Completion Summary")
		g.summaryTable(p.Sections)
		pdf.Ln(4)
	}

	g.sectionHeading("Interventions Needed")
	if len(p.Interventions) == 0 {
		g.bodyText("No interventions needed.")
	} else {
		g.interventionTable(p.Interventions)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeading(key registry.SectionKey) string {
	if registry.IsPathway(key) {
		return fmt.Sprintf("%s (%s)", registry.PathwayTitle(key), key)
	}
	switch key {
	case registry.SectionRespondentDetails:
		return "Respondent Details"
	case registry.SectionProjectInformation:
		return "Project Information"
	}
	return string(key)
}

type pdfWriter struct {
	pdf     *gofpdf.Fpdf
	options PDFOptions
}

func (g *pdfWriter) title(text string) {
	g.pdf.SetFont(g.options.FontFamily, "B", 16)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
}

func (g *pdfWriter) subtitle(text string) {
	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize+2)
	g.pdf.SetTextColor(100, 100, 100)
	g.pdf.CellFormat(0, 8, text, "", 1, "C", false, 0, "")
}

func (g *pdfWriter) meta(text string) {
	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize-1)
	g.pdf.SetTextColor(128, 128, 128)
	g.pdf.CellFormat(0, 6, text, "", 1, "R", false, 0, "")
}

func (g *pdfWriter) sectionHeading(text string) {
	g.pdf.SetFont(g.options.FontFamily, "B", g.options.FontSize+2)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	g.pdf.Ln(1)
}

func (g *pdfWriter) bodyText(text string) {
	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
	g.pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}

func (g *pdfWriter) tableHeader(labels []string, widths []float64) {
	c := g.options.HeaderColor
	g.pdf.SetFont(g.options.FontFamily, "B", g.options.FontSize)
	g.pdf.SetFillColor(c[0], c[1], c[2])
	g.pdf.SetTextColor(255, 255, 255)
	for i, label := range labels {
		g.pdf.CellFormat(widths[i], 7, label, "1", 0, "C", true, 0, "")
	}
	g.pdf.Ln(-1)
	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
	g.pdf.SetTextColor(0, 0, 0)
}

func (g *pdfWriter) row(values []string, widths []float64, fill bool) {
	if fill {
		g.pdf.SetFillColor(242, 242, 242)
	} else {
		g.pdf.SetFillColor(255, 255, 255)
	}
	for i, v := range values {
		maxChars := int(widths[i] / 2)
		if maxChars > 3 && len(v) > maxChars {
			v = v[:maxChars-3] + "..."
		}
		g.pdf.CellFormat(widths[i], 6, v, "1", 0, "L", true, 0, "")
	}
	g.pdf.Ln(-1)
}

func (g *pdfWriter) answerTable(key registry.SectionKey, answers survey.SectionAnswers) {
	widths := []float64{95, 40, 45}
	g.tableHeader([]string{"Question", "Answer", "Observation"}, widths)

	i := 0
	for _, q := range registry.QuestionsFor(key) {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}
		g.row([]string{q.Prompt, answerText(a), a.Observation}, widths, i%2 == 1)
		i++
	}
	// Answers referencing ids outside the catalogue still render.
	for id, a := range answers {
		if _, ok := registry.LookupQuestion(id); !ok {
			g.row([]string{fmt.Sprintf("Unknown Question (%s)", id), answerText(a), a.Observation}, widths, i%2 == 1)
			i++
		}
	}
}

func (g *pdfWriter) summaryTable(sections []projection.SectionSummary) {
	widths := []float64{80, 50, 50}
	g.tableHeader([]string{"Pathway", "Answered", "Completion"}, widths)
	for i, s := range sections {
		g.row([]string{
			s.Title,
			fmt.Sprintf("%d", s.Counts.Total()),
			fmt.Sprintf("%d%%", s.CompletionPercent),
		}, widths, i%2 == 1)
	}
}

func (g *pdfWriter) interventionTable(interventions []projection.Intervention) {
	widths := []float64{45, 95, 40}
	g.tableHeader([]string{"Pathway", "Question", "Answer"}, widths)
	for i, iv := range interventions {
		g.row([]string{
			registry.PathwayTitle(iv.Section),
			iv.Prompt,
			string(iv.Answer),
		}, widths, i%2 == 1)
	}
}

func answerText(a survey.Answer) string {
	if a.IsMulti() {
		return strings.Join(a.Values, ", ")
	}
	return a.Value
}
