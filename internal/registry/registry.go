package registry

// SectionKey identifies one of the twelve wizard sections.
type SectionKey string

const (
	SectionRespondentDetails  SectionKey = "RespondentDetails"
	SectionProjectInformation SectionKey = "ProjectInformation"
	SectionPathway1           SectionKey = "Pathway1"
	SectionPathway2           SectionKey = "Pathway2"
	SectionPathway3           SectionKey = "Pathway3"
	SectionPathway4           SectionKey = "Pathway4"
	SectionPathway5           SectionKey = "Pathway5"
	SectionPathway6           SectionKey = "Pathway6"
	SectionPathway7           SectionKey = "Pathway7"
	SectionPathway8           SectionKey = "Pathway8"
	SectionPathway9           SectionKey = "Pathway9"
	SectionPathway10          SectionKey = "Pathway10"
)

// QuestionKind distinguishes how a question is answered.
type QuestionKind string

const (
	KindFreeText     QuestionKind = "free_text"
	KindSingleChoice QuestionKind = "single_choice"
	KindMultiChoice  QuestionKind = "multi_choice"
)

// Question is a static question definition. Defined at build time,
// immutable at runtime.
type Question struct {
	ID       string       `json:"id"`
	Prompt   string       `json:"prompt"`
	Section  SectionKey   `json:"section"`
	Kind     QuestionKind `json:"kind"`
	Required bool         `json:"required"`
}

// TotalSteps is the number of wizard steps: two lead-in sections plus
// ten pathways.
const TotalSteps = 12

var sectionOrder = [TotalSteps]SectionKey{
	SectionRespondentDetails,
	SectionProjectInformation,
	SectionPathway1,
	SectionPathway2,
	SectionPathway3,
	SectionPathway4,
	SectionPathway5,
	SectionPathway6,
	SectionPathway7,
	SectionPathway8,
	SectionPathway9,
	SectionPathway10,
}

var (
	questionsBySection map[SectionKey][]Question
	questionsByID      map[string]Question
	stepBySection      map[SectionKey]int
)

func init() {
	questionsBySection = make(map[SectionKey][]Question, TotalSteps)
	questionsByID = make(map[string]Question, len(catalogue))
	stepBySection = make(map[SectionKey]int, TotalSteps)

	for _, q := range catalogue {
		questionsBySection[q.Section] = append(questionsBySection[q.Section], q)
		questionsByID[q.ID] = q
	}
	for i, key := range sectionOrder {
		stepBySection[key] = i + 1
	}
}

// SectionOrder returns the twelve section keys in presentation order.
// The returned slice is a copy; callers may mutate it freely.
func SectionOrder() []SectionKey {
	out := make([]SectionKey, TotalSteps)
	copy(out[:], sectionOrder[:])
	return out
}

// QuestionsFor returns the questions of a section in presentation order,
// or nil for an unknown section key.
func QuestionsFor(key SectionKey) []Question {
	qs := questionsBySection[key]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// LookupQuestion resolves a question id. The boolean is false for ids
// absent from the catalogue; callers render those as "Unknown Question"
// rather than failing.
func LookupQuestion(id string) (Question, bool) {
	q, ok := questionsByID[id]
	return q, ok
}

// StepFor maps a section key to its 1-based wizard step, or 0 for an
// unknown key.
func StepFor(key SectionKey) int {
	return stepBySection[key]
}

// SectionFor maps a 1-based wizard step to its section key.
func SectionFor(step int) (SectionKey, bool) {
	if step < 1 || step > TotalSteps {
		return "", false
	}
	return sectionOrder[step-1], true
}

// IsPathway reports whether the key names one of the ten pathway sections.
func IsPathway(key SectionKey) bool {
	step, ok := stepBySection[key]
	return ok && step > 2
}

// PathwayTitle returns the display title of a pathway section, or the raw
// key for non-pathway keys.
func PathwayTitle(key SectionKey) string {
	if title, ok := pathwayTitles[key]; ok {
		return title
	}
	return string(key)
}
