package survey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"pathway-compass/survey-portal-backend/internal/registry"
)

// Status is the closed answer enum for single-choice pathway questions.
// The literal strings match the persisted document values.
type Status string

const (
	StatusPlanned       Status = "Planned"
	StatusOngoing       Status = "Ongoing"
	StatusCompleted     Status = "Completed"
	StatusNotApplicable Status = "Not Applicable"
	StatusNotInFocus    Status = "Not in Focus"
)

// Statuses lists the enum values in chart label order.
var Statuses = []Status{
	StatusCompleted,
	StatusOngoing,
	StatusPlanned,
	StatusNotApplicable,
	StatusNotInFocus,
}

// ParseStatus reports whether a raw answer value is one of the closed enum.
func ParseStatus(v string) (Status, bool) {
	switch Status(v) {
	case StatusPlanned, StatusOngoing, StatusCompleted, StatusNotApplicable, StatusNotInFocus:
		return Status(v), true
	}
	return "", false
}

// Answer is the response to a single question: either a single value
// (choice or free text) or a set of tags for the multi-select question,
// plus an optional free-text observation. Its wire form is
// {answer: string | [string], observation: string}; which variant is
// written follows from which field is set, keyed by the question kind.
type Answer struct {
	Value       string
	Values      []string
	Observation string
}

// SingleAnswer builds a single-value answer.
func SingleAnswer(value string) Answer {
	return Answer{Value: value}
}

// MultiAnswer builds a tag-set answer.
func MultiAnswer(values ...string) Answer {
	return Answer{Values: values}
}

// IsMulti reports whether the answer carries a tag set.
func (a Answer) IsMulti() bool {
	return a.Values != nil
}

// Answered reports whether the answer carries a non-empty value.
// An absent map key means unanswered; an empty string present in
// storage also counts as unanswered for validation purposes.
func (a Answer) Answered() bool {
	if a.IsMulti() {
		return len(a.Values) > 0
	}
	return a.Value != ""
}

// Status returns the answer's closed-enum value, if it has one.
// Tag sets and free text never parse as a status.
func (a Answer) Status() (Status, bool) {
	if a.IsMulti() {
		return "", false
	}
	return ParseStatus(a.Value)
}

type answerWire struct {
	Answer      json.RawMessage `json:"answer,omitempty"`
	Observation string          `json:"observation,omitempty"`
}

// MarshalJSON writes the persisted shape, with answer as a bare string
// for single-value answers and an array for tag sets.
func (a Answer) MarshalJSON() ([]byte, error) {
	w := answerWire{Observation: a.Observation}
	var err error
	if a.IsMulti() {
		w.Answer, err = json.Marshal(a.Values)
	} else if a.Value != "" {
		w.Answer, err = json.Marshal(a.Value)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts both variants of the answer field.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var w answerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*a = Answer{Observation: w.Observation}
	if len(w.Answer) == 0 {
		return nil
	}
	if bytes.HasPrefix(bytes.TrimSpace(w.Answer), []byte("[")) {
		return json.Unmarshal(w.Answer, &a.Values)
	}
	return json.Unmarshal(w.Answer, &a.Value)
}

type answerBSON struct {
	Answer      interface{} `bson:"answer,omitempty"`
	Observation string      `bson:"observation,omitempty"`
}

// MarshalBSON mirrors the JSON shape in the stored document.
func (a Answer) MarshalBSON() ([]byte, error) {
	doc := answerBSON{Observation: a.Observation}
	if a.IsMulti() {
		doc.Answer = a.Values
	} else if a.Value != "" {
		doc.Answer = a.Value
	}
	return bson.Marshal(doc)
}

// UnmarshalBSON accepts both a string and an array answer field.
func (a *Answer) UnmarshalBSON(data []byte) error {
	var raw struct {
		Answer      bson.RawValue `bson:"answer"`
		Observation string        `bson:"observation"`
	}
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Answer{Observation: raw.Observation}
	switch raw.Answer.Type {
	case 0, bson.TypeNull:
		return nil
	case bson.TypeString:
		a.Value = raw.Answer.StringValue()
		return nil
	case bson.TypeArray:
		values, err := raw.Answer.Array().Values()
		if err != nil {
			return err
		}
		a.Values = make([]string, 0, len(values))
		for _, v := range values {
			s, ok := v.StringValueOK()
			if !ok {
				return fmt.Errorf("answer array element has type %s, want string", v.Type)
			}
			a.Values = append(a.Values, s)
		}
		return nil
	default:
		return fmt.Errorf("answer has type %s, want string or array", raw.Answer.Type)
	}
}

// SectionAnswers maps question ids to answers. Absence of a key means
// the question is unanswered.
type SectionAnswers map[string]Answer

// Clone returns a deep copy.
func (sa SectionAnswers) Clone() SectionAnswers {
	if sa == nil {
		return nil
	}
	out := make(SectionAnswers, len(sa))
	for id, a := range sa {
		if a.Values != nil {
			a.Values = append([]string(nil), a.Values...)
		}
		out[id] = a
	}
	return out
}

// SectionMap maps section keys to their answers.
type SectionMap map[registry.SectionKey]SectionAnswers

// Clone returns a deep copy.
func (sm SectionMap) Clone() SectionMap {
	if sm == nil {
		return nil
	}
	out := make(SectionMap, len(sm))
	for key, answers := range sm {
		out[key] = answers.Clone()
	}
	return out
}

// Project is one survey project owned by a single user. Progress is
// stored redundantly for list views; it is rewritten only on step
// completion, so edits to earlier sections can leave it stale (known
// limitation, surfaced by the drift audit job rather than corrected).
type Project struct {
	ID        string     `bson:"id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Details   string     `bson:"details,omitempty" json:"details,omitempty"`
	Progress  int        `bson:"progress" json:"progress"`
	Sections  SectionMap `bson:"sections,omitempty" json:"sections,omitempty"`
	Submitted bool       `bson:"submitted,omitempty" json:"submitted,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p
	out.Sections = p.Sections.Clone()
	return &out
}
