// Package formwizard is the stepped form engine behind every registration
// workflow in the portal. A form is declared once as an ordered table of
// steps and fields; the engine owns value state, per-field validation and
// the synthesized review step.
package formwizard

import "regexp"

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeTel      FieldType = "tel"
	TypeDate     FieldType = "date"
	TypeTextarea FieldType = "textarea"
	TypeCheckbox FieldType = "checkbox"
)

// Values maps field names to their current raw values. Checkbox state is
// stored as the strings "true"/"false". Absent keys mean untouched.
type Values map[string]string

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Pattern couples a matcher with the message shown when it fails.
type Pattern struct {
	Matcher *regexp.Regexp
	Message string
}

// CustomRule inspects the whole snapshot, so it can express cross-field
// constraints. It runs last and its message, when non-empty, wins.
type CustomRule func(value string, values Values) string

type Rules struct {
	Required     bool
	Pattern      *Pattern
	MaxDateToday bool
	Custom       CustomRule
}

type FieldDef struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Rows        int
	Rules       Rules
}

// StepDef ids are contiguous starting at 1.
type StepDef struct {
	ID     int
	Title  string
	Fields []FieldDef
}

// Form is an immutable step table plus defaults and derivation rules,
// declared at module load.
type Form struct {
	Steps       []StepDef
	Defaults    Values
	Derivations []Derivation
}

// ReviewStepID is always lastRealStepID + 1.
func (f *Form) ReviewStepID() int {
	return len(f.Steps) + 1
}

// StepCount includes the synthesized review step.
func (f *Form) StepCount() int {
	return len(f.Steps) + 1
}

func (f *Form) Step(id int) (StepDef, bool) {
	if id < 1 || id > len(f.Steps) {
		return StepDef{}, false
	}
	return f.Steps[id-1], true
}

func (f *Form) Field(name string) (FieldDef, bool) {
	for _, step := range f.Steps {
		for _, field := range step.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return FieldDef{}, false
}

// FieldCount counts fields across all real steps.
func (f *Form) FieldCount() int {
	n := 0
	for _, step := range f.Steps {
		n += len(step.Fields)
	}
	return n
}
