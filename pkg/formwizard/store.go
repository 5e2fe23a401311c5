package formwizard

import (
	"sync"
	"time"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
)

// Store holds the live state of one wizard: field values, the per-field
// error map, the active step pointer and the submission-in-flight flag.
// It has no persistence; it is discarded when its session ends.
type Store struct {
	mu      sync.Mutex
	form    *Form
	values  Values
	display Values
	errors  map[string]string
	active  int
	dirty   bool

	submitting bool

	now func() time.Time
}

func NewStore(form *Form, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		form:    form,
		values:  Values{},
		display: Values{},
		errors:  map[string]string{},
		active:  1,
		now:     now,
	}
	for name, value := range form.Defaults {
		s.values[name] = value
	}
	return s
}

// Overlay merges a fetched record on top of the defaults, for editing an
// existing registration. It does not mark the form dirty.
func (s *Store) Overlay(record Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, value := range record {
		s.values[name] = value
	}
}

func (s *Store) today() string {
	return dateutil.Today(s.now())
}

// SetField stores the raw value verbatim and re-validates only that field
// (plus any fields derived from it) against the post-update snapshot.
func (s *Store) SetField(name, raw string) {
	s.SetMany(Values{name: raw})
}

// SetMany applies the patch atomically, runs derivation rules for patched
// source fields, then validates exactly the patched and derived fields
// against the combined snapshot.
func (s *Store) SetMany(patch Values) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, value := range patch {
		s.values[name] = value
	}
	s.dirty = true

	derived := applyDerivations(s.form.Derivations, patch, s.values.Clone())
	for name, value := range derived {
		s.values[name] = value
	}

	today := s.today()
	snapshot := s.values.Clone()
	for name := range patch {
		s.revalidate(name, snapshot, today)
	}
	for name := range derived {
		if _, alsoPatched := patch[name]; alsoPatched {
			continue
		}
		s.revalidate(name, snapshot, today)
	}
}

// revalidate updates one error-map entry. A field that turned valid gets
// exactly "" so its entry is never left stale.
func (s *Store) revalidate(name string, snapshot Values, today string) {
	field, ok := s.form.Field(name)
	if !ok {
		return
	}
	s.errors[name] = Validate(field, snapshot[name], snapshot, today)
}

// SetDisplay records the human label behind a picker-supplied code. It is
// an overlay for the review step only and never feeds validation.
func (s *Store) SetDisplay(name, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display[name] = label
}

// ValidateStep revalidates every field of the given step and reports
// whether the step is fully valid.
func (s *Store) ValidateStep(stepID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateStepLocked(stepID)
}

func (s *Store) validateStepLocked(stepID int) bool {
	if stepID == s.form.ReviewStepID() {
		return true
	}
	step, ok := s.form.Step(stepID)
	if !ok {
		return false
	}
	today := s.today()
	snapshot := s.values.Clone()
	valid := true
	for _, field := range step.Fields {
		msg := Validate(field, snapshot[field.Name], snapshot, today)
		s.errors[field.Name] = msg
		if msg != "" {
			valid = false
		}
	}
	return valid
}

// ValidateAll validates every field of every real step in order, with no
// short-circuiting, so the review summary can show every error at once.
// firstInvalid is 0 when the form is fully valid.
func (s *Store) ValidateAll() (ok bool, firstInvalid int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateAllLocked()
}

func (s *Store) validateAllLocked() (bool, int) {
	firstInvalid := 0
	for _, step := range s.form.Steps {
		if !s.validateStepLocked(step.ID) && firstInvalid == 0 {
			firstInvalid = step.ID
		}
	}
	return firstInvalid == 0, firstInvalid
}

// Advance moves to the next step, gated on the current step being valid.
func (s *Store) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validateStepLocked(s.active) {
		return false
	}
	if s.active < s.form.StepCount() {
		s.active++
	}
	return true
}

func (s *Store) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active > 1 {
		s.active--
	}
}

// JumpTo services the review step's per-step Edit action: it moves the
// pointer without touching values or errors.
func (s *Store) JumpTo(stepID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stepID >= 1 && stepID <= s.form.StepCount() {
		s.active = stepID
	}
}

// SetActive is used after a failed whole-form validation to land the user
// on the first step containing an error.
func (s *Store) SetActive(stepID int) {
	s.JumpTo(stepID)
}

func (s *Store) ActiveStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Store) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Clone()
}

func (s *Store) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

func (s *Store) Error(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[name]
}

func (s *Store) Form() *Form {
	return s.form
}

// BeginSubmit acquires the in-flight guard. Duplicate submits while one is
// outstanding are rejected.
func (s *Store) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

// EndSubmit clears the guard. It runs on every submission path, success or
// failure, so the submit control can never stay stuck.
func (s *Store) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *Store) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}
