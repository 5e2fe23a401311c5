package formwizard

// ReviewRow is one field on the read-only summary. Display carries the
// friendlier label supplied by a picker when the stored value is an
// internal code; consumers fall back to Value when it is empty.
type ReviewRow struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Display string `json:"display,omitempty"`
}

// StepSummary is one real step on the review page, with an edit target
// pointing back at the step.
type StepSummary struct {
	StepID int         `json:"stepId"`
	Title  string      `json:"title"`
	Rows   []ReviewRow `json:"rows"`
}

// Review renders every real step in order. Pure presentation over the
// store's current state; it mutates nothing.
func (s *Store) Review() []StepSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]StepSummary, 0, len(s.form.Steps))
	for _, step := range s.form.Steps {
		rows := make([]ReviewRow, 0, len(step.Fields))
		for _, field := range step.Fields {
			rows = append(rows, ReviewRow{
				Name:    field.Name,
				Label:   field.Label,
				Value:   s.values[field.Name],
				Display: s.display[field.Name],
			})
		}
		summaries = append(summaries, StepSummary{
			StepID: step.ID,
			Title:  step.Title,
			Rows:   rows,
		})
	}
	return summaries
}
