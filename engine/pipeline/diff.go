package pipeline

// Changed lists the steps of r whose value differs from the step of the
// same name in prev, plus steps prev does not have.
func (r *Report) Changed(prev *Report) []string {
	var out []string
	for _, s := range r.Steps {
		old, ok := prev.Step(s.Name)
		if !ok || !old.Value.Equal(s.Value) || old.Passed != s.Passed {
			out = append(out, s.Name)
		}
	}
	return out
}
