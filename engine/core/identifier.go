package core

import "github.com/google/uuid"

// RunID identifies a single evaluation of the pipeline. Watch mode produces
// a new one for every re-run so log lines can be grouped.
type RunID string

func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// Short returns the first block of the id, enough to tell runs apart in a
// terminal.
func (r RunID) Short() string {
	s := string(r)
	if len(s) >= 8 {
		return s[:8]
	}
	return s
}
