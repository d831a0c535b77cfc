package pipeline

import (
	"github.com/Precipitator80/CS4102-Practical-1/engine/algebra"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

type StepKind uint8

const (
	// A stage of the composition pipeline.
	StepStage StepKind = iota
	// A verification of an earlier stage.
	StepCheck
)

// Step is one printed result. Value is evaluated and rounded; Symbolic is
// the unevaluated form, or nil when it is too large to be worth printing.
type Step struct {
	Name     string
	Label    string
	Kind     StepKind
	Symbolic *algebra.Matrix
	Value    *algebra.Matrix
	// Passed is only meaningful for checks.
	Passed bool
	Note   string
}

// Report holds the steps of a run in pipeline order.
type Report struct {
	RunID     core.RunID
	Precision int
	Steps     []Step
}

// Step looks up a step by name.
func (r *Report) Step(name string) (Step, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Kind == StepCheck && !s.Passed {
			out = append(out, s)
		}
	}
	return out
}
