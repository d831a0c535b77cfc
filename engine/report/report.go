// Package report renders a pipeline report for the terminal or as LaTeX.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

const (
	FormatText  = "text"
	FormatLaTeX = "latex"
)

// Options replace the near-identical report variants: one pipeline, with
// toggles for how much of it is printed.
type Options struct {
	// ShowSymbolic prints the unevaluated form next to each value.
	ShowSymbolic bool
	// ShowChecks prints the verification steps.
	ShowChecks bool
}

type Writer interface {
	Write(w io.Writer, r *pipeline.Report) error
}

func NewWriter(format string, opts Options) (Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return &textWriter{opts: opts}, nil
	case FormatLaTeX, "tex":
		return &latexWriter{opts: opts}, nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownFormat, format)
}

// visible filters the steps the options ask for, keeping pipeline order.
func visible(r *pipeline.Report, opts Options) []pipeline.Step {
	out := make([]pipeline.Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s.Kind == pipeline.StepCheck && !opts.ShowChecks {
			continue
		}
		out = append(out, s)
	}
	return out
}

func status(s pipeline.Step) string {
	if s.Passed {
		return "ok"
	}
	return "FAILED"
}
