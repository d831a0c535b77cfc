package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Precipitator80/CS4102-Practical-1/engine/algebra"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

func sampleReport() *pipeline.Report {
	sigma := algebra.NewSymbol("sigma", `\sigma`)
	return &pipeline.Report{
		RunID:     core.RunID("0123456789abcdef"),
		Precision: 2,
		Steps: []pipeline.Step{
			{
				Name:     "scale",
				Label:    `S`,
				Kind:     pipeline.StepStage,
				Symbolic: algebra.ColumnVector(sigma),
				Value:    algebra.ColumnVector(algebra.N(1.5)),
			},
			{
				Name:   "scale positive",
				Label:  `S > 0`,
				Kind:   pipeline.StepCheck,
				Value:  algebra.ColumnVector(algebra.N(1)),
				Passed: false,
				Note:   "scale must be positive",
			},
		},
	}
}

func write(t *testing.T, format string, opts Options) string {
	t.Helper()
	w, err := NewWriter(format, opts)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, sampleReport()))
	return buf.String()
}

func TestText(t *testing.T) {
	out := write(t, FormatText, Options{})

	require.Contains(t, out, "run 0123456789abcdef (precision 2)")
	require.Contains(t, out, "== scale ==")
	require.Contains(t, out, "1.50")
	require.NotContains(t, out, "scale positive")
	require.NotContains(t, out, "sigma")
}

func TestText_Toggles(t *testing.T) {
	out := write(t, FormatText, Options{ShowSymbolic: true, ShowChecks: true})

	require.Contains(t, out, "symbolic:")
	require.Contains(t, out, "[sigma]")
	require.Contains(t, out, "== scale positive [FAILED] ==")
	require.Contains(t, out, "scale must be positive")
}

func TestLaTeX(t *testing.T) {
	out := write(t, FormatLaTeX, Options{})

	require.Contains(t, out, `\[ S = \begin{bmatrix} 1.5 \end{bmatrix} \]`)
	require.NotContains(t, out, `S > 0`)
}

func TestLaTeX_Toggles(t *testing.T) {
	out := write(t, "tex", Options{ShowSymbolic: true, ShowChecks: true})

	require.Contains(t, out, `\[ S = \begin{bmatrix} \sigma \end{bmatrix} = \begin{bmatrix} 1.5 \end{bmatrix} \]`)
	require.Contains(t, out, "% scale positive: FAILED")
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	_, err := NewWriter("pdf", Options{})

	require.True(t, errors.Is(err, core.ErrUnknownFormat))
}

func TestText_PipelineReport(t *testing.T) {
	w, err := NewWriter("", Options{ShowChecks: true})
	require.NoError(t, err)

	r := &pipeline.Report{RunID: core.NewRunID(), Precision: 3, Steps: []pipeline.Step{{
		Name:  "identity",
		Kind:  pipeline.StepStage,
		Value: algebra.Identity(2),
	}}}
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, r))
	require.Contains(t, buf.String(), "1.000")
}
