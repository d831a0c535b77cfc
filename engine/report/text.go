package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

const indent = "    "

type textWriter struct {
	opts Options
}

func (t *textWriter) Write(w io.Writer, r *pipeline.Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "run %s (precision %d)\n", r.RunID, r.Precision)

	for _, s := range visible(r, t.opts) {
		fmt.Fprintln(bw)
		if s.Kind == pipeline.StepCheck {
			fmt.Fprintf(bw, "== %s [%s] ==\n", s.Name, status(s))
		} else {
			fmt.Fprintf(bw, "== %s ==\n", s.Name)
		}
		if s.Note != "" {
			fmt.Fprintf(bw, "%s%s\n", indent, s.Note)
		}
		if t.opts.ShowSymbolic && s.Symbolic != nil {
			fmt.Fprintf(bw, "%ssymbolic:\n", indent)
			for _, line := range strings.Split(s.Symbolic.String(), "\n") {
				fmt.Fprintf(bw, "%s%s\n", indent, line)
			}
		}
		d, err := s.Value.Numeric()
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		fmt.Fprintf(bw, "%s%.*f\n", indent, r.Precision, mat.Formatted(d, mat.Prefix(indent), mat.Squeeze()))
	}
	return bw.Flush()
}
