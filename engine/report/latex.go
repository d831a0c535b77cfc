package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

type latexWriter struct {
	opts Options
}

func (l *latexWriter) Write(w io.Writer, r *pipeline.Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%% run %s, precision %d\n", r.RunID, r.Precision)

	for _, s := range visible(r, l.opts) {
		if s.Kind == pipeline.StepCheck {
			fmt.Fprintf(bw, "%% %s: %s\n", s.Name, status(s))
		} else {
			fmt.Fprintf(bw, "%% %s\n", s.Name)
		}
		fmt.Fprintf(bw, `\[ %s = `, s.Label)
		if l.opts.ShowSymbolic && s.Symbolic != nil {
			fmt.Fprintf(bw, `%s = `, s.Symbolic.LaTeX())
		}
		fmt.Fprintf(bw, "%s \\]\n", s.Value.LaTeX())
	}
	return bw.Flush()
}
