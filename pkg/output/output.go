// Package output renders check results for a terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/installcheck/pkg/check"
	"github.com/vertti/installcheck/pkg/verifier"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	bold  = "\033[1m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, bold, dim, reset = "", "", "", "", ""
	}
}

// formatLabel dims the "kind:" prefix of a check name.
func formatLabel(name string) string {
	kind, rest, ok := strings.Cut(name, ": ")
	if !ok {
		return name
	}
	return fmt.Sprintf("%s%s:%s %s", dim, kind, reset, rest)
}

// PrintResult writes a check result with colored status. Details are indented
// to line up with the check name.
func PrintResult(w io.Writer, r check.Result) {
	tag, color := "[OK]", green
	if !r.OK() {
		tag, color = "[FAIL]", red
	}
	_, _ = fmt.Fprintf(w, "%s%s%s %s\n", color, tag, reset, formatLabel(r.Name))

	indent := strings.Repeat(" ", len(tag)+1)
	for _, d := range r.Details {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, d)
	}
}

// PrintOutcomes writes every outcome grouped under its phase, followed by a
// one-line summary.
func PrintOutcomes(w io.Writer, outcomes []verifier.Outcome) {
	var current verifier.Phase
	failed := 0
	for _, o := range outcomes {
		if o.Phase != current {
			if current != "" {
				_, _ = fmt.Fprintln(w)
			}
			current = o.Phase
			_, _ = fmt.Fprintf(w, "%s== %s ==%s\n", bold, current, reset)
		}
		PrintResult(w, o.Result)
		if !o.Result.OK() {
			failed++
		}
	}
	PrintSummary(w, len(outcomes), failed)
}

// PrintSummary writes the pass/fail totals.
func PrintSummary(w io.Writer, total, failed int) {
	color := green
	if failed > 0 {
		color = red
	}
	_, _ = fmt.Fprintf(w, "\n%s%d checks, %d passed, %d failed%s\n", color, total, total-failed, failed, reset)
}
