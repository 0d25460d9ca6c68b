package scanner

import (
	"fmt"
	"io"
	"time"

	"brew-formatter/internal/formatter"
)

// Stats counts what happened during one scan. It belongs to the run that
// created it.
type Stats struct {
	Scanned   int
	Formatted int
	Skipped   int
	Errors    int
}

// Record folds one file's outcome into the counters. Scanned is counted by
// the walker, not here.
func (s *Stats) Record(out formatter.Outcome) {
	switch out.Status {
	case formatter.Formatted:
		s.Formatted++
	case formatter.Skipped:
		s.Skipped++
	case formatter.Errored:
		s.Errors++
	}
}

// WriteSummary prints the end-of-run report.
func (s Stats) WriteSummary(w io.Writer, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "   Files scanned:           %d\n", s.Scanned)
	fmt.Fprintf(w, "   Files formatted:         %d\n", s.Formatted)
	fmt.Fprintf(w, "   Files already formatted: %d\n", s.Skipped)
	fmt.Fprintf(w, "   Errors:                  %d\n", s.Errors)
	fmt.Fprintf(w, "   Duration:                %.2f seconds\n", elapsed.Seconds())
	fmt.Fprintln(w)

	switch {
	case s.Formatted > 0:
		fmt.Fprintln(w, "Formatting complete!")
	case s.Scanned > 0:
		fmt.Fprintln(w, "All files are already formatted!")
	default:
		fmt.Fprintln(w, "No files to format were found.")
	}
}
