package output

import (
	"fmt"
	"io"
	"time"

	"github.com/aliGhadyani/loupe/internal/review"
)

// MarkdownWriter renders the report as a markdown document: one block per
// file, in discovery order. The output is stable for a given report value.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("# Code Review Report\n\n")
	ew.printf("Run `%s` over `%s`, created %s.\n\n",
		report.RunID, report.Root, report.CreatedAt.UTC().Format(time.RFC3339))

	success, failure := report.Summary()
	ew.printf("Files reviewed: %d (%d succeeded, %d failed)\n\n",
		len(report.Results), success, failure)

	for _, res := range report.Results {
		ew.printf("## %s\n\n", res.Path)
		if res.Outcome == review.OutcomeFailure {
			ew.printf("**Review failed:** %s\n\n", res.Error)
			continue
		}
		ew.printf("```\n%s\n```\n\n", res.Feedback)
	}

	if len(report.Warnings) > 0 {
		ew.printf("## Discovery warnings\n\n")
		for _, warning := range report.Warnings {
			ew.printf("- %s\n", warning)
		}
		ew.printf("\n")
	}

	return ew.err
}

// errWriter captures the first write error so render code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
