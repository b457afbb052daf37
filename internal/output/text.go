package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/aliGhadyani/loupe/internal/review"
)

var (
	headerColor = color.New(color.FgHiCyan, color.Bold).SprintFunc()
	okColor     = color.New(color.FgHiGreen).SprintFunc()
	failColor   = color.New(color.FgHiRed).SprintFunc()
	warnColor   = color.New(color.FgHiYellow).SprintFunc()
)

// TextWriter renders a human-readable terminal report: a summary table of
// outcomes followed by one feedback block per file.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	success, failure := report.Summary()
	ew.printf("%s\n", headerColor("Loupe Code Review"))
	ew.printf("Run %s over %s\n", report.RunID, report.Root)
	ew.printf("Created %s\n", report.CreatedAt.UTC().Format(time.RFC3339))
	ew.printf("%s\n", strings.Repeat("─", 60))
	ew.printf("Files: %d total (%d succeeded, %d failed)\n\n",
		len(report.Results), success, failure)

	if len(report.Results) == 0 {
		ew.printf("No reviewable files found.\n")
		return ew.err
	}
	if ew.err != nil {
		return ew.err
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"File", "Language", "Reviewer", "Outcome"})
	for _, res := range report.Results {
		outcome := okColor("ok")
		if res.Outcome == review.OutcomeFailure {
			outcome = failColor("failed")
		}
		table.Append([]string{res.Path, string(res.Language), res.Reviewer, outcome})
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, res := range report.Results {
		ew.printf("\n%s\n", strings.Repeat("─", 60))
		ew.printf("%s  (%s, %dms)\n\n", res.Path, res.Language, res.DurationMs)
		if res.Outcome == review.OutcomeFailure {
			ew.printf("%s %s\n", failColor("review failed:"), res.Error)
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(res.Feedback, "\n"), "\n") {
			ew.printf("  %s\n", line)
		}
	}

	if len(report.Warnings) > 0 {
		ew.printf("\n%s\n", warnColor("Discovery warnings:"))
		for _, warning := range report.Warnings {
			ew.printf("  - %s\n", warning)
		}
	}

	ew.printf("%s\n", strings.Repeat("─", 60))
	return ew.err
}

// Summary returns a one-line digest suitable for notifications.
func Summary(report *review.Report) string {
	success, failure := report.Summary()
	return fmt.Sprintf("Code review completed: %d files reviewed, %d succeeded, %d failed (run %s)",
		len(report.Results), success, failure, report.RunID)
}
