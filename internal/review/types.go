package review

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aliGhadyani/loupe/internal/language"
)

// Outcome is the result state of one file's review.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Result is the review outcome for a single file. Exactly one Result exists
// per discovered file in a run.
type Result struct {
	Path       string       `json:"path"`
	Language   language.Tag `json:"language"`
	Reviewer   string       `json:"reviewer"`
	Outcome    Outcome      `json:"outcome"`
	Feedback   string       `json:"feedback,omitempty"`
	Error      string       `json:"error,omitempty"`
	DurationMs int64        `json:"durationMs"`
}

// Report is the ordered collection of per-file results for one run.
// Results appear in discovery order. Once finalized it must not change.
type Report struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	RunID     string    `json:"runId"`
	Root      string    `json:"root"`
	CreatedAt time.Time `json:"createdAt"`
	Results   []Result  `json:"results"`
	Warnings  []string  `json:"warnings,omitempty"`

	finalized bool
}

// NewReport creates an empty report for the given root.
func NewReport(root string) *Report {
	return &Report{
		Tool:    "loupe",
		Version: "1.0",
		RunID:   ulid.Make().String(),
		Root:    root,
		Results: []Result{},
	}
}

// Append adds a result. Appending to a finalized report is a programming
// error and panics.
func (r *Report) Append(res Result) {
	if r.finalized {
		panic("review: append to finalized report")
	}
	r.Results = append(r.Results, res)
}

// Finalize stamps the creation time, attaches discovery warnings, and
// freezes the report against further appends.
func (r *Report) Finalize(warnings []string) {
	if r.finalized {
		return
	}
	r.CreatedAt = time.Now().UTC()
	r.Warnings = warnings
	r.finalized = true
}

// Finalized reports whether Finalize has been called.
func (r *Report) Finalized() bool { return r.finalized }

// Summary returns the success and failure counts.
func (r *Report) Summary() (success, failure int) {
	for _, res := range r.Results {
		if res.Outcome == OutcomeSuccess {
			success++
		} else {
			failure++
		}
	}
	return success, failure
}

// ReviewError is a reviewer or backend failure for one file. It is recorded
// as a Failure result and never aborts the run.
type ReviewError struct {
	Reviewer string
	Err      error
}

func (e *ReviewError) Error() string {
	return fmt.Sprintf("%s: %v", e.Reviewer, e.Err)
}

func (e *ReviewError) Unwrap() error { return e.Err }
