package review

import (
	"errors"
	"testing"

	"github.com/aliGhadyani/loupe/internal/language"
)

func TestReport_AppendAndSummary(t *testing.T) {
	r := NewReport("/repo")
	r.Append(Result{Path: "a.py", Outcome: OutcomeSuccess})
	r.Append(Result{Path: "b.go", Outcome: OutcomeFailure, Error: "boom"})
	r.Append(Result{Path: "c.js", Outcome: OutcomeSuccess})

	success, failure := r.Summary()
	if success != 2 || failure != 1 {
		t.Errorf("Summary() = (%d, %d), want (2, 1)", success, failure)
	}
	if r.RunID == "" {
		t.Error("RunID should be generated")
	}
}

func TestReport_PreservesInsertionOrder(t *testing.T) {
	r := NewReport("/repo")
	paths := []string{"z.go", "a.py", "m.js"}
	for _, p := range paths {
		r.Append(Result{Path: p, Outcome: OutcomeSuccess})
	}
	for i, p := range paths {
		if r.Results[i].Path != p {
			t.Errorf("Results[%d].Path = %q, want %q", i, r.Results[i].Path, p)
		}
	}
}

func TestReport_Finalize(t *testing.T) {
	r := NewReport("/repo")
	r.Append(Result{Path: "a.py", Outcome: OutcomeSuccess})
	r.Finalize([]string{"dir unreadable"})

	if !r.Finalized() {
		t.Error("Finalized() = false after Finalize")
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
	if len(r.Warnings) != 1 {
		t.Errorf("Warnings = %v", r.Warnings)
	}

	created := r.CreatedAt
	r.Finalize(nil)
	if !r.CreatedAt.Equal(created) {
		t.Error("second Finalize changed CreatedAt")
	}

	defer func() {
		if recover() == nil {
			t.Error("Append after Finalize should panic")
		}
	}()
	r.Append(Result{Path: "b.go"})
}

func TestReviewError_Unwrap(t *testing.T) {
	cause := errors.New("backend down")
	err := &ReviewError{Reviewer: "generative/ollama", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	var re *ReviewError
	if !errors.As(error(err), &re) {
		t.Error("errors.As should match *ReviewError")
	}
}

func TestResult_LanguageTag(t *testing.T) {
	res := Result{Path: "a.py", Language: language.TagPython, Outcome: OutcomeSuccess}
	if res.Language != "Python" {
		t.Errorf("Language = %q, want Python", res.Language)
	}
}
