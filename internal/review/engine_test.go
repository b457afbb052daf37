package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aliGhadyani/loupe/internal/cache"
	"github.com/aliGhadyani/loupe/internal/discover"
	"github.com/aliGhadyani/loupe/internal/ignore"
	"github.com/aliGhadyani/loupe/internal/language"
)

// fakeReviewer lets tests script reviewer behavior per call.
type fakeReviewer struct {
	name     string
	feedback string
	err      error
	panicMsg string
	calls    int
}

func (f *fakeReviewer) Name() string { return f.name }

func (f *fakeReviewer) Review(ctx context.Context, path, content string) (string, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return "", f.err
	}
	if err := ctx.Err(); err != nil {
		return "", &ReviewError{Reviewer: f.name, Err: err}
	}
	if f.feedback != "" {
		return f.feedback, nil
	}
	return "ok: " + path, nil
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func runEngine(t *testing.T, root string, patterns []string, reg *Registry, opts Options) *Report {
	t.Helper()
	w := discover.New(root, ignore.Compile(patterns))
	report, err := NewEngine(reg, nil, opts).Run(context.Background(), w)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return report
}

func allSuccessRegistry() *Registry {
	reg := NewRegistry()
	for _, tag := range language.Known() {
		reg.Register(tag, &fakeReviewer{name: "fake/" + string(tag)})
	}
	return reg
}

func TestEngine_OneResultPerFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":     "print(1)\n",
		"b.js":     "var x = 1\n",
		"sub/c.go": "package c\n",
	})

	report := runEngine(t, root, nil, allSuccessRegistry(), Options{})

	want := []string{"a.py", "b.js", "sub/c.go"}
	if len(report.Results) != len(want) {
		t.Fatalf("got %d results, want %d", len(report.Results), len(want))
	}
	for i, path := range want {
		if report.Results[i].Path != path {
			t.Errorf("Results[%d].Path = %q, want %q", i, report.Results[i].Path, path)
		}
		if report.Results[i].Outcome != OutcomeSuccess {
			t.Errorf("Results[%d] outcome = %q", i, report.Results[i].Outcome)
		}
	}
	if !report.Finalized() {
		t.Error("report not finalized")
	}
}

// One reviewer failing deterministically yields one Failure and leaves
// every other file's Success intact.
func TestEngine_FaultIsolation(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "print(1)\n",
		"x.go": "package main\n",
		"z.rb": "puts 1\n",
	})

	reg := allSuccessRegistry()
	reg.Register(language.TagGo, &fakeReviewer{
		name: "fake/go",
		err:  &ReviewError{Reviewer: "fake/go", Err: errors.New("tool exploded")},
	})

	report := runEngine(t, root, nil, reg, Options{})

	byPath := make(map[string]Result)
	for _, res := range report.Results {
		byPath[res.Path] = res
	}
	if byPath["x.go"].Outcome != OutcomeFailure {
		t.Error("x.go should be a Failure")
	}
	if byPath["x.go"].Error == "" {
		t.Error("x.go Failure should carry a cause")
	}
	for _, p := range []string{"a.py", "z.rb"} {
		if byPath[p].Outcome != OutcomeSuccess {
			t.Errorf("%s should be a Success, got %q (%s)", p, byPath[p].Outcome, byPath[p].Error)
		}
	}
}

func TestEngine_PanickingReviewerIsIsolated(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "x\n", "b.py": "y\n"})

	reg := NewRegistry()
	first := true
	reg.Register(language.TagPython, reviewerFunc(func(ctx context.Context, path, content string) (string, error) {
		if first {
			first = false
			panic("reviewer bug")
		}
		return "fine", nil
	}))

	report := runEngine(t, root, nil, reg, Options{})
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	if report.Results[0].Outcome != OutcomeFailure {
		t.Error("panicked file should be a Failure")
	}
	if report.Results[1].Outcome != OutcomeSuccess {
		t.Error("subsequent file should still succeed")
	}
}

func TestEngine_UnreadableFileIsFailure(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	root := writeTree(t, map[string]string{"ok.py": "x\n", "locked.py": "y\n"})
	if err := os.Chmod(filepath.Join(root, "locked.py"), 0o000); err != nil {
		t.Fatal(err)
	}

	report := runEngine(t, root, nil, allSuccessRegistry(), Options{})
	byPath := make(map[string]Result)
	for _, res := range report.Results {
		byPath[res.Path] = res
	}
	if byPath["locked.py"].Outcome != OutcomeFailure {
		t.Error("unreadable file should be a Failure entry, not absent")
	}
	if byPath["ok.py"].Outcome != OutcomeSuccess {
		t.Error("other files should be unaffected")
	}
}

func TestEngine_BinaryContentIsFailure(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "blob.py"), []byte{0x00, 0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	report := runEngine(t, root, nil, allSuccessRegistry(), Options{})
	if len(report.Results) != 1 || report.Results[0].Outcome != OutcomeFailure {
		t.Fatalf("binary file should yield one Failure, got %+v", report.Results)
	}
}

func TestEngine_OversizedFileIsFailure(t *testing.T) {
	root := writeTree(t, map[string]string{"big.py": "0123456789\n"})

	report := runEngine(t, root, nil, allSuccessRegistry(), Options{MaxFileBytes: 5})
	if report.Results[0].Outcome != OutcomeFailure {
		t.Error("oversized file should be a Failure")
	}
}

func TestEngine_TimeoutIsReviewerFailure(t *testing.T) {
	root := writeTree(t, map[string]string{"slow.py": "x\n", "fast.rb": "y\n"})

	reg := allSuccessRegistry()
	reg.Register(language.TagPython, reviewerFunc(func(ctx context.Context, path, content string) (string, error) {
		select {
		case <-ctx.Done():
			return "", &ReviewError{Reviewer: "slow", Err: ctx.Err()}
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	}))

	report := runEngine(t, root, nil, reg, Options{FileTimeout: 20 * time.Millisecond})
	byPath := make(map[string]Result)
	for _, res := range report.Results {
		byPath[res.Path] = res
	}
	if byPath["slow.py"].Outcome != OutcomeFailure {
		t.Error("timed-out review should be a Failure")
	}
	if byPath["fast.rb"].Outcome != OutcomeSuccess {
		t.Error("timeout must not stall or fail other files")
	}
}

func TestEngine_FallbackForUnknownLanguage(t *testing.T) {
	root := writeTree(t, map[string]string{"README": "hello\n"})

	report := runEngine(t, root, nil, NewRegistry(), Options{})
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(report.Results))
	}
	res := report.Results[0]
	if res.Outcome != OutcomeSuccess || res.Feedback != NoRulesFeedback {
		t.Errorf("fallback result = %+v", res)
	}
	if res.Language != language.TagText {
		t.Errorf("Language = %q, want txt", res.Language)
	}
}

func TestEngine_EmptyRoot(t *testing.T) {
	report := runEngine(t, t.TempDir(), nil, NewRegistry(), Options{})
	if len(report.Results) != 0 {
		t.Errorf("got %d results, want 0", len(report.Results))
	}
	if !report.Finalized() {
		t.Error("empty report should still finalize")
	}
}

func TestEngine_HiddenAndIgnoredExcluded(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":    "x\n",
		"b.js":    "y\n",
		".hidden": "z\n",
	})

	report := runEngine(t, root, []string{"b.js"}, allSuccessRegistry(), Options{})
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(report.Results), report.Results)
	}
	if report.Results[0].Path != "a.py" || report.Results[0].Language != language.TagPython {
		t.Errorf("result = %+v, want a.py tagged Python", report.Results[0])
	}
}

func TestEngine_ParallelPreservesDiscoveryOrder(t *testing.T) {
	files := map[string]string{}
	var want []string
	for _, name := range []string{"a.py", "b.py", "c.py", "d.py", "e.py", "f.py", "g.py", "h.py"} {
		files[name] = name + "\n"
		want = append(want, name)
	}
	root := writeTree(t, files)

	reg := NewRegistry()
	reg.Register(language.TagPython, reviewerFunc(func(ctx context.Context, path, content string) (string, error) {
		// Vary completion time so completion order differs from walk order.
		time.Sleep(time.Duration(content[0]%3) * 5 * time.Millisecond)
		return "ok", nil
	}))

	report := runEngine(t, root, nil, reg, Options{Workers: 4})
	if len(report.Results) != len(want) {
		t.Fatalf("got %d results, want %d", len(report.Results), len(want))
	}
	for i, path := range want {
		if report.Results[i].Path != path {
			t.Errorf("Results[%d].Path = %q, want %q", i, report.Results[i].Path, path)
		}
	}
}

func TestEngine_CancellationBetweenFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "x\n", "b.py": "y\n", "c.py": "z\n"})

	ctx, cancel := context.WithCancel(context.Background())
	reg := NewRegistry()
	reg.Register(language.TagPython, reviewerFunc(func(ctx context.Context, path, content string) (string, error) {
		cancel()
		return "ok", nil
	}))

	w := discover.New(root, ignore.Compile(nil))
	_, err := NewEngine(reg, nil, Options{}).Run(ctx, w)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestEngine_CacheHitSkipsReviewer(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "print(1)\n"})
	c, err := cache.New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatal(err)
	}

	rev := &fakeReviewer{name: "fake/py", feedback: "fresh feedback"}
	reg := NewRegistry()
	reg.Register(language.TagPython, rev)

	run := func() *Report {
		w := discover.New(root, ignore.Compile(nil))
		report, err := NewEngine(reg, c, Options{Model: "m1"}).Run(context.Background(), w)
		if err != nil {
			t.Fatal(err)
		}
		return report
	}

	first := run()
	second := run()

	if rev.calls != 1 {
		t.Errorf("reviewer called %d times, want 1 (second run should hit cache)", rev.calls)
	}
	if first.Results[0].Feedback != second.Results[0].Feedback {
		t.Error("cached feedback differs from original")
	}
}

// reviewerFunc adapts a function to the Reviewer interface.
type reviewerFunc func(ctx context.Context, path, content string) (string, error)

func (f reviewerFunc) Name() string { return "func" }

func (f reviewerFunc) Review(ctx context.Context, path, content string) (string, error) {
	return f(ctx, path, content)
}
