package review

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aliGhadyani/loupe/internal/cache"
	"github.com/aliGhadyani/loupe/internal/discover"
	"github.com/aliGhadyani/loupe/internal/language"
	"github.com/aliGhadyani/loupe/internal/redact"
)

// Options controls how the engine processes files.
type Options struct {
	// Workers is the bounded worker count; <= 1 means sequential.
	Workers int
	// FileTimeout bounds one file's review; 0 disables the bound.
	FileTimeout time.Duration
	// MaxFileBytes rejects oversized files as Failures; 0 disables.
	MaxFileBytes int
	// RedactSecrets strips secret-looking content before review.
	RedactSecrets bool
	RedactPaths   []string
	// Model participates in cache keys so switching models misses.
	Model string
	// Progress, when set, is called with each file's relative path as its
	// review begins.
	Progress func(rel string)
}

// Engine is the review orchestrator: it consumes discovered files one at a
// time, dispatches each to its language's reviewer, and accumulates exactly
// one Result per file. A single file's failure never escapes its own
// processing step.
type Engine struct {
	registry *Registry
	cache    *cache.Cache
	opts     Options
}

// NewEngine creates an engine. The cache may be nil or disabled.
func NewEngine(registry *Registry, c *cache.Cache, opts Options) *Engine {
	return &Engine{registry: registry, cache: c, opts: opts}
}

// Run walks the tree and reviews every discovered file, returning the
// finalized report in discovery order. Cancellation is honored between
// files and returns the context error; no partial report is produced.
func (e *Engine) Run(ctx context.Context, w *discover.Walker) (*Report, error) {
	report := NewReport(w.Root())

	if e.opts.Workers > 1 {
		if err := e.runParallel(ctx, w, report); err != nil {
			return nil, err
		}
	} else {
		err := w.Walk(ctx, func(rec discover.FileRecord) error {
			if e.opts.Progress != nil {
				e.opts.Progress(rec.Rel)
			}
			report.Append(e.reviewFile(ctx, rec))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	report.Finalize(w.Warnings())
	return report, nil
}

// runParallel reviews independent files on a bounded worker pool. Results
// land in indexed slots so the report keeps discovery order regardless of
// completion order.
func (e *Engine) runParallel(ctx context.Context, w *discover.Walker, report *Report) error {
	var records []discover.FileRecord
	err := w.Walk(ctx, func(rec discover.FileRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return err
	}

	results := make([]Result, len(records))
	sem := make(chan struct{}, e.opts.Workers)
	var wg sync.WaitGroup

	for i, rec := range records {
		wg.Add(1)
		go func(i int, rec discover.FileRecord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			if e.opts.Progress != nil {
				e.opts.Progress(rec.Rel)
			}
			results[i] = e.reviewFile(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for _, res := range results {
		report.Append(res)
	}
	return nil
}

// reviewFile produces the single Result for one file. Every failure mode —
// unreadable file, undecodable content, reviewer error, timeout, panic —
// becomes a Failure result rather than an error.
func (e *Engine) reviewFile(ctx context.Context, rec discover.FileRecord) (res Result) {
	start := time.Now()
	res = Result{Path: rec.Rel}
	defer func() {
		// A panicking reviewer must not take down the run.
		if p := recover(); p != nil {
			res.Outcome = OutcomeFailure
			res.Feedback = ""
			res.Error = fmt.Sprintf("reviewer panic: %v", p)
		}
		res.DurationMs = time.Since(start).Milliseconds()
	}()

	data, err := os.ReadFile(rec.Path)
	if err != nil {
		res.Language = language.Classify(rec.Rel)
		res.Outcome = OutcomeFailure
		res.Error = fmt.Sprintf("reading file: %v", err)
		return res
	}
	if e.opts.MaxFileBytes > 0 && len(data) > e.opts.MaxFileBytes {
		res.Language = language.Classify(rec.Rel)
		res.Outcome = OutcomeFailure
		res.Error = fmt.Sprintf("file size %d exceeds limit %d", len(data), e.opts.MaxFileBytes)
		return res
	}
	content := string(data)
	if !utf8.ValidString(content) || strings.ContainsRune(content, '\x00') {
		res.Language = language.Classify(rec.Rel)
		res.Outcome = OutcomeFailure
		res.Error = "binary or undecodable content"
		return res
	}

	tag := language.Classify(rec.Rel)
	res.Language = tag
	reviewer := e.registry.Resolve(tag)
	res.Reviewer = reviewer.Name()

	if e.opts.RedactSecrets {
		content = redact.Content(content, rec.Rel, e.opts.RedactPaths)
	}

	var cacheKey string
	if e.cache != nil && e.cache.Enabled() {
		cacheKey = cache.Key(reviewer.Name(), e.opts.Model, rec.Rel, content)
		if feedback, ok := e.cache.Get(cacheKey); ok {
			res.Outcome = OutcomeSuccess
			res.Feedback = feedback
			return res
		}
	}

	fctx := ctx
	if e.opts.FileTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, e.opts.FileTimeout)
		defer cancel()
	}

	feedback, err := reviewer.Review(fctx, rec.Path, content)
	if err != nil {
		res.Outcome = OutcomeFailure
		res.Error = err.Error()
		return res
	}

	res.Outcome = OutcomeSuccess
	res.Feedback = feedback
	if cacheKey != "" {
		_ = e.cache.Put(cacheKey, feedback)
	}
	return res
}
