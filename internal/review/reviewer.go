package review

import (
	"context"

	"github.com/aliGhadyani/loupe/internal/providers"
	"github.com/aliGhadyani/loupe/internal/toolexec"
)

// Reviewer turns one file's content into feedback text. Implementations
// return a *ReviewError when the underlying tool or backend cannot produce
// feedback; the orchestrator records it and moves on.
type Reviewer interface {
	Review(ctx context.Context, path, content string) (string, error)
	Name() string
}

// Generative reviews a file by prompting a text-generation backend with the
// language's rule strings and the file content.
type Generative struct {
	gen   providers.Generator
	lang  string
	rules []string
}

// NewGenerative creates a generative reviewer for one language.
func NewGenerative(gen providers.Generator, lang string, rules []string) *Generative {
	return &Generative{gen: gen, lang: lang, rules: rules}
}

func (g *Generative) Name() string { return "generative/" + g.gen.Name() }

func (g *Generative) Review(ctx context.Context, path, content string) (string, error) {
	req := providers.GenerateRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildUserPrompt(g.lang, g.rules, content),
		MaxTokens:    4096,
	}
	feedback, err := g.gen.Generate(ctx, req)
	if err != nil {
		return "", &ReviewError{Reviewer: g.Name(), Err: err}
	}
	return feedback, nil
}

// Static reviews a file by running an external static-analysis tool against
// its path and returning the raw output.
type Static struct {
	runner toolexec.Runner
	tool   string
	args   []string
}

// NewStatic creates a rule-based reviewer backed by an external tool.
func NewStatic(runner toolexec.Runner, tool string, args []string) *Static {
	return &Static{runner: runner, tool: tool, args: args}
}

func (s *Static) Name() string { return "static/" + s.tool }

func (s *Static) Review(ctx context.Context, path, _ string) (string, error) {
	out, err := s.runner.Invoke(ctx, s.tool, s.args, path)
	if err != nil {
		return "", &ReviewError{Reviewer: s.Name(), Err: err}
	}
	return out, nil
}

// Fallback is the reviewer of last resort: it always succeeds with a fixed
// no-rules message, so files with unknown languages still get exactly one
// result instead of failing the pipeline.
type Fallback struct{}

func (Fallback) Name() string { return "fallback" }

func (Fallback) Review(ctx context.Context, path, content string) (string, error) {
	return NoRulesFeedback, nil
}
