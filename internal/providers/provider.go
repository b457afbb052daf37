package providers

import (
	"context"
	"fmt"
)

// GenerateRequest contains the prompts sent to a text-generation backend.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Generator is the text-generation backend abstraction.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Name() string
}

// New creates a generator by provider name.
func New(provider, model string) (Generator, error) {
	switch provider {
	case "ollama", "lmstudio":
		return NewOllama(model)
	case "anthropic":
		return NewAnthropic(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
