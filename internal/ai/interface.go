package ai

import "context"

// Provider defines the contract for a single LLM backend in the fallback list.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name returns the provider's model identifier (e.g. "openai/gpt-4o-mini").
	Name() string

	// Invoke sends the prompt and returns the raw model output text.
	// An empty string with a nil error means the model produced no content;
	// the caller treats that as a soft failure and moves to the next provider.
	Invoke(ctx context.Context, prompt string) (string, error)
}
