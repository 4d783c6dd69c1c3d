package core

import "context"

// ModelProvider is the external generative-model collaborator. It receives a
// fully composed prompt and returns the model's reply. Failures are surfaced
// to callers unchanged; the core never retries.
type ModelProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
