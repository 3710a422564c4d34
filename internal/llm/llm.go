package llm

import "context"

// LLM defines the interface for interacting with a Large Language Model.
type LLM interface {
	// Generate sends the prompt in a single request and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Endpoint is the URL requests are sent to.
	Endpoint() string
	// Model is the model identifier sent with each request.
	Model() string
}
