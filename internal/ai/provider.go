package ai

import "context"

// Provider performs one generation call against a single external model and
// returns the extracted plain text. Implementations must fail fast on
// transport errors, non-2xx responses, and empty content; the caller decides
// whether to fall through to another candidate.
type Provider interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
