package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"webgen_ai_server/internal/ai/prompts"
	"webgen_ai_server/internal/htmldoc"
	"webgen_ai_server/internal/types"
)

// minUsableHTML is the smallest fence-stripped model output accepted as a
// document body. Anything shorter is treated as a failed attempt.
const minUsableHTML = 50

// ExhaustedError reports that every candidate model failed to produce usable
// HTML. Tried lists the model ids in attempt order.
type ExhaustedError struct {
	Tried   []string
	LastErr error
}

func (e *ExhaustedError) Error() string {
	if e.LastErr == nil {
		return fmt.Sprintf("all %d candidate models failed", len(e.Tried))
	}
	return fmt.Sprintf("all %d candidate models failed, last error: %v", len(e.Tried), e.LastErr)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Generator runs the model-fallback pipeline: build the prompt once, then try
// each configured candidate in order until one yields a finalized document.
type Generator struct {
	providers  map[string]Provider
	candidates []types.ModelRef
	timeout    time.Duration
}

func NewGenerator(providers map[string]Provider, candidates []types.ModelRef, timeout time.Duration) *Generator {
	return &Generator{
		providers:  providers,
		candidates: candidates,
		timeout:    timeout,
	}
}

// GenerateSite returns the first finalized document of usable length produced
// by the candidate list. Attempts are strictly sequential; trying paid models
// concurrently would spend quota for no latency benefit. On exhaustion the
// returned error is an *ExhaustedError carrying the attempted model ids and
// the last failure.
func (g *Generator) GenerateSite(ctx context.Context, spec types.WebsiteSpec) (string, error) {
	requestID := uuid.New().String()
	prompt := prompts.BuildSitePrompt(spec)

	tried := make([]string, 0, len(g.candidates))
	var lastErr error
	for _, ref := range g.candidates {
		tried = append(tried, ref.String())

		provider, ok := g.providers[ref.Provider]
		if !ok {
			lastErr = fmt.Errorf("no adapter registered for provider %q", ref.Provider)
			log.Printf("[%s] skipping %s: %v", requestID, ref, lastErr)
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		raw, err := provider.Generate(attemptCtx, ref.Model, prompt)
		cancel()
		if err != nil {
			lastErr = err
			log.Printf("[%s] model %s failed: %v", requestID, ref, err)
			continue
		}

		stripped := htmldoc.StripFences(raw)
		if len(stripped) < minUsableHTML {
			lastErr = fmt.Errorf("model %s returned %d bytes, below the usable minimum", ref, len(stripped))
			log.Printf("[%s] %v", requestID, lastErr)
			continue
		}

		doc := htmldoc.EnsureFullDoc(stripped, spec)
		log.Printf("[%s] model %s produced %d bytes of HTML after %d attempt(s)", requestID, ref, len(doc), len(tried))
		return doc, nil
	}

	return "", &ExhaustedError{Tried: tried, LastErr: lastErr}
}
