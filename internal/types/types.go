package types

import (
	"fmt"
	"strings"
)

// WebsiteSpec is the user-supplied description of the desired website.
// Brief is the only required field; everything else gets defaults during
// normalization.
type WebsiteSpec struct {
	ProjectName  string   `json:"projectName"`
	Brief        string   `json:"brief"`
	PrimaryColor string   `json:"primaryColor"`
	Style        string   `json:"style"`
	Tone         string   `json:"tone"`
	Pages        []string `json:"pages"`
}

// GenerationResult is the success payload for a generation request.
// DownloadURL is a base64 data URI of HTML.
type GenerationResult struct {
	HTML        string `json:"html"`
	DownloadURL string `json:"downloadUrl"`
}

// ModelRef identifies one candidate in the ordered fallback list.
type ModelRef struct {
	Provider string `json:"provider"` // "gemini" or "openrouter"
	Model    string `json:"model"`    // provider-specific model id
}

func (m ModelRef) String() string {
	return m.Provider + ":" + m.Model
}

// ParseFallbackList parses a comma-separated, ordered list of
// "provider:model" pairs, e.g. "gemini:gemini-2.0-flash,openrouter:openrouter/auto".
func ParseFallbackList(s string) ([]ModelRef, error) {
	var out []ModelRef
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		provider, model, ok := strings.Cut(part, ":")
		provider = strings.ToLower(strings.TrimSpace(provider))
		model = strings.TrimSpace(model)
		if !ok || provider == "" || model == "" {
			return nil, fmt.Errorf("invalid model reference %q, want provider:model", part)
		}
		out = append(out, ModelRef{Provider: provider, Model: model})
	}
	return out, nil
}
