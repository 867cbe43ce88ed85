package spec

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"webgen_ai_server/internal/types"
)

// Field limits bound the prompt size so one request cannot blow the model's
// context window or our token budget.
const (
	maxBriefLen = 4000
	maxNameLen  = 200
	maxFieldLen = 100
	maxPages    = 12
)

// ErrBriefRequired is the only user-facing validation failure; its text is
// the exact error string the API returns with a 400.
var ErrBriefRequired = errors.New("spec.brief is required")

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns  = regexp.MustCompile(`-{2,}`)
)

// Normalize validates and clamps a raw website spec. Brief is required;
// every other field receives a default and a length clamp, and page names
// are coerced to slugs with "home" guaranteed first.
func Normalize(raw types.WebsiteSpec) (types.WebsiteSpec, error) {
	brief := strings.TrimSpace(raw.Brief)
	if brief == "" {
		return types.WebsiteSpec{}, ErrBriefRequired
	}

	out := types.WebsiteSpec{
		ProjectName:  clamp(strings.TrimSpace(raw.ProjectName), maxNameLen),
		Brief:        clamp(brief, maxBriefLen),
		PrimaryColor: clamp(strings.TrimSpace(raw.PrimaryColor), maxFieldLen),
		Style:        clamp(strings.TrimSpace(raw.Style), maxFieldLen),
		Tone:         clamp(strings.TrimSpace(raw.Tone), maxFieldLen),
		Pages:        normalizePages(raw.Pages),
	}
	if out.ProjectName == "" {
		out.ProjectName = "My Website"
	}
	if out.PrimaryColor == "" {
		out.PrimaryColor = "#2563eb"
	}
	if out.Style == "" {
		out.Style = "modern"
	}
	if out.Tone == "" {
		out.Tone = "friendly"
	}
	return out, nil
}

func normalizePages(pages []string) []string {
	out := []string{"home"}
	seen := map[string]bool{"home": true}
	for _, p := range pages {
		slug := Slugify(p)
		if slug == "" || seen[slug] {
			continue
		}
		if len(out) >= maxPages {
			break
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}

// Slugify lowercases a page name and reduces it to [a-z0-9-] with single
// hyphens, e.g. "About Us" -> "about-us".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// clamp truncates to at most n bytes without splitting a UTF-8 rune.
func clamp(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
