package htmldoc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"webgen_ai_server/internal/types"
)

var (
	leadingFence = regexp.MustCompile("^```[a-zA-Z0-9_-]*[ \t]*\r?\n?")
	strayFence   = regexp.MustCompile("(?m)^```[a-zA-Z0-9_-]*[ \t]*$\r?\n?")
)

// StripFences removes markdown code-fence markers that models often wrap
// around HTML output. A leading fence may carry a language tag such as
// "```html", with or without a newline before the content; fence-free input
// passes through unchanged.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	s = strayFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// EnsureFullDoc returns body unchanged when it already contains an <html>
// tag or a doctype declaration. Otherwise it wraps the fragment in a minimal
// valid shell with head metadata derived from the spec. Calling it on its own
// output is a no-op.
func EnsureFullDoc(body string, spec types.WebsiteSpec) string {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") {
		return body
	}

	title := spec.ProjectName
	if title == "" {
		title = "Generated Website"
	}
	desc := summarize(spec.Brief, 160)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", EscapeAttr(title))
	if desc != "" {
		fmt.Fprintf(&sb, "<meta name=\"description\" content=\"%s\">\n", EscapeAttr(desc))
		fmt.Fprintf(&sb, "<meta property=\"og:title\" content=\"%s\">\n", EscapeAttr(title))
		fmt.Fprintf(&sb, "<meta property=\"og:description\" content=\"%s\">\n", EscapeAttr(desc))
	}
	fmt.Fprintf(&sb, "<script type=\"application/ld+json\">%s</script>\n", organizationJSONLD(title))
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(body)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeAttr escapes text for safe interpolation into HTML attribute values
// and element text.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// DataURI encodes a document as a base64 data: URI usable as a download link.
func DataURI(html string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}

func organizationJSONLD(name string) string {
	payload := map[string]string{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// summarize collapses whitespace and truncates on a rune boundary, for meta
// descriptions.
func summarize(s string, limit int) string {
	joined := strings.Join(strings.Fields(s), " ")
	if len(joined) <= limit {
		return joined
	}
	for limit > 0 && !utf8.RuneStart(joined[limit]) {
		limit--
	}
	return strings.TrimSpace(joined[:limit])
}
