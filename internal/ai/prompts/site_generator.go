package prompts

import (
	"fmt"
	"strings"

	"webgen_ai_server/internal/types"
)

// SystemPrompt frames every model call regardless of provider.
const SystemPrompt = "You are a helpful AI assistant that generates complete, production-quality websites as a single HTML file based on user briefs and specific formatting instructions."

// BuildSitePrompt renders the normalized website spec into the instruction
// template sent to the model. The template shape never changes; only the
// field values are interpolated.
func BuildSitePrompt(s types.WebsiteSpec) string {
	return fmt.Sprintf(siteGenerationTemplate,
		s.ProjectName,
		s.Brief,
		strings.Join(s.Pages, ", "),
		s.Style,
		s.Tone,
		s.PrimaryColor,
	)
}

const siteGenerationTemplate = `You are an expert front-end developer AI.

A user has submitted the following website request:

	Project name: %s
	Brief: %s
	Pages: %s
	Style: %s
	Tone: %s
	Primary color: %s

Please create a **single complete HTML file** for this website following these rules:

1.  **Document**: one valid HTML5 document with <!DOCTYPE html>, <html lang>, <head> and <body>. All CSS in a <style> tag and all JavaScript in a <script> tag inside the same file. No external build tools and no framework imports.
2.  **Structure**: one <section> per listed page, each with a matching id, reachable from a sticky navigation bar with anchor links and a mobile menu.
3.  **Theme**: build the palette around the primary color above, and include a light/dark theme toggle that persists the choice in localStorage.
4.  **Accessibility**: semantic landmarks, alt text on images, visible focus states, sufficient color contrast, aria labels on interactive controls.
5.  **SEO**: <title>, meta description, Open Graph tags, and a JSON-LD Organization block in the <head>.
6.  **Performance**: no external fonts or scripts, system font stack, lazy-load below-the-fold images, keep the file lean.

Respond with raw HTML only. Do not wrap the output in markdown code fences and do not add any explanation before or after the document. Your output will be served directly as a file.`
