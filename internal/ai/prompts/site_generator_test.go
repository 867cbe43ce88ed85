package prompts

import (
	"strings"
	"testing"

	"webgen_ai_server/internal/types"
)

func TestBuildSitePromptInterpolatesEveryField(t *testing.T) {
	spec := types.WebsiteSpec{
		ProjectName:  "Crumb Bakery",
		Brief:        "a cozy bakery in Lisbon",
		PrimaryColor: "#aa3344",
		Style:        "rustic",
		Tone:         "warm",
		Pages:        []string{"home", "about-us", "contact"},
	}
	prompt := BuildSitePrompt(spec)

	for _, want := range []string{
		"Crumb Bakery",
		"a cozy bakery in Lisbon",
		"#aa3344",
		"rustic",
		"warm",
		"home, about-us, contact",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildSitePromptDeterministic(t *testing.T) {
	spec := types.WebsiteSpec{Brief: "b", Pages: []string{"home"}}
	if BuildSitePrompt(spec) != BuildSitePrompt(spec) {
		t.Error("prompt is not deterministic")
	}
}
