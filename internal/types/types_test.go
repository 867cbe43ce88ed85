package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFallbackList(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    []ModelRef
		wantErr bool
	}{
		{
			name: "ordered pairs",
			in:   "gemini:gemini-2.0-flash,openrouter:openrouter/auto",
			want: []ModelRef{
				{Provider: "gemini", Model: "gemini-2.0-flash"},
				{Provider: "openrouter", Model: "openrouter/auto"},
			},
		},
		{
			name: "model ids may contain slashes and colons after the first",
			in:   "openrouter:deepseek/deepseek-chat-v3-0324",
			want: []ModelRef{{Provider: "openrouter", Model: "deepseek/deepseek-chat-v3-0324"}},
		},
		{
			name: "whitespace and case tolerated",
			in:   " Gemini : gemini-1.5-flash , ",
			want: []ModelRef{{Provider: "gemini", Model: "gemini-1.5-flash"}},
		},
		{name: "empty list", in: "", want: nil},
		{name: "missing model", in: "gemini:", wantErr: true},
		{name: "missing colon", in: "gemini-2.0-flash", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFallbackList(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseFallbackList(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFallbackList(%q): %v", tc.in, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelRefString(t *testing.T) {
	ref := ModelRef{Provider: "gemini", Model: "gemini-2.0-flash"}
	if got := ref.String(); got != "gemini:gemini-2.0-flash" {
		t.Errorf("String() = %q", got)
	}
}
