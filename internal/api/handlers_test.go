package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"webgen_ai_server/internal/ai"
	"webgen_ai_server/internal/types"
)

type fakeGenerator struct {
	html  string
	err   error
	calls int
	spec  types.WebsiteSpec
}

func (f *fakeGenerator) GenerateSite(_ context.Context, spec types.WebsiteSpec) (string, error) {
	f.calls++
	f.spec = spec
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func newTestRouter(f *fakeGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, NewAPIHandler(f))
	return router
}

func postGenerate(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestGenerateMissingBrief(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"absent", `{"spec":{"projectName":"x"}}`},
		{"empty string", `{"spec":{"brief":""}}`},
		{"whitespace", `{"spec":{"brief":"  "}}`},
		{"non-string", `{"spec":{"brief":42}}`},
		{"no spec", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeGenerator{html: "<html></html>"}
			w := postGenerate(newTestRouter(fake), tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400\n%s", w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if body["error"] != "spec.brief is required" {
				t.Errorf("error = %q, want %q", body["error"], "spec.brief is required")
			}
			if fake.calls != 0 {
				t.Errorf("provider pipeline was called %d times, want 0", fake.calls)
			}
		})
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	fake := &fakeGenerator{}
	w := postGenerate(newTestRouter(fake), `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	msg, _ := body["error"].(string)
	if !strings.HasPrefix(msg, "Invalid request body:") {
		t.Errorf("error = %q, want invalid-body message", msg)
	}
	if fake.calls != 0 {
		t.Errorf("provider pipeline was called %d times, want 0", fake.calls)
	}
}

func TestGenerateSuccess(t *testing.T) {
	html := "<html><body>" + strings.Repeat("<p>ok</p>", 20) + "</body></html>"
	fake := &fakeGenerator{html: html}
	w := postGenerate(newTestRouter(fake), `{"spec":{"brief":"a bakery site","projectName":"Crumb","pages":["About Us","Contact"]}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body.String())
	}

	var result types.GenerationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.HTML != html {
		t.Errorf("html mismatch")
	}
	if got := strings.Count(strings.ToLower(result.HTML), "<html"); got != 1 {
		t.Errorf("html has %d <html tags, want 1", got)
	}

	const prefix = "data:text/html;base64,"
	if !strings.HasPrefix(result.DownloadURL, prefix) {
		t.Fatalf("downloadUrl = %q, want data URI", result.DownloadURL)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result.DownloadURL, prefix))
	if err != nil {
		t.Fatalf("decode downloadUrl: %v", err)
	}
	if string(decoded) != result.HTML {
		t.Errorf("downloadUrl does not decode to html")
	}

	// The generator must see the normalized spec, not the raw one.
	if diff := cmp.Diff([]string{"home", "about-us", "contact"}, fake.spec.Pages); diff != "" {
		t.Errorf("normalized pages mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateAllModelsExhausted(t *testing.T) {
	tried := []string{"gemini:gemini-2.0-flash", "openrouter:openrouter/auto"}
	fake := &fakeGenerator{err: &ai.ExhaustedError{Tried: tried, LastErr: errors.New("quota exceeded")}}
	w := postGenerate(newTestRouter(fake), `{"spec":{"brief":"a bakery site"}}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["error"] != "Model did not return usable HTML" {
		t.Errorf("error = %q", body["error"])
	}
	if body["details"] != "quota exceeded" {
		t.Errorf("details = %q, want %q", body["details"], "quota exceeded")
	}
	var gotTried []string
	for _, v := range body["tried"].([]any) {
		gotTried = append(gotTried, v.(string))
	}
	if diff := cmp.Diff(tried, gotTried); diff != "" {
		t.Errorf("tried mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateInternalError(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("kaput")}
	w := postGenerate(newTestRouter(fake), `{"spec":{"brief":"a bakery site"}}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["error"] != "kaput" {
		t.Errorf("error = %q, want %q", body["error"], "kaput")
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeGenerator{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}
