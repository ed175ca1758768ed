package geminiclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finsight/finsight-backend/internal/dto"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateContentRoundTrip(t *testing.T) {
	var gotPath string
	var gotBody generateContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Save "},{"text":"more."}]}}]}`)
	}))
	defer srv.Close()

	a := NewAdapter(testLogger(), "test-key", "gemini-2.5-flash")
	a.SetBaseURL(srv.URL)

	resp, err := a.GenerateContent(context.Background(), dto.GeminiGenerateRequest{
		Prompt:          "advise me",
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if resp.Text != "Save more." {
		t.Fatalf("candidate parts must concatenate: %q", resp.Text)
	}
	if !strings.Contains(gotPath, "/models/gemini-2.5-flash:generateContent") ||
		!strings.Contains(gotPath, "key=test-key") {
		t.Fatalf("wrong request path: %s", gotPath)
	}
	if gotBody.Contents[0].Parts[0].Text != "advise me" {
		t.Fatalf("prompt not forwarded: %+v", gotBody)
	}
	if gotBody.GenerationConfig.MaxOutputTokens != 1024 {
		t.Fatalf("generation config not forwarded: %+v", gotBody.GenerationConfig)
	}
}

func TestGenerateContentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewAdapter(testLogger(), "test-key", "gemini-2.5-flash")
	a.SetBaseURL(srv.URL)

	if _, err := a.GenerateContent(context.Background(), dto.GeminiGenerateRequest{Prompt: "x"}); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}

func TestGenerateContentRequiresKey(t *testing.T) {
	a := NewAdapter(testLogger(), "", "gemini-2.5-flash")
	if a.Configured() {
		t.Fatalf("empty key must not report configured")
	}
	if _, err := a.GenerateContent(context.Background(), dto.GeminiGenerateRequest{Prompt: "x"}); err == nil {
		t.Fatalf("expected error without api key")
	}
}
