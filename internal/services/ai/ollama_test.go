package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planwell/dayplan/internal/schedule"
)

func TestOllamaAvailable(t *testing.T) {
	t.Parallel()

	t.Run("healthy server", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/tags" {
				t.Errorf("probe hit %s, want /api/tags", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		p := NewOllamaProvider(server.URL, "", nil)
		if !p.Available(context.Background()) {
			t.Error("expected the provider to be available")
		}
	})

	t.Run("erroring server", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		p := NewOllamaProvider(server.URL, "", nil)
		if p.Available(context.Background()) {
			t.Error("expected the provider to be unavailable")
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		p := NewOllamaProvider("http://127.0.0.1:1", "", nil)
		if p.Available(context.Background()) {
			t.Error("expected the provider to be unavailable")
		}
	})
}

func TestOllamaGenerate(t *testing.T) {
	t.Parallel()

	var got ollamaGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("generate hit %s, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "  {\"schedule\": []}  "})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "mistral", nil)
	params := schedule.Params{
		Temperature:   0.7,
		TopP:          0.9,
		MaxTokens:     2048,
		RepeatPenalty: 1.1,
		TopK:          40,
	}

	text, err := p.Generate(context.Background(), "make me a plan", params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != `{"schedule": []}` {
		t.Errorf("response = %q, want trimmed JSON", text)
	}

	if got.Model != "mistral" || got.Stream {
		t.Errorf("request model/stream = %q/%v", got.Model, got.Stream)
	}
	if got.Prompt != "make me a plan" {
		t.Errorf("prompt = %q", got.Prompt)
	}
	if got.Options.Temperature != 0.7 || got.Options.TopP != 0.9 {
		t.Errorf("sampling options not forwarded: %+v", got.Options)
	}
	if got.Options.NumPredict != 2048 || got.Options.TopK != 40 || got.Options.RepeatPenalty != 1.1 {
		t.Errorf("token options not forwarded: %+v", got.Options)
	}
}

func TestOllamaGenerateNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "", nil)
	_, err := p.Generate(context.Background(), "plan", schedule.Params{})
	if err == nil {
		t.Fatal("expected an error for a non-200 response")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
}
