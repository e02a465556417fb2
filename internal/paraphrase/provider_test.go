package paraphrase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/humanizer/internal/model"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paraphrase this text to make it more natural: It works fine.", "It works fine."},
		{"paraphrased version of the sentence", "d version of the sentence"},
		{"  It works fine.  ", "It works fine."},
		{"Nothing to strip here.", "Nothing to strip here."},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("The results hold.")
	if got != "Paraphrase this text to make it more natural and human-like: The results hold." {
		t.Errorf("unexpected prompt: %s", got)
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.ParaphraseConfig{
		Provider:  "huggingface",
		Model:     "google/flan-t5-base",
		APIKey:    "hf-key",
		HTTPProxy: "http://proxy:8080",
	})
	if cfg.Provider != "huggingface" || cfg.Model != "google/flan-t5-base" || cfg.APIKey != "hf-key" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.HTTPProxy != "http://proxy:8080" {
		t.Errorf("expected proxy to carry over, got %s", cfg.HTTPProxy)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("expected disabled provider, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "bogus"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	tests := []struct {
		config Config
		name   string
	}{
		{Config{Provider: "openai", APIKey: "k"}, "openai"},
		{Config{Provider: "Claude", APIKey: "k"}, "anthropic"},
		{Config{Provider: "ollama", Model: "mistral"}, "ollama"},
		{Config{Provider: "hf", APIKey: "k"}, "huggingface"},
	}
	for _, tt := range tests {
		p, err := NewProvider(tt.config)
		if err != nil {
			t.Fatalf("NewProvider(%s) failed: %v", tt.config.Provider, err)
		}
		if p.Name() != tt.name {
			t.Errorf("expected %s, got %s", tt.name, p.Name())
		}
	}

	for _, name := range []string{"openai", "anthropic", "huggingface"} {
		if _, err := NewProvider(Config{Provider: name}); err == nil {
			t.Errorf("expected missing key error for %s", name)
		}
	}
	if _, err := NewProvider(Config{Provider: "ollama"}); err == nil {
		t.Error("expected missing model error for ollama")
	}
}

func TestOpenAIProvider_Paraphrase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "The results hold.") {
			t.Errorf("expected prompt to carry the batch, got %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "Paraphrase: Turns out the results hold up."}},
			},
		})
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	got, err := provider.Paraphrase(context.Background(), "The results hold.")
	if err != nil {
		t.Fatalf("Paraphrase failed: %v", err)
	}
	if got != "Turns out the results hold up." {
		t.Errorf("unexpected paraphrase: %q", got)
	}
}

func TestOpenAIProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, _ := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := provider.Paraphrase(context.Background(), "text"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestAnthropicProvider_Paraphrase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != anthropicVersion {
			t.Errorf("expected anthropic-version %s, got %s", anthropicVersion, r.Header.Get("anthropic-version"))
		}

		var req anthropicRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != anthropicDefaultModel {
			t.Errorf("expected default model, got %s", req.Model)
		}

		_ = json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: "Honestly, the results hold."}},
		})
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/"})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	got, err := provider.Paraphrase(context.Background(), "The results hold.")
	if err != nil {
		t.Fatalf("Paraphrase failed: %v", err)
	}
	if got != "Honestly, the results hold." {
		t.Errorf("unexpected paraphrase: %q", got)
	}
}

func TestAnthropicProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "bad", BaseURL: server.URL})
	_, err := provider.Paraphrase(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "authentication_error") {
		t.Errorf("expected authentication error, got %v", err)
	}
	if provider.IsAvailable(context.Background()) {
		t.Error("expected provider to be unavailable")
	}
}

func TestOllamaProvider_Paraphrase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		case "/api/generate":
			var req ollamaRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Stream {
				t.Error("expected non-streaming request")
			}
			if req.Model != "mistral" {
				t.Errorf("expected model mistral, got %s", req.Model)
			}
			_ = json.NewEncoder(w).Encode(ollamaResponse{Model: "mistral", Response: " So yeah, it works. ", Done: true})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{Model: "mistral", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	if !provider.IsAvailable(context.Background()) {
		t.Error("expected provider to be available")
	}

	got, err := provider.Paraphrase(context.Background(), "It works.")
	if err != nil {
		t.Fatalf("Paraphrase failed: %v", err)
	}
	if got != "So yeah, it works." {
		t.Errorf("unexpected paraphrase: %q", got)
	}
}

func TestOllamaProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'mistral' not found"}`))
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{Model: "mistral", BaseURL: server.URL})
	_, err := provider.Paraphrase(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestHuggingFaceProvider_Paraphrase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+huggingFaceDefaultModel {
			t.Errorf("expected model path, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer hf-key" {
			t.Errorf("expected bearer token, got %s", r.Header.Get("Authorization"))
		}
		var req huggingFaceRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !strings.HasPrefix(req.Inputs, "Paraphrase this text") {
			t.Errorf("expected prompt in inputs, got %q", req.Inputs)
		}
		_, _ = w.Write([]byte(`[{"generated_text":"Paraphrase this text: The cache works well."}]`))
	}))
	defer server.Close()

	provider, err := NewHuggingFaceProvider(Config{APIKey: "hf-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	got, err := provider.Paraphrase(context.Background(), "The cache performs well.")
	if err != nil {
		t.Fatalf("Paraphrase failed: %v", err)
	}
	if got != "The cache works well." {
		t.Errorf("unexpected paraphrase: %q", got)
	}
}

func TestHuggingFaceProvider_ModelLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model facebook/bart-large-cnn is currently loading","estimated_time":20}`))
	}))
	defer server.Close()

	provider, _ := NewHuggingFaceProvider(Config{APIKey: "hf-key", BaseURL: server.URL})
	_, err := provider.Paraphrase(context.Background(), "text")
	if !errors.Is(err, ErrModelLoading) {
		t.Errorf("expected ErrModelLoading, got %v", err)
	}
}

func TestParseHuggingFace(t *testing.T) {
	tests := []struct {
		body    string
		want    string
		wantErr bool
	}{
		{`[{"generated_text":"a"}]`, "a", false},
		{`[{"summary_text":"b"}]`, "b", false},
		{`{"generated_text":"c"}`, "c", false},
		{`["d"]`, "d", false},
		{`"e"`, "e", false},
		{`{"error":"Model is loading"}`, "", true},
		{`{"error":"bad input"}`, "", true},
		{`[]`, "", true},
		{`not json`, "", true},
	}
	for _, tt := range tests {
		got, err := parseHuggingFace([]byte(tt.body))
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tt.body, tt.wantErr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.body, tt.want, got)
		}
	}

	if _, err := parseHuggingFace([]byte(`{"error":"Model x is currently loading"}`)); !errors.Is(err, ErrModelLoading) {
		t.Errorf("expected ErrModelLoading, got %v", err)
	}
}
