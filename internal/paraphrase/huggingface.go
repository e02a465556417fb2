package paraphrase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	huggingFaceBaseURL      = "https://api-inference.huggingface.co/models"
	huggingFaceDefaultModel = "facebook/bart-large-cnn"
)

// ErrModelLoading is returned while a hosted inference model is still warming up
var ErrModelLoading = errors.New("model is loading")

// HuggingFaceProvider implements the Provider interface for the Hugging Face inference API
type HuggingFaceProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type huggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

type huggingFaceGenerated struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
	Error         string `json:"error"`
}

func (g huggingFaceGenerated) text() string {
	if g.GeneratedText != "" {
		return g.GeneratedText
	}
	return g.SummaryText
}

// NewHuggingFaceProvider creates a new Hugging Face provider
func NewHuggingFaceProvider(config Config) (*HuggingFaceProvider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Hugging Face API key is required")
	}

	model := config.Model
	if model == "" {
		model = huggingFaceDefaultModel
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = huggingFaceBaseURL
	}

	return &HuggingFaceProvider{
		apiKey:     config.APIKey,
		endpoint:   strings.TrimSuffix(baseURL, "/") + "/" + model,
		httpClient: newHTTPClient(config, 30*time.Second),
	}, nil
}

// Name returns the provider name
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// IsAvailable checks that the model endpoint accepts the credentials
func (p *HuggingFaceProvider) IsAvailable(ctx context.Context) bool {
	return getOK(ctx, p.httpClient, p.endpoint, p.headers())
}

// Paraphrase sends the prompt as inference inputs
func (p *HuggingFaceProvider) Paraphrase(ctx context.Context, text string) (string, error) {
	status, body, err := postJSON(ctx, p.httpClient, p.endpoint, huggingFaceRequest{Inputs: BuildPrompt(text)}, p.headers())
	if err != nil {
		return "", fmt.Errorf("Hugging Face API error: %w", err)
	}

	if status == http.StatusServiceUnavailable {
		return "", fmt.Errorf("Hugging Face API error (%d): %w", status, ErrModelLoading)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("Hugging Face API error (%d): %s", status, strings.TrimSpace(string(body)))
	}

	out, err := parseHuggingFace(body)
	if err != nil {
		return "", err
	}
	return Clean(out), nil
}

func (p *HuggingFaceProvider) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + p.apiKey}
}

// parseHuggingFace accepts every response shape the inference API returns:
// [{"generated_text": ...}], {"generated_text": ...}, ["..."] and "..."
func parseHuggingFace(body []byte) (string, error) {
	var list []huggingFaceGenerated
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) > 0 && list[0].text() != "" {
			return list[0].text(), nil
		}
		return "", errors.New("empty Hugging Face response")
	}

	var single huggingFaceGenerated
	if err := json.Unmarshal(body, &single); err == nil {
		if strings.Contains(strings.ToLower(single.Error), "loading") {
			return "", ErrModelLoading
		}
		if single.Error != "" {
			return "", fmt.Errorf("Hugging Face API error: %s", single.Error)
		}
		if single.text() != "" {
			return single.text(), nil
		}
		return "", errors.New("empty Hugging Face response")
	}

	var strs []string
	if err := json.Unmarshal(body, &strs); err == nil && len(strs) > 0 {
		return strs[0], nil
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}

	return "", fmt.Errorf("unrecognized Hugging Face response: %.100s", string(body))
}
