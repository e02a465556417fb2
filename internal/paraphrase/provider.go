// Package paraphrase talks to optional external paraphrase services and
// batches text through them, falling back to the rule-driven transformer.
package paraphrase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/humanizer/internal/model"
)

// Provider defines the interface for paraphrase upstreams
type Provider interface {
	// Name returns the provider name
	Name() string

	// Paraphrase rewrites text; the result is already cleaned of prompt echoes
	Paraphrase(ctx context.Context, text string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds paraphrase provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "huggingface", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic/Hugging Face
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	Timeout   time.Duration
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30 * time.Second,
		MaxTokens: 512,
	}
}

// ConfigFromModel converts model.ParaphraseConfig to paraphrase.Config
func ConfigFromModel(c model.ParaphraseConfig) Config {
	cfg := DefaultConfig()
	cfg.Provider = c.Provider
	cfg.Model = c.Model
	cfg.APIKey = c.APIKey
	cfg.BaseURL = c.BaseURL
	cfg.HTTPProxy = c.HTTPProxy
	cfg.HTTPSProxy = c.HTTPSProxy
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	return cfg
}

const systemPrompt = "You rewrite text so it reads as if a person wrote it. Keep the meaning, names and technical terms. Reply with the rewritten text only."

// BuildPrompt constructs the paraphrase instruction for a batch
func BuildPrompt(text string) string {
	return fmt.Sprintf("Paraphrase this text to make it more natural and human-like: %s", text)
}

var (
	promptEchoWithColon = regexp.MustCompile(`(?i)^paraphrase.*?:`)
	promptEcho          = regexp.MustCompile(`(?i)^paraphrase`)
)

// Clean strips an echoed instruction from the start of an upstream response
func Clean(response string) string {
	out := strings.TrimSpace(response)
	out = strings.TrimSpace(promptEchoWithColon.ReplaceAllString(out, ""))
	out = strings.TrimSpace(promptEcho.ReplaceAllString(out, ""))
	return out
}

func timeoutOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
