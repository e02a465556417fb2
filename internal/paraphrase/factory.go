package paraphrase

import (
	"fmt"
	"strings"
)

// NewProvider creates a paraphrase provider based on configuration
// An empty provider name disables the upstream and returns nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case "openai":
		return asProvider(NewOpenAIProvider(config))

	case "anthropic", "claude":
		return asProvider(NewAnthropicProvider(config))

	case "ollama":
		return asProvider(NewOllamaProvider(config))

	case "huggingface", "hf":
		return asProvider(NewHuggingFaceProvider(config))

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown paraphrase provider: %s (supported: openai, anthropic, ollama, huggingface)", config.Provider)
	}
}

// asProvider keeps a failed constructor from yielding a non-nil interface
// around a nil pointer
func asProvider[T Provider](p T, err error) (Provider, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
