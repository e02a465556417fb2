package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete humanizer configuration
// Hierarchy (highest first): CLI flags, HUMANIZER_* env vars, config file, defaults
type Config struct {
	Transform   TransformSettings `yaml:"transform" mapstructure:"transform"`
	Paraphrase  ParaphraseConfig  `yaml:"paraphrase" mapstructure:"paraphrase"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	History     HistoryConfig     `yaml:"history" mapstructure:"history"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// TransformSettings configures the rule-driven transformer
type TransformSettings struct {
	Intensity   Intensity `yaml:"intensity" mapstructure:"intensity"`
	Seed        int64     `yaml:"seed" mapstructure:"seed"`                           // 0 = random per call
	LexiconPath string    `yaml:"lexicon_path,omitempty" mapstructure:"lexicon_path"` // Optional YAML table overrides
}

// ParaphraseConfig configures the optional external paraphrase upstream
type ParaphraseConfig struct {
	Provider      string        `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, huggingface, "" (disabled)
	Model         string        `yaml:"model" mapstructure:"model"`
	APIKey        string        `yaml:"-" mapstructure:"api_key"`
	BaseURL       string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	BatchDelay    time.Duration `yaml:"batch_delay" mapstructure:"batch_delay"`
	MaxBatchChars int           `yaml:"max_batch_chars" mapstructure:"max_batch_chars"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig configures paraphrase result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// HTTPConfig configures fetching input text from URLs
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	DetectTTL    time.Duration `yaml:"detect_ttl" mapstructure:"detect_ttl"`
}

// HistoryConfig configures the sqlite run history
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	home := defaultHome()
	return &Config{
		Transform: TransformSettings{
			Intensity: IntensityMedium,
		},
		Paraphrase: ParaphraseConfig{
			Provider:      "", // Disabled by default
			Timeout:       30 * time.Second,
			BatchDelay:    2 * time.Second,
			MaxBatchChars: 500,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(home, "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Humanizer/0.1 (+https://github.com/ppiankov/humanizer)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Server: ServerConfig{
			Addr:         ":5000",
			MaxBodyBytes: 1 << 20,
			DetectTTL:    10 * time.Minute,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    filepath.Join(home, "history.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}

// defaultHome returns $HOME/.humanizer, or a relative directory when HOME is unknown
func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".humanizer"
	}
	return filepath.Join(home, ".humanizer")
}
