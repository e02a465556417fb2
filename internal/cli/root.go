package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/humanizer/internal/logging"
	"github.com/ppiankov/humanizer/internal/model"
)

// Version is set at build time with -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "humanizer",
	Short: "Humanizer - score and rewrite machine-sounding text",
	Long: `Humanizer estimates how likely a text is to be machine-written and
rewrites it so it reads more like something a person wrote.

Detection is heuristic. A score is an estimate, not a verdict.

Rewriting is rule driven by default. An optional paraphrase provider
(openai, anthropic, ollama, huggingface) can be configured; when it fails
the rules take over for that part of the text.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Humanizer.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "humanizer %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.humanizer/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".humanizer"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// HUMANIZER_PARAPHRASE_PROVIDER maps to paraphrase.provider
	viper.SetEnvPrefix("HUMANIZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so that env overrides reach Unmarshal
func setDefaults(cfg *model.Config) {
	defaults := map[string]interface{}{
		"transform.intensity":        string(cfg.Transform.Intensity),
		"transform.seed":             cfg.Transform.Seed,
		"transform.lexicon_path":     cfg.Transform.LexiconPath,
		"paraphrase.provider":        cfg.Paraphrase.Provider,
		"paraphrase.model":           cfg.Paraphrase.Model,
		"paraphrase.api_key":         cfg.Paraphrase.APIKey,
		"paraphrase.base_url":        cfg.Paraphrase.BaseURL,
		"paraphrase.timeout":         cfg.Paraphrase.Timeout,
		"paraphrase.batch_delay":     cfg.Paraphrase.BatchDelay,
		"paraphrase.max_batch_chars": cfg.Paraphrase.MaxBatchChars,
		"paraphrase.http_proxy":      cfg.Paraphrase.HTTPProxy,
		"paraphrase.https_proxy":     cfg.Paraphrase.HTTPSProxy,
		"cache.enabled":              cfg.Cache.Enabled,
		"cache.dir":                  cfg.Cache.Dir,
		"cache.memory_ttl":           cfg.Cache.MemoryTTL,
		"cache.disk_ttl":             cfg.Cache.DiskTTL,
		"http.timeout":               cfg.HTTP.Timeout,
		"http.user_agent":            cfg.HTTP.UserAgent,
		"http.max_body_bytes":        cfg.HTTP.MaxBodyBytes,
		"http.respect_robots":        cfg.HTTP.RespectRobots,
		"server.addr":                cfg.Server.Addr,
		"server.max_body_bytes":      cfg.Server.MaxBodyBytes,
		"server.detect_ttl":          cfg.Server.DetectTTL,
		"history.enabled":            cfg.History.Enabled,
		"history.path":               cfg.History.Path,
		"logging.level":              cfg.Logging.Level,
		"logging.format":             cfg.Logging.Format,
		"concurrency.workers":        cfg.Concurrency.Workers,
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// loadConfig merges defaults, the config file and env vars into a Config
func loadConfig() (*model.Config, error) {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return nil, err
	}
	if err := applyEnvKeys(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvKeys fills provider credentials from their conventional env vars
func applyEnvKeys(cfg *model.Config) error {
	p := &cfg.Paraphrase
	switch strings.ToLower(p.Provider) {
	case "openai":
		if p.APIKey == "" {
			p.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if p.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if p.APIKey == "" {
			p.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if p.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "huggingface", "hf":
		if p.APIKey == "" {
			p.APIKey = os.Getenv("HUGGINGFACE_API_KEY")
		}
		if p.APIKey == "" {
			return fmt.Errorf("HUGGINGFACE_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && p.BaseURL == "" {
			p.BaseURL = baseURL
		}
	}
	return nil
}

// newLogger builds the process logger; --verbose forces debug level
func newLogger(cfg *model.Config) (*slog.Logger, error) {
	lc, err := logging.FromModel(cfg.Logging)
	if err != nil {
		return nil, err
	}
	if verbose {
		lc.Level = slog.LevelDebug
	}
	return logging.New(lc), nil
}
