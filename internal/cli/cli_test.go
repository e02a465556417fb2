package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/humanizer/internal/model"
)

const (
	formalSentence = "Furthermore, it is important to note that artificial intelligence has revolutionized numerous industries."
	humanText      = "I think it's fine. Honestly, I don't know why you'd worry. My friend said it's gonna be okay, you know?"
)

// resetFlags restores every flag to its default between executions
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the command tree with an isolated home directory and config file
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	viper.Reset()

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// sandbox points HOME at a temp dir and returns a config path inside it
func sandbox(t *testing.T, configYAML string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "HUGGINGFACE_API_KEY", "OLLAMA_BASE_URL"} {
		t.Setenv(key, "")
	}

	path := filepath.Join(home, "config.yaml")
	if configYAML != "" {
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0644))
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersion(t *testing.T) {
	cfg := sandbox(t, "")
	out, _, err := execute(t, "", "version", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "humanizer "+Version+"\n", out)
}

func TestDetectFromFile(t *testing.T) {
	cfg := sandbox(t, "")
	input := writeFile(t, t.TempDir(), "essay.txt", formalSentence)

	out, _, err := execute(t, "", "detect", input, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "0.76 (likely AI)")
	assert.Contains(t, out, "Reasons:")
}

func TestDetectFromStdinAsJSON(t *testing.T) {
	cfg := sandbox(t, "")

	out, _, err := execute(t, formalSentence, "detect", "--json", "-", "--config", cfg)
	require.NoError(t, err)

	var res model.DetectResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 0.76, res.Detection.Score, 1e-9)
	assert.True(t, res.Detection.IsLikelyMachine)
}

func TestDetectBlankInput(t *testing.T) {
	cfg := sandbox(t, "")

	_, _, err := execute(t, "   \n", "detect", "--config", cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
}

func TestHumanizeIsReproducibleWithSeed(t *testing.T) {
	cfg := sandbox(t, "")
	input := writeFile(t, t.TempDir(), "essay.md", formalSentence)

	first, summary, err := execute(t, "", "humanize", input, "--seed", "5", "--intensity", "high", "--config", cfg)
	require.NoError(t, err)
	second, _, err := execute(t, "", "humanize", input, "--seed", "5", "--intensity", "high", "--config", cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, strings.TrimSpace(first))
	assert.Contains(t, summary, "AI score:")
	assert.Contains(t, summary, "Source:      rules")
}

func TestHumanizeWritesJSONFile(t *testing.T) {
	cfg := sandbox(t, "")
	dir := t.TempDir()
	input := writeFile(t, dir, "essay.txt", formalSentence)
	out := filepath.Join(dir, "result.json")

	_, _, err := execute(t, "", "humanize", input, "--json", out, "--seed", "3", "--config", cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var res model.TransformResult
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, formalSentence, res.Original)
	assert.Equal(t, model.IntensityMedium, res.Intensity)
}

func TestProcessLeavesHumanTextUnchanged(t *testing.T) {
	cfg := sandbox(t, "")

	out, stderr, err := execute(t, humanText, "process", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, humanText+"\n", out)
	assert.Contains(t, stderr, "--force")
}

func TestProcessForce(t *testing.T) {
	cfg := sandbox(t, "")

	out, _, err := execute(t, humanText, "process", "--force", "--json", "-", "--seed", "9", "--config", cfg)
	require.NoError(t, err)

	var res model.ProcessResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Triggered)
	assert.True(t, res.Forced)
	require.NotNil(t, res.Transformed)
}

func TestUnknownIntensity(t *testing.T) {
	cfg := sandbox(t, "")

	_, _, err := execute(t, formalSentence, "humanize", "--intensity", "extreme", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown intensity")
}

func TestMissingProviderKey(t *testing.T) {
	cfg := sandbox(t, "")

	_, _, err := execute(t, formalSentence, "humanize", "--provider", "openai", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestConfigInitAndShow(t *testing.T) {
	cfg := sandbox(t, "")

	out, _, err := execute(t, "", "config", "init", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")
	_, err = os.Stat(cfg)
	require.NoError(t, err)

	_, _, err = execute(t, "", "config", "init", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, stderr, err := execute(t, "", "config", "show", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Configuration file: "+cfg)
	assert.Contains(t, out, "intensity: medium")
}

func TestConfigFileAndEnvOverrides(t *testing.T) {
	cfg := sandbox(t, "transform:\n  intensity: low\n")

	out, _, err := execute(t, "", "config", "show", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "intensity: low")

	t.Setenv("HUMANIZER_TRANSFORM_INTENSITY", "high")
	out, _, err = execute(t, "", "config", "show", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "intensity: high")
}

func TestHistory(t *testing.T) {
	home := t.TempDir()
	db := filepath.Join(home, "history.db")
	cfg := sandbox(t, "history:\n  enabled: true\n  path: "+db+"\n")

	_, stderr, err := execute(t, "", "history", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stderr, "No runs recorded")

	_, _, err = execute(t, formalSentence, "detect", "--config", cfg)
	require.NoError(t, err)
	_, _, err = execute(t, humanText, "process", "--config", cfg)
	require.NoError(t, err)

	out, _, err := execute(t, "", "history", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "detect")
	assert.Contains(t, out, "process")
}

func TestBatch(t *testing.T) {
	cfg := sandbox(t, "")
	dir := t.TempDir()
	writeFile(t, dir, "formal.txt", formalSentence)
	writeFile(t, dir, "human.md", humanText)
	manifest := writeFile(t, dir, "docs.txt", strings.Join([]string{
		"# documents",
		filepath.Join(dir, "formal.txt"),
		filepath.Join(dir, "human.md"),
		filepath.Join(dir, "missing.txt"),
	}, "\n"))
	outDir := filepath.Join(dir, "out")

	_, stderr, err := execute(t, "", "batch", manifest, "--output-dir", outDir, "--concurrency", "2", "--seed", "1", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Success:    2")
	assert.Contains(t, stderr, "Rewritten:  1")
	assert.Contains(t, stderr, "Failures:   1")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBatchAllFailed(t *testing.T) {
	cfg := sandbox(t, "")
	dir := t.TempDir()
	manifest := writeFile(t, dir, "docs.txt", filepath.Join(dir, "nope.txt"))

	_, _, err := execute(t, "", "batch", manifest, "--output-dir", filepath.Join(dir, "out"), "--config", cfg)
	require.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"essay.txt", "essay"},
		{"/tmp/docs/my essay.md", "tmp_docs_my-essay"},
		{"https://example.com/post?id=1", "example.com_post_id=1"},
		{"", "document"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestApplyEnvKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := model.DefaultConfig()
	cfg.Paraphrase.Provider = "openai"
	if err := applyEnvKeys(cfg); err == nil {
		t.Error("expected error for missing OPENAI_API_KEY")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	if err := applyEnvKeys(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Paraphrase.APIKey != "sk-test" {
		t.Errorf("expected key from env, got %q", cfg.Paraphrase.APIKey)
	}

	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")
	cfg = model.DefaultConfig()
	cfg.Paraphrase.Provider = "ollama"
	if err := applyEnvKeys(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Paraphrase.BaseURL != "http://ollama:11434" {
		t.Errorf("expected base URL from env, got %q", cfg.Paraphrase.BaseURL)
	}
}
