package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/humanizer/internal/ingest"
	"github.com/ppiankov/humanizer/internal/store"
	"github.com/ppiankov/humanizer/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Process many documents from a manifest in parallel",
	Long: `Batch runs the process operation (detect, then humanize when needed) on
every document listed in a manifest file:
- One file path or URL per line
- Blank lines and # comments are ignored
- Documents are processed concurrently with a configurable worker count
- One JSON result per document is written to the output directory

Example:
  humanizer batch docs.txt
  humanizer batch docs.txt --concurrency 8 --output-dir ./humanized
  humanizer batch docs.txt --force --intensity high`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./humanizer-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVarP(&intensityArg, "intensity", "i", "", "rewrite intensity: low, medium, high (default from config)")
	batchCmd.Flags().BoolVar(&forceArg, "force", false, "humanize every document regardless of its score")
	batchCmd.Flags().Int64Var(&seedArg, "seed", 0, "random seed for reproducible output (0 = config or random)")
	batchCmd.Flags().StringVar(&providerArg, "provider", "", "paraphrase provider (openai, anthropic, ollama, huggingface)")
	batchCmd.Flags().StringVar(&modelArg, "model", "", "paraphrase model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	intensity, err := s.intensity()
	if err != nil {
		return err
	}
	workers := concurrency
	if workers <= 0 {
		workers = s.cfg.Concurrency.Workers
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Humanizer Batch Processing\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(stderr, "  Intensity:    %s\n", intensity)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
	if s.pipeline.Paraphrasing() {
		fmt.Fprintf(stderr, "  Paraphrase:   %s\n", s.cfg.Paraphrase.Provider)
	}
	fmt.Fprintf(stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	loader := ingest.NewLoader(ingest.NewFetcher(s.cfg.HTTP))
	processor := worker.NewBatchProcessor(s.pipeline, loader.Load, workers)

	results, err := processor.ProcessManifest(ctx, manifest, intensity, forceArg)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	successCount, failureCount, rewritten := 0, 0, 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		path := filepath.Join(outputDir, fmt.Sprintf("%03d-%s.json", result.Index+1, sanitizeFilename(result.Source)))
		if err := writeJSONFile(path, result); err != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}
		successCount++
		s.record(ctx, cmd, store.ProcessRun(result.Result, intensity))

		res := result.Result
		if res.Triggered {
			rewritten++
			fmt.Fprintf(stderr, "✓ %s (AI score %.2f → %.2f)\n", result.Source, res.Detection.Score, res.TransformedScore.Score)
		} else {
			fmt.Fprintf(stderr, "✓ %s (AI score %.2f, unchanged)\n", result.Source, res.Detection.Score)
		}
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:      %d documents\n", len(results))
	fmt.Fprintf(stderr, "  Success:    %d\n", successCount)
	fmt.Fprintf(stderr, "  Rewritten:  %d\n", rewritten)
	fmt.Fprintf(stderr, "  Failures:   %d\n", failureCount)
	fmt.Fprintf(stderr, "  Output:     %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d documents failed", failureCount)
	}
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename turns a path or URL into a safe file name stem
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, filepath.Ext(s))
	s = strings.Trim(filenameReplacer.Replace(s), "_-.")
	if s == "" {
		s = "document"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
