package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/humanizer/internal/ingest"
	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/pipeline"
	"github.com/ppiankov/humanizer/internal/store"
)

var (
	inputURL     string
	intensityArg string
	forceArg     bool
	outJSON      string
	seedArg      int64
	providerArg  string
	modelArg     string
	timeout      time.Duration
)

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Estimate how likely a text is to be machine-written",
	Long: `Detect scores a text between 0 (human) and 1 (machine).

Input is read from a file (.txt, .md, .html, .pdf, .docx), a URL, or stdin.

Example:
  humanizer detect essay.md
  humanizer detect --url https://example.com/post
  cat essay.txt | humanizer detect --json -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

var humanizeCmd = &cobra.Command{
	Use:   "humanize [file]",
	Short: "Rewrite a text so it reads as human-written",
	Long: `Humanize rewrites a text at the given intensity and reports how the
detection score and wording changed. The rewritten text goes to stdout.

Example:
  humanizer humanize essay.md --intensity high
  humanizer humanize essay.md --seed 42 --json result.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHumanize,
}

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Detect, then humanize only if the text looks machine-written",
	Long: `Process scores a text and rewrites it when the score is above the
machine threshold, or always with --force. Otherwise the text is returned unchanged.

Example:
  humanizer process essay.md
  humanizer process essay.md --force --intensity low`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	for _, cmd := range []*cobra.Command{detectCmd, humanizeCmd, processCmd} {
		rootCmd.AddCommand(cmd)
		cmd.Flags().StringVar(&inputURL, "url", "", "fetch input text from a URL")
		cmd.Flags().StringVar(&outJSON, "json", "", "write the result as JSON to this path (- for stdout)")
		cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	}
	for _, cmd := range []*cobra.Command{humanizeCmd, processCmd} {
		cmd.Flags().StringVarP(&intensityArg, "intensity", "i", "", "rewrite intensity: low, medium, high (default from config)")
		cmd.Flags().Int64Var(&seedArg, "seed", 0, "random seed for reproducible output (0 = config or random)")
		cmd.Flags().StringVar(&providerArg, "provider", "", "paraphrase provider (openai, anthropic, ollama, huggingface)")
		cmd.Flags().StringVar(&modelArg, "model", "", "paraphrase model name")
	}
	processCmd.Flags().BoolVar(&forceArg, "force", false, "humanize even when the text looks human-written")
}

// session holds what a single command invocation needs
type session struct {
	cfg      *model.Config
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	history  *store.Store
}

func (s *session) close() {
	if s.history != nil {
		_ = s.history.Close()
	}
}

// record stores a run when history is enabled; failures only warn
func (s *session) record(ctx context.Context, cmd *cobra.Command, run *store.Run) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, run); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record history: %v\n", err)
	}
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flag := cmd.Flags().Lookup("provider"); flag != nil && flag.Changed {
		cfg.Paraphrase.Provider = providerArg
		if err := applyEnvKeys(cfg); err != nil {
			return nil, err
		}
	}
	if flag := cmd.Flags().Lookup("model"); flag != nil && flag.Changed {
		cfg.Paraphrase.Model = modelArg
	}
	if flag := cmd.Flags().Lookup("seed"); flag != nil && flag.Changed {
		cfg.Transform.Seed = seedArg
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	s := &session{cfg: cfg, logger: logger, pipeline: p}
	if cfg.History.Enabled {
		if s.history, err = store.Open(cfg.History.Path); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *session) intensity() (model.Intensity, error) {
	raw := intensityArg
	if raw == "" {
		raw = string(s.cfg.Transform.Intensity)
	}
	return model.ParseIntensity(raw)
}

// readInput returns the text named by --url, a file argument, or stdin
func readInput(ctx context.Context, cmd *cobra.Command, cfg *model.Config, args []string) (string, error) {
	switch {
	case inputURL != "":
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Fetching: %s\n", inputURL)
		}
		doc, err := ingest.NewFetcher(cfg.HTTP).Fetch(ctx, inputURL)
		if err != nil {
			return "", fmt.Errorf("fetch failed: %w", err)
		}
		return doc.Text, nil
	case len(args) == 1:
		doc, err := ingest.ParseFile(args[0])
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	default:
		return ingest.ReadAll(cmd.InOrStdin(), cfg.HTTP.MaxBodyBytes)
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	text, err := readInput(ctx, cmd, s.cfg, args)
	if err != nil {
		return err
	}
	res, err := s.pipeline.Detect(text)
	if err != nil {
		return fmt.Errorf("detect failed: %w", err)
	}
	s.record(ctx, cmd, store.DetectRun(res))

	if outJSON != "" {
		if err := writeResultJSON(cmd, res); err != nil || outJSON == "-" {
			return err
		}
	}
	printDetection(cmd.OutOrStdout(), res.Detection)
	return nil
}

func runHumanize(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
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
	text, err := readInput(ctx, cmd, s.cfg, args)
	if err != nil {
		return err
	}
	res, err := s.pipeline.Transform(ctx, text, intensity)
	if err != nil {
		return fmt.Errorf("humanize failed: %w", err)
	}
	s.record(ctx, cmd, store.TransformRun(res))

	if outJSON != "" {
		if err := writeResultJSON(cmd, res); err != nil || outJSON == "-" {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Transformed)
	printTransformSummary(cmd.ErrOrStderr(), res.OriginalScore, res.TransformedScore, res.Changes, res.Escalated, res.Source)
	return nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
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
	text, err := readInput(ctx, cmd, s.cfg, args)
	if err != nil {
		return err
	}
	res, err := s.pipeline.Process(ctx, text, intensity, forceArg)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}
	s.record(ctx, cmd, store.ProcessRun(res, intensity))

	if outJSON != "" {
		if err := writeResultJSON(cmd, res); err != nil || outJSON == "-" {
			return err
		}
	}
	if !res.Triggered {
		fmt.Fprintln(cmd.OutOrStdout(), res.Original)
		fmt.Fprintf(cmd.ErrOrStderr(), "\nAI score %.2f is below the threshold; text left unchanged (use --force to rewrite)\n", res.Detection.Score)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), *res.Transformed)
	printTransformSummary(cmd.ErrOrStderr(), res.Detection, *res.TransformedScore, *res.Changes, res.Escalated, res.Source)
	return nil
}

// writeResultJSON writes v to --json; "-" means stdout
func writeResultJSON(cmd *cobra.Command, v interface{}) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if outJSON != "-" {
		f, createErr := os.Create(outJSON)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", outJSON, createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", outJSON, closeErr)
			}
		}()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if outJSON != "-" && verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", outJSON)
	}
	return nil
}

func verdict(st model.ScoredText) string {
	if st.IsLikelyMachine {
		return "likely AI"
	}
	return "likely human"
}

func printDetection(w io.Writer, st model.ScoredText) {
	fmt.Fprintf(w, "AI score:        %.2f (%s)\n", st.Score, verdict(st))
	fmt.Fprintf(w, "Confidence:      %.0f%%\n", st.Confidence*100)
	fmt.Fprintf(w, "Recommendation:  %s\n", st.Recommendation)
	if len(st.Reasons) > 0 {
		fmt.Fprintln(w, "Reasons:")
		for _, r := range st.Reasons {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	if verbose && len(st.Signals) > 0 {
		fmt.Fprintln(w, "Signals:")
		for _, sig := range st.Signals {
			fmt.Fprintf(w, "  %+.3f  %-20s %s\n", sig.Delta, sig.Type, sig.Description)
		}
	}
}

func printTransformSummary(w io.Writer, before, after model.ScoredText, changes model.ChangeReport, escalated bool, source model.Source) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 59))
	fmt.Fprintf(w, "  AI score:    %.2f → %.2f (%s)\n", before.Score, after.Score, verdict(after))
	fmt.Fprintf(w, "  Similarity:  %.1f%%\n", changes.Similarity)
	fmt.Fprintf(w, "  Changed:     %.1f%% of words (%+d words, %+d sentences)\n",
		changes.PercentChanged, changes.WordCountDelta, changes.SentenceCountDelta)
	fmt.Fprintf(w, "  Source:      %s\n", source)
	if escalated {
		fmt.Fprintln(w, "  Escalated:   additional pass applied")
	}
	fmt.Fprintln(w, strings.Repeat("─", 59))
}
