package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/humanizer/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the detect, humanize and process operations over HTTP",
	Long: `Serve starts the JSON API:
  GET  /health
  POST /api/detect-ai   {"text": "..."}
  POST /api/humanize    {"text": "...", "intensity": "medium"}
  POST /api/process     {"text": "...", "intensity": "medium", "forceHumanize": false}

Example:
  humanizer serve --addr :5000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&providerArg, "provider", "", "paraphrase provider (openai, anthropic, ollama, huggingface)")
	serveCmd.Flags().StringVar(&modelArg, "model", "", "paraphrase model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	addr := serveAddr
	if addr == "" {
		addr = s.cfg.Server.Addr
	}

	opts := server.Options{
		MaxBodyBytes: s.cfg.Server.MaxBodyBytes,
		DetectTTL:    s.cfg.Server.DetectTTL,
		Logger:       s.logger,
	}
	if s.history != nil {
		opts.History = s.history
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(s.pipeline, opts).ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
