package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/humanizer/internal/store"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	Long: `History lists the most recent detect, humanize and process runs recorded
in the local sqlite database. Recording is enabled with history.enabled in the
config file or HUMANIZER_HISTORY_ENABLED=true.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	runs, err := st.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOPERATION\tINTENSITY\tSCORE\tAFTER\tSIMILARITY\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Operation,
			dash(string(r.Intensity)),
			r.OriginalScore,
			optionalFloat(r.TransformedScore, "%.2f"),
			optionalFloat(r.Similarity, "%.1f%%"),
			dash(string(r.Source)),
		)
	}
	return tw.Flush()
}

func optionalFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
