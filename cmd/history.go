package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved analysis runs",
	Long: `List the analysis runs recorded with --save or through the HTTP API,
newest first. The database path is read from GORCC_DB (default gorcc.db).

Examples:
  gorcc history
  gorcc history --limit 50`,
	Run: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer st.Close()

	runs, err := st.List(cmd.Context(), historyLimit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ANALYSIS HISTORY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Printf("  No runs recorded in %s.\n\n", cfg.DBPath)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tWhen\tKind\tColumn\tShape\tAxis\tφPn,max\tUtil. (%%)\tStatus\n")
	fmt.Fprintf(w, "  ──\t────\t────\t──────\t─────\t────\t───────\t─────────\t──────\n")
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s %s\t%.1f\t%s\n",
			id, humanize.Time(r.CreatedAt), r.Kind, r.Name, r.Shape, r.Axis,
			humanize.CommafWithDigits(r.AxialCap, 1), forceUnit(r.Units), r.Utilization, passMark(r.Pass))
	}
	w.Flush()
	fmt.Println()
}

func forceUnit(units string) string {
	var u column.Units
	u.UnmarshalText([]byte(units))
	return u.ForceLabel()
}
