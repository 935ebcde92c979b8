package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/nscp"
	"github.com/alexiusacademia/gorcc/internal/store"
	"github.com/spf13/cobra"
)

var (
	axialUnits  string
	axialAg     float64
	axialAs     float64
	axialFc     float64
	axialFy     float64
	axialPu     float64
	axialTied   bool
	axialSpiral bool
)

var columnAxialCmd = &cobra.Command{
	Use:   "axial",
	Short: "Simplified pure axial capacity check",
	Long: `Check a concentrically loaded column without the interaction sweep:

  Pn = 0.85 f'c (Ag - Ast) + fy Ast
  φPn = φ Pn, with φ = 0.65 (tied) or 0.75 (spiral)

Areas and strengths come from the flags, or from a column file (--file).
Without a file exactly one of --tied or --spiral is required.

Examples:
  # Metric, 500x500mm with 4000 mm² of steel
  gorcc column axial --units metric --ag 250000 --as 4000 --fc 30 --fy 420 --pu 2000 --tied

  # Using the areas of a column file
  gorcc column axial -f column.yaml --pu 500`,
	Run: runColumnAxial,
}

func init() {
	columnCmd.AddCommand(columnAxialCmd)

	columnAxialCmd.Flags().StringVar(&axialUnits, "units", "metric", "Unit system (imperial, metric)")
	columnAxialCmd.Flags().Float64Var(&axialAg, "ag", 0, "Gross area Ag (in² or mm²)")
	columnAxialCmd.Flags().Float64Var(&axialAs, "as", 0, "Longitudinal steel area Ast (in² or mm²)")
	columnAxialCmd.Flags().Float64Var(&axialFc, "fc", 28, "Concrete compressive strength f'c (psi or MPa)")
	columnAxialCmd.Flags().Float64Var(&axialFy, "fy", 415, "Steel yield strength fy (psi or MPa)")
	columnAxialCmd.Flags().Float64Var(&axialPu, "pu", 0, "Factored axial load Pu (kip or kN)")
	columnAxialCmd.Flags().BoolVar(&axialTied, "tied", false, "Tied column")
	columnAxialCmd.Flags().BoolVar(&axialSpiral, "spiral", false, "Spirally reinforced column")
}

// axialInputFromFlags builds the simplified check input from the command
// flags. Exactly one of --tied and --spiral must be set.
func axialInputFromFlags() (column.AxialInput, error) {
	in := column.AxialInput{
		Ag: axialAg,
		As: axialAs,
		Fc: axialFc,
		Fy: axialFy,
		Pu: axialPu,
	}
	if err := in.Units.UnmarshalText([]byte(axialUnits)); err != nil {
		return in, err
	}
	conf, err := nscp.ParseConfinement(axialTied, axialSpiral)
	if err != nil {
		return in, err
	}
	in.Confinement = conf
	return in, nil
}

func runColumnAxial(cmd *cobra.Command, args []string) {
	var (
		col *column.Column
		res *column.AxialCheck
		u   column.Units
		err error
	)
	if columnFile != "" {
		col, _, err = loadColumn()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		u = col.Units
		res, err = col.AxialCheck(axialPu)
	} else {
		var in column.AxialInput
		in, err = axialInputFromFlags()
		if err == nil {
			u = in.Units
			res, err = column.AxialCapacity(in)
		}
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PURE AXIAL CAPACITY CHECK - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if col != nil && col.Name != "" {
		fmt.Fprintf(w, "  Column:\t%s\n", col.Name)
	}
	fmt.Fprintf(w, "  Gross area (Ag):\t%.2f %s\n", res.Ag, u.AreaLabel())
	fmt.Fprintf(w, "  Steel area (Ast):\t%.2f %s\n", res.As, u.AreaLabel())
	fmt.Fprintf(w, "  Steel ratio:\t%.2f%%\n", res.SteelRatio)
	fmt.Fprintf(w, "  Factored load (Pu):\t%.2f %s\n", res.Pu, u.ForceLabel())
	w.Flush()
	fmt.Println()

	fmt.Println("AXIAL STRENGTH:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Concrete 0.85f'c(Ag - Ast):\t%.2f %s\n", u.Force(res.PnConcrete), u.ForceLabel())
	fmt.Fprintf(w, "  Steel fy·Ast:\t%.2f %s\n", u.Force(res.PnSteel), u.ForceLabel())
	fmt.Fprintf(w, "  Nominal strength (Pn):\t%.2f %s\n", u.Force(res.PnTotal), u.ForceLabel())
	fmt.Fprintf(w, "  Strength reduction factor (φ):\t%.2f\n", res.Phi)
	w.Flush()
	fmt.Println()

	status := "ADEQUATE"
	if !res.Pass {
		status = "NOT ADEQUATE"
	}
	fmt.Print(diagram.DrawSummaryBox("RESULT: "+status, []string{
		fmt.Sprintf("φPn = %.2f %s", res.PuCapacity, u.ForceLabel()),
		fmt.Sprintf("Pu  = %.2f %s", res.Pu, u.ForceLabel()),
		fmt.Sprintf("Utilization = %.1f%%", res.Utilization),
	}))
	fmt.Println()

	if col != nil {
		saveRun(cmd, store.KindAxial, col, nil, nil, func(run *store.Run) {
			run.AxialCap = res.PuCapacity
			run.Utilization = res.Utilization
			run.Pass = res.Pass
		})
	}
}
