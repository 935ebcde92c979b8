package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/report"
	"github.com/alexiusacademia/gorcc/internal/store"
	"github.com/spf13/cobra"
)

var (
	checkPu      float64
	checkMu      float64
	checkDemands string
	checkPlot    bool
)

var columnCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check factored demands against the interaction diagram",
	Long: `Check factored axial load and moment demands against the design
interaction diagram of a column.

At |Mu| the design axial strength φPn is interpolated on the compression
branch of the curve and limited to φPn,max. At Pu the design moment
strength φMn is interpolated. The utilization is the larger of Pu/φPn
and Mu/φMn. Demands beyond the extent of the curve report 999%.

Demands come from --pu/--mu, an Excel workbook (--demands) with label,
Pu and Mu columns, or the demands listed in the column file.

Examples:
  # Demands from the column file
  gorcc column check -f column.yaml

  # A single demand
  gorcc column check -f column.yaml --pu 400 --mu 120

  # Demands from a workbook
  gorcc column check -f column.yaml --demands loads.xlsx`,
	Run: runColumnCheck,
}

func init() {
	columnCmd.AddCommand(columnCheckCmd)

	columnCheckCmd.Flags().Float64Var(&checkPu, "pu", 0, "Factored axial load Pu (kip or kN, compression positive)")
	columnCheckCmd.Flags().Float64Var(&checkMu, "mu", 0, "Factored moment Mu (kip-ft or kN-m)")
	columnCheckCmd.Flags().StringVar(&checkDemands, "demands", "", "Excel workbook with label, Pu and Mu columns")
	columnCheckCmd.Flags().BoolVarP(&checkPlot, "plot", "p", false, "Show ASCII interaction diagram with the demands")
}

// checkDemandsFor selects the demands to check: flags first, then the
// workbook, then the column file.
func checkDemandsFor(cmd *cobra.Command, col *column.Column) ([]column.Demand, error) {
	if cmd.Flags().Changed("pu") || cmd.Flags().Changed("mu") {
		return []column.Demand{{Label: "Input", Pu: checkPu, Mu: checkMu}}, nil
	}
	if checkDemands != "" {
		f, err := os.Open(checkDemands)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return report.ReadDemands(f)
	}
	return col.Demands, nil
}

func runColumnCheck(cmd *cobra.Command, args []string) {
	col, axis, err := loadColumn()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	demands, err := checkDemandsFor(cmd, col)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(demands) == 0 {
		fmt.Println("Error: No demands to check.")
		fmt.Println("Use --pu/--mu, --demands or list demands in the column file.")
		return
	}

	layout, err := col.Layout(axis)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	curve, err := col.Interaction(axis, curveOptions())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	sum := curve.CheckAll(demands)

	u := col.Units
	fu, mu := u.ForceLabel(), u.MomentLabel()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     COLUMN CAPACITY CHECK - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printColumnInput(col, layout)

	fmt.Println("DEMAND CHECKS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Demand\tPu (%s)\tMu (%s)\tφPn (%s)\tφMn (%s)\tUtil. (%%)\tStatus\n", fu, mu, fu, mu)
	fmt.Fprintf(w, "  ──────\t───────\t───────\t────────\t────────\t─────────\t──────\n")
	for i, c := range sum.Checks {
		label := c.Demand.Label
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		marker := ""
		if i == sum.Governing {
			marker = "  ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f\t%s%s\n",
			label, c.Demand.Pu, c.Demand.Mu, c.PhiPn, c.PhiMn, c.Utilization, passMark(c.Pass), marker)
	}
	w.Flush()
	fmt.Println()

	if checkPlot {
		fmt.Println("INTERACTION DIAGRAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawInteraction(interactionData(col.Name, curve, demands), 60, 20))
		fmt.Println()
	}

	g := sum.Checks[sum.Governing]
	status := "ADEQUATE"
	if !sum.Pass {
		status = "NOT ADEQUATE"
	}
	label := g.Demand.Label
	if label == "" {
		label = fmt.Sprintf("#%d", sum.Governing+1)
	}
	fmt.Print(diagram.DrawSummaryBox("RESULT: "+status, []string{
		fmt.Sprintf("Governing demand: %s", label),
		fmt.Sprintf("Pu = %.2f %s, Mu = %.2f %s", g.Demand.Pu, fu, g.Demand.Mu, mu),
		fmt.Sprintf("φ = %.3f, φPn = %.2f %s", g.Phi, g.PhiPn, fu),
		fmt.Sprintf("Utilization = %.1f%%", g.Utilization),
	}))
	fmt.Println()

	saveRun(cmd, store.KindCheck, col, curve, &sum)
}
