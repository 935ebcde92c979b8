package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/nscp"
	"github.com/spf13/cobra"
)

var (
	// Unfactored axial loads
	loadsAxial nscp.LoadEffects
	// Unfactored moments
	loadsMoment nscp.LoadEffects

	// Options
	showAll       bool
	useSimplified bool
	loadsFile     string
	loadsAxis     string
)

var loadsCmd = &cobra.Command{
	Use:   "loads",
	Short: "Calculate factored column demands using NSCP load combinations",
	Long: `Calculate the factored axial load (Pu) and moment (Mu) of a column
for the NSCP 2015 load combinations.

Provide unfactored axial loads and moments from different load types. The
combination with the largest factored axial load governs. With a column
file, every combination is also checked against its interaction diagram.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Gravity loads (dead + live)
  gorcc loads --pd 500 --pl 300 --md 40 --ml 30

  # With wind, showing all combinations
  gorcc loads --pd 500 --pl 300 --pw 50 --md 40 --ml 30 --mw 60 --all

  # Check every combination against a column
  gorcc loads --pd 500 --pl 300 --md 40 --ml 30 -f column.yaml`,
	Run: runLoads,
}

func init() {
	rootCmd.AddCommand(loadsCmd)

	f := loadsCmd.Flags()

	// Axial load flags
	f.Float64Var(&loadsAxial.Dead, "pd", 0, "Axial load due to dead load")
	f.Float64Var(&loadsAxial.Live, "pl", 0, "Axial load due to live load")
	f.Float64Var(&loadsAxial.Roof, "pr", 0, "Axial load due to roof live load")
	f.Float64Var(&loadsAxial.Wind, "pw", 0, "Axial load due to wind load")
	f.Float64Var(&loadsAxial.Earthquake, "pe", 0, "Axial load due to earthquake load")
	f.Float64Var(&loadsAxial.Rain, "prain", 0, "Axial load due to rain load")

	// Moment flags
	f.Float64Var(&loadsMoment.Dead, "md", 0, "Moment due to dead load")
	f.Float64Var(&loadsMoment.Live, "ml", 0, "Moment due to live load")
	f.Float64Var(&loadsMoment.Roof, "mr", 0, "Moment due to roof live load")
	f.Float64Var(&loadsMoment.Wind, "mw", 0, "Moment due to wind load")
	f.Float64Var(&loadsMoment.Earthquake, "me", 0, "Moment due to earthquake load")
	f.Float64Var(&loadsMoment.Rain, "mrain", 0, "Moment due to rain load")

	// Options
	f.BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	f.BoolVarP(&useSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	f.StringVarP(&loadsFile, "file", "f", "", "Column file to check the factored demands against")
	f.StringVar(&loadsAxis, "axis", "major", "Bending axis for rectangular columns (major, minor)")
}

// combinationDemands converts factored demands into labelled column demands.
func combinationDemands(demands []nscp.FactoredDemand) []column.Demand {
	out := make([]column.Demand, len(demands))
	for i, d := range demands {
		out[i] = column.Demand{Label: d.Combination.ID, Pu: d.Pu, Mu: d.Mu}
	}
	return out
}

func runLoads(cmd *cobra.Command, args []string) {
	if loadsAxial.IsZero() && loadsMoment.IsZero() {
		fmt.Println("Error: Please provide at least one unfactored axial load or moment.")
		fmt.Println("Use 'gorcc loads --help' for usage information.")
		return
	}

	// Select which combinations to use
	combinations := nscp.LoadCombinations
	if useSimplified {
		combinations = nscp.SimplifiedCombinations
	}
	demands := nscp.FactorDemands(loadsAxial, loadsMoment, combinations)
	governing, _ := nscp.GoverningAxial(demands)

	var checks *column.CheckSummary
	if loadsFile != "" {
		col, err := column.LoadFromFile(loadsFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		axis, err := column.ParseAxis(loadsAxis)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		curve, err := col.Interaction(axis, column.Options{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		sum := curve.CheckAll(combinationDemands(demands))
		checks = &sum
	}

	// Print header
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 FACTORED COLUMN DEMANDS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	// Print input loads
	fmt.Println("UNFACTORED LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Load\tP\tM\n")
	fmt.Fprintf(w, "  ────\t─\t─\n")
	for _, row := range []struct {
		name string
		p, m float64
	}{
		{"Dead Load (D)", loadsAxial.Dead, loadsMoment.Dead},
		{"Live Load (L)", loadsAxial.Live, loadsMoment.Live},
		{"Roof Live Load (Lr)", loadsAxial.Roof, loadsMoment.Roof},
		{"Wind Load (W)", loadsAxial.Wind, loadsMoment.Wind},
		{"Earthquake Load (E)", loadsAxial.Earthquake, loadsMoment.Earthquake},
		{"Rain Load (R)", loadsAxial.Rain, loadsMoment.Rain},
	} {
		if row.p != 0 || row.m != 0 {
			fmt.Fprintf(w, "  %s\t%.2f\t%.2f\n", row.name, row.p, row.m)
		}
	}
	w.Flush()
	fmt.Println()

	if showAll || checks != nil {
		fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if checks != nil {
			fmt.Fprintf(w, "  #\tCombination\tPu\tMu\tUtil. (%%)\tStatus\n")
			fmt.Fprintf(w, "  ─\t───────────\t──\t──\t─────────\t──────\n")
		} else {
			fmt.Fprintf(w, "  #\tCombination\tPu\tMu\n")
			fmt.Fprintf(w, "  ─\t───────────\t──\t──\n")
		}
		for i, d := range demands {
			marker := ""
			if d.Combination.ID == governing.Combination.ID {
				marker = " ← GOVERNS"
			}
			if checks != nil {
				c := checks.Checks[i]
				fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\t%.1f\t%s%s\n",
					d.Combination.ID, d.Combination.Description, d.Pu, d.Mu, c.Utilization, passMark(c.Pass), marker)
			} else {
				fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f%s\n", d.Combination.ID, d.Combination.Description, d.Pu, d.Mu, marker)
			}
		}
		w.Flush()
		fmt.Println()
	}

	// Print result
	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: %s (%s)\n", governing.Combination.ID, governing.Combination.Description)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  FACTORED AXIAL (Pu) = %.2f  \n", governing.Pu)
	fmt.Printf("  ║  FACTORED MOMENT (Mu) = %.2f  \n", governing.Mu)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()

	if checks != nil && checks.Governing >= 0 {
		g := checks.Checks[checks.Governing]
		status := "ADEQUATE"
		if !checks.Pass {
			status = "NOT ADEQUATE"
		}
		fmt.Printf("  Column %s: highest utilization %.1f%% (%s)\n\n", status, g.Utilization, g.Demand.Label)
	}
}
