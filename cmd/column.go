package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/nscp"
	"github.com/alexiusacademia/gorcc/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Shared column options
	columnFile    string
	columnAxis    string
	columnSamples  int
	columnNegative bool
	columnSave     bool
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Reinforced concrete column analysis",
	Long: `Strength analysis of tied and spiral reinforced concrete columns.

Columns are described in a YAML or JSON file:

  name: C1
  units: imperial        # imperial (in, psi, kip) or metric (mm, MPa, kN)
  shape: rectangular     # rectangular or circular
  width: 16
  depth: 16
  cover: 1.5
  fc: 4000
  fy: 60000
  bar_size: "#8"
  bars_per_face: 3
  bars_per_side: 1
  tie_size: "#3"
  tie_spacing: 16
  tied: true
  demands:
    - {label: "1.2D+1.6L", pu: 400, mu: 120}

Available subcommands:
  layout  - Bar arrangement and section preview
  curve   - P-M interaction diagram
  check   - Check factored demands against the interaction diagram
  axial   - Simplified pure axial capacity check`,
}

func init() {
	rootCmd.AddCommand(columnCmd)

	columnCmd.PersistentFlags().StringVarP(&columnFile, "file", "f", "", "Column definition file (.yaml, .yml or .json)")
	columnCmd.PersistentFlags().StringVar(&columnAxis, "axis", "major", "Bending axis for rectangular columns (major, minor)")
	columnCmd.PersistentFlags().IntVar(&columnSamples, "samples", 0, "Interaction sweep resolution (0 uses the default for the shape)")
	columnCmd.PersistentFlags().BoolVar(&columnNegative, "negative", false, "Also sweep with the opposite face in compression (negative moments)")
	columnCmd.PersistentFlags().BoolVar(&columnSave, "save", false, "Record the run in the history database")
}

// curveOptions returns the sweep options selected by the shared flags.
func curveOptions() column.Options {
	return column.Options{Samples: columnSamples, Negative: columnNegative}
}

// loadColumn reads the column file and the bending axis flags.
func loadColumn() (*column.Column, column.Axis, error) {
	if columnFile == "" {
		return nil, column.Major, errors.New("a column file is required (--file)")
	}
	axis, err := column.ParseAxis(columnAxis)
	if err != nil {
		return nil, column.Major, err
	}
	col, err := column.LoadFromFile(columnFile)
	if err != nil {
		return nil, column.Major, err
	}
	slog.Debug("column loaded", "file", columnFile, "name", col.Name, "shape", col.Shape)
	return col, axis, nil
}

// printColumnInput prints the input summary shared by the column commands.
func printColumnInput(col *column.Column, layout *column.Layout) {
	u := col.Units
	conf, _ := col.Confinement()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if col.Name != "" {
		fmt.Fprintf(w, "  Column:\t%s\n", col.Name)
	}
	if col.Shape == column.Circular {
		fmt.Fprintf(w, "  Diameter (D):\t%.2f %s\n", col.Diameter, u.LengthLabel())
	} else {
		fmt.Fprintf(w, "  Width (b):\t%.2f %s\n", col.Width, u.LengthLabel())
		fmt.Fprintf(w, "  Depth (h):\t%.2f %s\n", col.Depth, u.LengthLabel())
		fmt.Fprintf(w, "  Bending Axis:\t%s\n", layout.Axis)
	}
	fmt.Fprintf(w, "  Clear Cover:\t%.2f %s\n", col.Cover, u.LengthLabel())
	fmt.Fprintf(w, "  f'c:\t%.1f %s\n", col.Fc, u.StressLabel())
	fmt.Fprintf(w, "  fy:\t%.1f %s\n", col.Fy, u.StressLabel())
	fmt.Fprintf(w, "  Longitudinal Bars:\t%d %s\n", len(layout.Bars), col.BarSize)
	fmt.Fprintf(w, "  Ties:\t%s (%s)\n", col.TieSize, conf)
	w.Flush()
	fmt.Println()
}

// sectionData converts a layout, and optionally a curve point, into drawing
// data. A nil point draws the bars only.
func sectionData(title string, l *column.Layout, p *column.Point, epsY float64) diagram.SectionData {
	d := diagram.SectionData{
		Title:      title,
		Circular:   l.Shape == column.Circular,
		Width:      l.Width,
		Depth:      l.Depth,
		EpsilonCU:  nscp.EpsilonCU,
		EpsilonY:   epsY,
		LengthUnit: l.Units.LengthLabel(),
	}
	for _, b := range l.Bars {
		d.Bars = append(d.Bars, diagram.Point{X: b.Lateral, Y: b.Offset})
	}
	if p != nil && !p.Squash {
		d.NeutralAxisDepth = p.C
		d.StressBlockDepth = p.A
		d.EpsilonT = p.EpsilonT
	}
	return d
}

// interactionData converts a curve and its demands into plotting data.
func interactionData(title string, c *column.Curve, demands []column.Demand) diagram.InteractionData {
	d := diagram.InteractionData{
		Title:      title,
		ForceUnit:  c.Units.ForceLabel(),
		MomentUnit: c.Units.MomentLabel(),
		AxialCap:   c.AxialCap,
	}
	for _, p := range c.Outline() {
		d.Nominal = append(d.Nominal, diagram.Point{X: p.Mn, Y: p.Pn})
		d.Design = append(d.Design, diagram.Point{X: p.PhiMn, Y: p.PhiPn})
	}
	for _, dm := range demands {
		// signed moments only when the negative branch is drawn
		mu := math.Abs(dm.Mu)
		if len(c.Negative) > 0 {
			mu = dm.Mu
		}
		d.Demands = append(d.Demands, diagram.Point{X: mu, Y: dm.Pu})
		d.Labels = append(d.Labels, dm.Label)
	}
	return d
}

// saveRun records a run when --save is set. The edit functions adjust the
// run before it is stored. Failures are logged only.
func saveRun(cmd *cobra.Command, kind string, col *column.Column, curve *column.Curve, sum *column.CheckSummary, edits ...func(*store.Run)) {
	if !columnSave {
		return
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		slog.Warn("run not saved", "db", cfg.DBPath, "err", err)
		return
	}
	defer st.Close()

	run, err := store.NewRun(kind, col, curve, sum)
	if err == nil {
		for _, edit := range edits {
			edit(run)
		}
		err = st.Save(cmd.Context(), run)
	}
	if err != nil {
		slog.Warn("run not saved", "db", cfg.DBPath, "err", err)
		return
	}
	fmt.Printf("  Run saved: %s\n\n", run.ID)
}

// passMark returns the status indicator used in result tables.
func passMark(ok bool) string {
	if ok {
		return "✓ OK"
	}
	return "✗ FAIL"
}
