package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/report"
	"github.com/alexiusacademia/gorcc/internal/store"
	"github.com/spf13/cobra"
)

var (
	curvePlot   bool
	curveEvery  int
	curveOutput string
	curvePDF    string
	curveXLSX   string
)

var columnCurveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Generate the P-M interaction diagram of a column",
	Long: `Generate the design P-M interaction diagram of a column by sweeping the
neutral axis depth (rectangular) or compression segment angle (circular)
and summing concrete and steel forces by strain compatibility.

The analysis follows NSCP 2015 provisions:
  - Section 422.2: Strain compatibility, εcu = 0.003
  - Section 422.2.2.4: Equivalent rectangular stress block (β₁)
  - Section 421.2.2: Strength reduction factor from net tensile strain
  - Section 422.4.2.1: Maximum axial strength (0.80 tied, 0.85 spiral)

Examples:
  # Key points and ASCII plot
  gorcc column curve -f column.yaml

  # Minor axis with every 500th point listed
  gorcc column curve -f column.yaml --axis minor --every 500

  # Export the diagram and reports
  gorcc column curve -f column.yaml -o pm.png --pdf report.pdf --xlsx curve.xlsx`,
	Run: runColumnCurve,
}

func init() {
	columnCmd.AddCommand(columnCurveCmd)

	columnCurveCmd.Flags().BoolVarP(&curvePlot, "plot", "p", true, "Show ASCII interaction diagram")
	columnCurveCmd.Flags().IntVar(&curveEvery, "every", 0, "List every n-th curve point (0 lists key points only)")
	columnCurveCmd.Flags().StringVarP(&curveOutput, "output", "o", "", "Export interaction diagram to image file (.png, .svg, .pdf)")
	columnCurveCmd.Flags().StringVar(&curvePDF, "pdf", "", "Write a PDF report")
	columnCurveCmd.Flags().StringVar(&curveXLSX, "xlsx", "", "Write the curve points to an Excel workbook")
}

func runColumnCurve(cmd *cobra.Command, args []string) {
	col, axis, err := loadColumn()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	rep, err := report.Build(col, axis, curveOptions())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	curve := rep.Curve
	u := col.Units
	fu, mu := u.ForceLabel(), u.MomentLabel()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     COLUMN INTERACTION DIAGRAM - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printColumnInput(col, rep.Layout)

	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  β₁:\t%.4f\n", curve.Beta1)
	fmt.Fprintf(w, "  Yield strain (εy):\t%.6f\n", curve.EpsilonY)
	fmt.Fprintf(w, "  Confinement:\t%s\n", curve.Confinement)
	fmt.Fprintf(w, "  Samples:\t%d (%d skipped)\n", curve.Samples, curve.Skipped)
	w.Flush()
	fmt.Println()

	fmt.Println("KEY POINTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Point\tc\tεt\tφ\tPn (%s)\tMn (%s)\tφPn (%s)\tφMn (%s)\n", fu, mu, fu, mu)
	fmt.Fprintf(w, "  ─────\t─\t──\t─\t───────\t───────\t────────\t────────\n")
	for _, kp := range keyPoints(curve) {
		p := kp.point
		fmt.Fprintf(w, "  %s\t%.3f\t%.5f\t%.3f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			kp.name, p.C, p.EpsilonT, p.Phi, p.Pn, p.Mn, math.Min(p.PhiPn, curve.AxialCap), p.PhiMn)
	}
	w.Flush()
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Pure compression (Po):\t%.2f %s\n", curve.P0, fu)
	fmt.Fprintf(w, "  Max design axial (φPn,max):\t%.2f %s\n", curve.AxialCap, fu)
	w.Flush()
	fmt.Println()

	if curveEvery > 0 {
		fmt.Println("CURVE POINTS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tc\ta\tεt\tφ\tφPn (%s)\tφMn (%s)\n", fu, mu)
		pts := curve.Capped()
		for i := 0; i < len(pts); i += curveEvery {
			p := pts[i]
			fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.5f\t%.3f\t%.1f\t%.1f\n", i, p.C, p.A, p.EpsilonT, p.Phi, p.PhiPn, p.PhiMn)
		}
		w.Flush()
		fmt.Println()
	}

	plot := interactionData(col.Name, curve, col.Demands)
	if curvePlot {
		fmt.Println("INTERACTION DIAGRAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawInteraction(plot, 60, 20))
		fmt.Println()
	}

	if d := rep.Detailing; d != nil && len(d.Messages) > 0 {
		fmt.Println("DETAILING NOTES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, m := range d.Messages {
			fmt.Printf("  ⚠ %s\n", m)
		}
		fmt.Println()
	}

	bal := curve.Balanced()
	fmt.Print(diagram.DrawSummaryBox("DESIGN CAPACITY", []string{
		fmt.Sprintf("φPn,max = %.2f %s", curve.AxialCap, fu),
		fmt.Sprintf("φMn,max = %.2f %s at φPn = %.2f %s", bal.PhiMn, mu, bal.PhiPn, fu),
	}))
	fmt.Println()

	if curveOutput != "" {
		if err := diagram.ExportInteractionDiagram(plot, curveOutput); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
		} else {
			fmt.Printf("  Interaction diagram exported to: %s\n", curveOutput)
		}
	}
	if curvePDF != "" {
		if err := writePDFReport(rep, plot, curvePDF); err != nil {
			fmt.Printf("Error writing PDF: %v\n", err)
		} else {
			fmt.Printf("  PDF report written to: %s\n", curvePDF)
		}
	}
	if curveXLSX != "" {
		if err := writeFile(curveXLSX, func(f *os.File) error { return report.WriteXLSX(f, rep) }); err != nil {
			fmt.Printf("Error writing workbook: %v\n", err)
		} else {
			fmt.Printf("  Workbook written to: %s\n", curveXLSX)
		}
	}
	fmt.Println()

	saveRun(cmd, store.KindCurve, col, curve, nil)
}

type keyPoint struct {
	name  string
	point column.Point
}

// keyPoints picks the tension end, pure bending, balanced and squash
// points of a curve.
func keyPoints(c *column.Curve) []keyPoint {
	if len(c.Points) == 0 {
		return nil
	}
	bending := c.Points[0]
	for _, p := range c.Points {
		if math.Abs(p.Pn) < math.Abs(bending.Pn) {
			bending = p
		}
	}
	return []keyPoint{
		{"Tension end", c.Points[0]},
		{"Pure bending", bending},
		{"Max moment", c.Balanced()},
		{"Pure compression", c.Points[len(c.Points)-1]},
	}
}

// writePDFReport renders the interaction diagram to a temporary PNG and
// embeds it in the PDF report.
func writePDFReport(rep *report.Report, plot diagram.InteractionData, path string) error {
	dir, err := os.MkdirTemp("", "gorcc")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	png := filepath.Join(dir, "interaction.png")
	if err := diagram.ExportInteractionDiagram(plot, png); err != nil {
		return err
	}
	rep.DiagramPNG = png
	return writeFile(path, func(f *os.File) error { return report.WritePDF(f, rep) })
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
