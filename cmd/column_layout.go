package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	layoutBalanced bool
	layoutDiagram  bool
	layoutOutput   string
)

var columnLayoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the bar arrangement of a column",
	Long: `Place the longitudinal bars of a column and check their clear spacing.

Bar offsets are measured from the section centroid toward the compression
face of the chosen bending axis. Depths are measured from the compression face.

Examples:
  # Bar table and section preview
  gorcc column layout -f column.yaml

  # Minor axis, with the stress block at the balanced point
  gorcc column layout -f column.yaml --axis minor --balanced

  # Export the section as an image
  gorcc column layout -f column.yaml -o section.png`,
	Run: runColumnLayout,
}

func init() {
	columnCmd.AddCommand(columnLayoutCmd)

	columnLayoutCmd.Flags().BoolVar(&layoutBalanced, "balanced", false, "Show the compression zone at the point of maximum design moment")
	columnLayoutCmd.Flags().BoolVarP(&layoutDiagram, "diagram", "D", true, "Show ASCII section diagram")
	columnLayoutCmd.Flags().StringVarP(&layoutOutput, "output", "o", "", "Export section diagram to image file (.png, .svg, .pdf)")
}

func runColumnLayout(cmd *cobra.Command, args []string) {
	col, axis, err := loadColumn()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	layout, err := col.Layout(axis)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	var (
		point *column.Point
		epsY  float64
	)
	if layoutBalanced {
		curve, err := col.Interaction(axis, curveOptions())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		bal := curve.Balanced()
		point, epsY = &bal, curve.EpsilonY
	}

	u := col.Units

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     COLUMN BAR LAYOUT - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printColumnInput(col, layout)

	fmt.Println("LONGITUDINAL BARS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Bar\tOffset (%s)\tLateral (%s)\tDepth d (%s)\tArea (%s)\n",
		u.LengthLabel(), u.LengthLabel(), u.LengthLabel(), u.AreaLabel())
	fmt.Fprintf(w, "  ───\t──────────\t───────────\t───────────\t─────────\n")
	for i, b := range layout.Bars {
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\t%.3f\n", i+1, b.Offset, b.Lateral, layout.DepthOf(b), b.Area)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	ag, ast := layout.GrossArea(), layout.SteelArea()
	fmt.Fprintf(w, "  Gross area (Ag):\t%.2f %s\n", ag, u.AreaLabel())
	fmt.Fprintf(w, "  Steel area (Ast):\t%.3f %s\n", ast, u.AreaLabel())
	fmt.Fprintf(w, "  Steel ratio (ρg):\t%.4f\n", ast/ag)
	fmt.Fprintf(w, "  Clear bar spacing:\t%.3f %s\n", layout.ClearSpacing, u.LengthLabel())
	fmt.Fprintf(w, "  Required spacing:\t%.3f %s ✓\n", layout.RequiredSpacing, u.LengthLabel())
	if point != nil {
		fmt.Fprintf(w, "  Neutral axis depth (c):\t%.3f %s\n", point.C, u.LengthLabel())
		fmt.Fprintf(w, "  Stress block depth (a):\t%.3f %s\n", point.A, u.LengthLabel())
		fmt.Fprintf(w, "  Net tensile strain (εt):\t%.6f\n", point.EpsilonT)
	}
	w.Flush()
	fmt.Println()

	data := sectionData(col.Name, layout, point, epsY)
	if layoutDiagram {
		fmt.Println("SECTION DIAGRAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Print(diagram.DrawASCIISection(data))
		if s := diagram.DrawStrainDiagram(data); s != "" {
			fmt.Println()
			fmt.Print(s)
		}
		fmt.Println()
	}

	if layoutOutput != "" {
		if err := diagram.ExportSectionDiagram(data, layoutOutput); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
		} else {
			fmt.Printf("  Section diagram exported to: %s\n\n", layoutOutput)
		}
	}
}
