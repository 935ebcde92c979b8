package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gorcc/internal/column"
)

func num(v float64, digits int) string {
	return humanize.CommafWithDigits(v, digits)
}

// WritePDF renders the report as an A4 PDF.
func WritePDF(w io.Writer, r *Report) error {
	col, curve := r.Column, r.Curve
	u := col.Units

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Column Interaction Analysis - "+r.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", r.Generated.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	if col.Description != "" {
		pdf.MultiCell(0, 5, tr(col.Description), "", "L", false)
	}
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(70, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}

	section("Input")
	if col.Shape == column.Circular {
		row("Section", fmt.Sprintf("Circular, D = %s %s", num(col.Diameter, 1), u.LengthLabel()))
	} else {
		row("Section", fmt.Sprintf("Rectangular, B x H = %s x %s %s (%s axis)",
			num(col.Width, 1), num(col.Depth, 1), u.LengthLabel(), curve.Axis))
	}
	row("Clear cover", fmt.Sprintf("%s %s", num(col.Cover, 2), u.LengthLabel()))
	row("f'c / fy", fmt.Sprintf("%s / %s %s", num(col.Fc, 1), num(col.Fy, 1), u.StressLabel()))
	row("Longitudinal bars", fmt.Sprintf("%d - %s", len(r.Layout.Bars), r.Layout.BarSize.Designation))
	row("Ties", fmt.Sprintf("%s (%s)", r.Layout.TieSize.Designation, curve.Confinement))
	row("Ag / Ast", fmt.Sprintf("%s / %s %s", num(r.Layout.GrossArea(), 1), num(r.Layout.SteelArea(), 2), u.AreaLabel()))
	pdf.Ln(4)

	section("Capacity")
	bal := curve.Balanced()
	row("beta1", fmt.Sprintf("%.4f", curve.Beta1))
	row("Pure compression Po", fmt.Sprintf("%s %s", num(curve.P0, 1), u.ForceLabel()))
	row("Max design axial phiPn,max", fmt.Sprintf("%s %s", num(curve.AxialCap, 1), u.ForceLabel()))
	row("Max design moment phiMn", fmt.Sprintf("%s %s at phiPn = %s %s",
		num(bal.PhiMn, 1), u.MomentLabel(), num(bal.PhiPn, 1), u.ForceLabel()))
	row("Curve points", fmt.Sprintf("%d of %d samples (%d skipped)", len(curve.Points), curve.Samples, curve.Skipped))
	pdf.Ln(4)

	if len(r.Checks.Checks) > 0 {
		section("Demand checks")
		widths := []float64{30, 25, 25, 30, 30, 25, 20}
		header := []string{"Demand", "Pu", "Mu", "phiPn", "phiMn", "Util. %", "Result"}
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range header {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for i, c := range r.Checks.Checks {
			label := c.Demand.Label
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			cells := []string{
				label,
				num(c.Demand.Pu, 1),
				num(c.Demand.Mu, 1),
				num(c.PhiPn, 1),
				num(c.PhiMn, 1),
				num(c.Utilization, 1),
				passFail(c.Pass),
			}
			for j, s := range cells {
				pdf.CellFormat(widths[j], 6, tr(s), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(2)
		row("Overall", passFail(r.Checks.Pass))
		pdf.Ln(4)
	}

	if d := r.Detailing; d != nil {
		section("Detailing")
		row("Steel ratio", fmt.Sprintf("%.2f%% (1%% to 8%%) %s",
			d.Rho*100, passFail(d.MeetsMinReinforcement && d.MeetsMaxReinforcement)))
		row("Clear spacing", fmt.Sprintf("%s > %s %s", num(d.ClearSpacing, 2), num(d.RequiredSpacing, 2), u.LengthLabel()))
		if d.TieSpacing > 0 {
			row("Tie spacing", fmt.Sprintf("%s <= %s %s %s", num(d.TieSpacing, 1), num(d.MaxTieSpacing, 1),
				u.LengthLabel(), passFail(d.TieSpacingOK)))
		} else {
			row("Max tie spacing", fmt.Sprintf("%s %s", num(d.MaxTieSpacing, 1), u.LengthLabel()))
		}
		row("Development length", fmt.Sprintf("%s %s", num(d.DevelopmentLength, 0), u.LengthLabel()))
		pdf.Ln(4)
	}

	if r.DiagramPNG != "" {
		pdf.AddPage()
		section("Interaction diagram")
		pdf.ImageOptions(r.DiagramPNG, 10, pdf.GetY(), 190, 0, false,
			gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
