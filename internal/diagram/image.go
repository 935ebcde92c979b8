package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	steelColor  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	blockFill   = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	blockStroke = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	naColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	capColor    = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

func xys(pts []Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return out
}

// ExportInteractionDiagram exports the interaction curve with the demands
// to an image file. The format follows the extension (.png, .svg, .pdf).
func ExportInteractionDiagram(data InteractionData, filename string) error {
	if len(data.Design) < 2 {
		return fmt.Errorf("interaction diagram needs at least 2 points, got %d", len(data.Design))
	}

	p := plot.New()
	p.Title.Text = "P-M Interaction Diagram"
	if data.Title != "" {
		p.Title.Text += " - " + data.Title
	}
	p.X.Label.Text = fmt.Sprintf("Moment (%s)", data.MomentUnit)
	p.Y.Label.Text = fmt.Sprintf("Axial load (%s)", data.ForceUnit)
	p.Add(plotter.NewGrid())

	if len(data.Nominal) > 1 {
		nominal, err := plotter.NewLine(xys(data.Nominal))
		if err != nil {
			return err
		}
		nominal.LineStyle.Width = vg.Points(1)
		nominal.LineStyle.Color = color.Gray{Y: 100}
		nominal.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(nominal)
		p.Legend.Add("Pn-Mn", nominal)
	}

	design, err := plotter.NewLine(xys(data.Design))
	if err != nil {
		return err
	}
	design.LineStyle.Width = vg.Points(2)
	design.LineStyle.Color = blockStroke
	p.Add(design)
	p.Legend.Add("φPn-φMn", design)

	if data.AxialCap > 0 {
		var minM, maxM float64
		for _, pt := range data.Design {
			minM = math.Min(minM, pt.X)
			maxM = math.Max(maxM, pt.X)
		}
		capLine, err := plotter.NewLine(plotter.XYs{
			{X: minM, Y: data.AxialCap},
			{X: maxM, Y: data.AxialCap},
		})
		if err != nil {
			return err
		}
		capLine.LineStyle.Width = vg.Points(1.5)
		capLine.LineStyle.Color = capColor
		capLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(capLine)
		p.Legend.Add("φPn,max", capLine)
	}

	if len(data.Demands) > 0 {
		demands, err := plotter.NewScatter(xys(data.Demands))
		if err != nil {
			return err
		}
		demands.GlyphStyle.Color = naColor
		demands.GlyphStyle.Radius = vg.Points(4)
		demands.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(demands)
		p.Legend.Add("Pu-Mu", demands)

		if len(data.Labels) == len(data.Demands) {
			labels, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    xys(data.Demands),
				Labels: data.Labels,
			})
			if err != nil {
				return err
			}
			p.Add(labels)
		}
	}
	p.Legend.Top = true

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportSectionDiagram exports the column section with its bars and the
// compression zone to an image file.
func ExportSectionDiagram(data SectionData, filename string) error {
	p := plot.New()
	p.Title.Text = "Column Section"
	if data.Title != "" {
		p.Title.Text += " - " + data.Title
	}
	p.X.Label.Text = fmt.Sprintf("Width (%s)", data.LengthUnit)
	p.Y.Label.Text = fmt.Sprintf("Depth (%s)", data.LengthUnit)

	halfW, halfD := data.Width/2, data.Depth/2

	var outline plotter.XYs
	if data.Circular {
		for i := 0; i <= 72; i++ {
			t := 2 * math.Pi * float64(i) / 72
			outline = append(outline, plotter.XY{X: halfD * math.Cos(t), Y: halfD * math.Sin(t)})
		}
	} else {
		outline = plotter.XYs{
			{X: -halfW, Y: -halfD},
			{X: halfW, Y: -halfD},
			{X: halfW, Y: halfD},
			{X: -halfW, Y: halfD},
			{X: -halfW, Y: -halfD},
		}
	}
	line, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.Black
	p.Add(line)

	if data.StressBlockDepth > 0 {
		block, err := plotter.NewPolygon(stressBlock(data))
		if err != nil {
			return err
		}
		block.Color = blockFill
		block.LineStyle.Color = blockStroke
		p.Add(block)
	}

	if data.NeutralAxisDepth > 0 && data.NeutralAxisDepth < data.Depth {
		naY := halfD - data.NeutralAxisDepth
		naLine, err := plotter.NewLine(plotter.XYs{
			{X: -halfW * 1.1, Y: naY},
			{X: halfW * 1.1, Y: naY},
		})
		if err != nil {
			return err
		}
		naLine.LineStyle.Width = vg.Points(1.5)
		naLine.LineStyle.Color = naColor
		naLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(naLine)

		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: halfW * 1.1, Y: naY}},
			Labels: []string{fmt.Sprintf("N.A. c=%.1f", data.NeutralAxisDepth)},
		})
		if err != nil {
			return err
		}
		p.Add(label)
	}

	if len(data.Bars) > 0 {
		bars, err := plotter.NewScatter(xys(data.Bars))
		if err != nil {
			return err
		}
		bars.GlyphStyle.Color = steelColor
		bars.GlyphStyle.Radius = vg.Points(5)
		bars.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(bars)
	}

	// Equal scaling on both axes
	ext := math.Max(halfW, halfD) * 1.3
	p.X.Min, p.X.Max = -ext, ext
	p.Y.Min, p.Y.Max = -ext, ext

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// stressBlock returns the outline of the compression zone of depth a
// measured from the top (compression) face.
func stressBlock(data SectionData) plotter.XYs {
	halfW, halfD := data.Width/2, data.Depth/2
	a := math.Min(data.StressBlockDepth, data.Depth)
	cut := halfD - a

	if !data.Circular {
		return plotter.XYs{
			{X: -halfW, Y: halfD},
			{X: halfW, Y: halfD},
			{X: halfW, Y: cut},
			{X: -halfW, Y: cut},
		}
	}

	// Circular segment above the chord at y = cut
	theta := math.Acos(math.Max(-1, math.Min(1, cut/halfD)))
	var pts plotter.XYs
	for i := 0; i <= 48; i++ {
		t := math.Pi/2 - theta + 2*theta*float64(i)/48
		pts = append(pts, plotter.XY{X: halfD * math.Cos(t), Y: halfD * math.Sin(t)})
	}
	return pts
}

// save writes the plot, creating the directory if needed. Unknown
// extensions are saved as PNG.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
