package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// SectionData holds what is needed to draw a column section. Coordinates
// are measured from the section centroid with Y toward the compression face.
type SectionData struct {
	Title    string
	Circular bool
	Width    float64 // across the strain direction
	Depth    float64 // along the strain direction, equals the diameter when circular

	Bars []Point // X lateral, Y offset

	// Compression zone, both measured from the compression face; zero omits it
	NeutralAxisDepth float64
	StressBlockDepth float64

	// Strains at the compression face and extreme tension bar
	EpsilonCU float64
	EpsilonT  float64 // tension positive
	EpsilonY  float64

	LengthUnit string
}

// InteractionData holds an interaction curve for plotting. X is moment and Y
// is axial force, compression positive.
type InteractionData struct {
	Title      string
	ForceUnit  string
	MomentUnit string

	Nominal  []Point // (Mn, Pn)
	Design   []Point // (φMn, φPn)
	AxialCap float64 // maximum permitted φPn, zero to omit

	Demands []Point // (Mu, Pu)
	Labels  []string
}

// DrawASCIISection creates an ASCII view of the column section with its bars
// and the stress block shaded from the compression face.
func DrawASCIISection(data SectionData) string {
	var sb strings.Builder

	// Characters are roughly twice as tall as they are wide
	heightChars := 16
	widthChars := int(math.Round(2 * float64(heightChars) * data.Width / data.Depth))
	if widthChars < 8 {
		widthChars = 8
	}
	if widthChars > 64 {
		widthChars = 64
	}

	grid := make([][]rune, heightChars+1)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", widthChars+1))
	}

	// row i spans depth i/heightChars*Depth from the compression face
	for i := 0; i <= heightChars; i++ {
		depth := float64(i) / float64(heightChars) * data.Depth
		for j := 0; j <= widthChars; j++ {
			x := (float64(j)/float64(widthChars) - 0.5) * data.Width
			y := data.Depth/2 - depth
			if data.Circular {
				r := data.Depth / 2
				d := math.Hypot(x, y) / r
				switch {
				case d > 1.04:
					continue
				case d > 0.96:
					grid[i][j] = '·'
					continue
				}
			} else if i == 0 || i == heightChars {
				grid[i][j] = '─'
				continue
			} else if j == 0 || j == widthChars {
				grid[i][j] = '│'
				continue
			}
			if depth <= data.StressBlockDepth {
				grid[i][j] = '░'
			}
		}
	}

	for _, b := range data.Bars {
		i := int(math.Round((data.Depth/2 - b.Y) / data.Depth * float64(heightChars)))
		j := int(math.Round((b.X/data.Width + 0.5) * float64(widthChars)))
		if i >= 0 && i <= heightChars && j >= 0 && j <= widthChars {
			grid[i][j] = '●'
		}
	}

	naLine := -1
	if data.NeutralAxisDepth > 0 && data.NeutralAxisDepth <= data.Depth {
		naLine = int(math.Round(data.NeutralAxisDepth / data.Depth * float64(heightChars)))
	}

	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(data.Title)))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", len([]rune(data.Title)))))
	}
	sb.WriteString("  compression face\n")
	for i, row := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(row), " "))
		if i == naLine {
			sb.WriteString(" ◄─ N.A.")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ●   = Longitudinal bar\n")
	if data.StressBlockDepth > 0 {
		sb.WriteString("  ░░░ = Compression zone (stress block)\n")
		sb.WriteString(fmt.Sprintf("  N.A. = Neutral Axis at c = %.2f %s from the compression face\n", data.NeutralAxisDepth, data.LengthUnit))
		sb.WriteString(fmt.Sprintf("  Stress block depth a = %.2f %s\n", data.StressBlockDepth, data.LengthUnit))
	}

	return sb.String()
}

// DrawStrainDiagram creates an ASCII strain distribution through the depth.
func DrawStrainDiagram(data SectionData) string {
	var sb strings.Builder

	if data.NeutralAxisDepth <= 0 {
		return ""
	}

	height := 15
	width := 40

	c := data.NeutralAxisDepth
	bottom := data.EpsilonCU * (data.Depth - c) / c
	maxStrain := math.Max(data.EpsilonCU, math.Abs(bottom))
	scale := float64(width-10) / maxStrain

	sb.WriteString("\n")
	sb.WriteString("  STRAIN DISTRIBUTION DIAGRAM\n")
	sb.WriteString("  ───────────────────────────\n\n")

	naLine := int(c / data.Depth * float64(height))

	for i := 0; i <= height; i++ {
		depth := float64(i) / float64(height) * data.Depth
		strain := math.Abs(data.EpsilonCU * (c - depth) / c)
		bar := strings.Repeat("█", int(strain*scale))

		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("  Top    │%s▶ εcu=%.4f\n", bar, data.EpsilonCU))
		case i == naLine:
			sb.WriteString(fmt.Sprintf("  N.A.   ├%s (ε=0)\n", strings.Repeat("─", 5)))
		case i == height:
			mark := ""
			if data.EpsilonY > 0 && data.EpsilonT >= data.EpsilonY {
				mark = " ✓yields"
			}
			sb.WriteString(fmt.Sprintf("  Bottom │%s▶ εt=%.4f%s\n", bar, data.EpsilonT, mark))
		default:
			sb.WriteString(fmt.Sprintf("         │%s\n", bar))
		}
	}

	if data.EpsilonY > 0 {
		yieldBar := int(data.EpsilonY * scale)
		sb.WriteString(fmt.Sprintf("\n  εy = %.4f %s (yield strain)\n", data.EpsilonY, strings.Repeat("─", yieldBar)+"┤"))
	}

	return sb.String()
}

// DrawInteraction plots moment strength against axial load as a terminal
// chart: the x axis runs from the tension end to pure compression.
func DrawInteraction(data InteractionData, width, height int) string {
	if len(data.Design) < 2 {
		return ""
	}
	if width <= 0 {
		width = 60
	}
	if height <= 0 {
		height = 15
	}

	var series [][]float64
	lo, hi := axialRange(data.Design)
	if len(data.Nominal) > 1 {
		nlo, nhi := axialRange(data.Nominal)
		lo, hi = math.Min(lo, nlo), math.Max(hi, nhi)
		series = append(series, Envelope(data.Nominal, lo, hi, width))
	}
	series = append(series, Envelope(data.Design, lo, hi, width))

	caption := fmt.Sprintf("%s vs axial load %.0f..%.0f %s", data.MomentUnit, lo, hi, data.ForceUnit)
	if data.Title != "" {
		caption = data.Title + ": " + caption
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

func axialRange(pts []Point) (lo, hi float64) {
	lo, hi = pts[0].Y, pts[0].Y
	for _, p := range pts {
		lo = math.Min(lo, p.Y)
		hi = math.Max(hi, p.Y)
	}
	return lo, hi
}

// Envelope resamples a curve of (M, P) points to n moments at evenly
// spaced axial loads between lo and hi, taking the largest |M| where the
// curve crosses a load more than once. Loads the curve never reaches give 0.
func Envelope(pts []Point, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 || len(pts) == 0 {
		return out
	}
	for k := 0; k < n; k++ {
		p := lo
		if n > 1 {
			p = lo + (hi-lo)*float64(k)/float64(n-1)
		}
		for i := 0; i+1 < len(pts); i++ {
			a, b := pts[i], pts[i+1]
			if (a.Y-p)*(b.Y-p) > 0 {
				continue
			}
			m := math.Abs(a.X)
			if a.Y != b.Y {
				t := (p - a.Y) / (b.Y - a.Y)
				m = math.Abs(a.X + t*(b.X-a.X))
			}
			out[k] = math.Max(out[k], m)
		}
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
