package column

import (
	"math"

	"github.com/alexiusacademia/gorcc/internal/rebar"
)

// Bar is one longitudinal bar positioned relative to the section centroid.
type Bar struct {
	Offset   float64 // along the strain direction, positive toward the compression face
	Lateral  float64 // across the strain direction, used for drawing only
	Area     float64 // in² or mm²
	Diameter float64 // in or mm
}

// Layout is the bar arrangement of a column seen along one bending axis.
type Layout struct {
	Shape Shape
	Axis  Axis
	Units Units

	// Extent of the concrete along (Depth) and across (Width) the strain
	// direction. For circular sections both equal D.
	Depth float64
	Width float64

	Cover   float64
	BarSize rebar.Size
	TieSize rebar.Size
	Bars    []Bar

	// Governing clear spacing between longitudinal bars and its minimum
	ClearSpacing    float64
	RequiredSpacing float64
}

// Layout places the longitudinal bars for bending about the given axis.
// The axis is ignored for circular sections.
func (c *Column) Layout(axis Axis) (*Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bar, tie, _ := c.BarSizes()

	if c.Shape == Circular {
		return newCircularLayout(c.Diameter, c.Cover, bar, tie, c.BarCount, c.Units)
	}
	return newRectangularLayout(c.Width, c.Depth, c.Cover, bar, tie, c.BarsPerFace, c.BarsPerSide, c.Units, axis)
}

func requiredSpacing(units Units, bar rebar.Size) float64 {
	return math.Max(units.MinClearSpacing(), bar.Diameter)
}

func newCircularLayout(d, cover float64, bar, tie rebar.Size, n int, units Units) (*Layout, error) {
	r := d/2 - cover - tie.Diameter - bar.Diameter/2
	if !(r > 0) {
		return nil, &ConfigError{Field: "cover", Value: cover, Reason: "no room for bars inside the cover"}
	}

	l := &Layout{
		Shape:           Circular,
		Axis:            Major,
		Units:           units,
		Depth:           d,
		Width:           d,
		Cover:           cover,
		BarSize:         bar,
		TieSize:         tie,
		ClearSpacing:    (math.Pi*d - float64(n)*bar.Diameter) / float64(n),
		RequiredSpacing: requiredSpacing(units, bar),
	}
	if l.ClearSpacing <= l.RequiredSpacing {
		return nil, &SpacingError{Face: "perimeter", Clear: l.ClearSpacing, Required: l.RequiredSpacing}
	}

	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		l.Bars = append(l.Bars, Bar{
			Offset:   r * math.Cos(theta),
			Lateral:  r * math.Sin(theta),
			Area:     bar.Area,
			Diameter: bar.Diameter,
		})
	}
	return l, nil
}

func newRectangularLayout(b, h, cover float64, bar, tie rebar.Size, perFace, perSide int, units Units, axis Axis) (*Layout, error) {
	innerB := b - 2*cover - 2*tie.Diameter
	innerH := h - 2*cover - 2*tie.Diameter
	if !(innerB > bar.Diameter) || !(innerH > bar.Diameter) {
		return nil, &ConfigError{Field: "cover", Value: cover, Reason: "no room for bars inside the cover"}
	}

	req := requiredSpacing(units, bar)

	// Top and bottom rows
	faceClear := (innerB - float64(perFace)*bar.Diameter) / float64(perFace-1)
	if faceClear <= req {
		return nil, &SpacingError{Face: "top/bottom", Clear: faceClear, Required: req}
	}
	// Sides, counting the corner bars
	k := perSide + 2
	sideClear := (innerH - float64(k)*bar.Diameter) / float64(k-1)
	if sideClear <= req {
		return nil, &SpacingError{Face: "side", Clear: sideClear, Required: req}
	}

	xb := innerB/2 - bar.Diameter/2
	yb := innerH/2 - bar.Diameter/2

	// Bar centres in plan, y along H
	type point struct{ x, y float64 }
	var pts []point
	for i := 0; i < perFace; i++ {
		x := -xb + 2*xb*float64(i)/float64(perFace-1)
		pts = append(pts, point{x, yb}, point{x, -yb})
	}
	for j := 1; j <= perSide; j++ {
		y := yb - 2*yb*float64(j)/float64(perSide+1)
		pts = append(pts, point{-xb, y}, point{xb, y})
	}

	l := &Layout{
		Shape:           Rectangular,
		Axis:            axis,
		Units:           units,
		Depth:           h,
		Width:           b,
		Cover:           cover,
		BarSize:         bar,
		TieSize:         tie,
		ClearSpacing:    math.Min(faceClear, sideClear),
		RequiredSpacing: req,
	}
	if axis == Minor {
		l.Depth, l.Width = b, h
	}

	for _, p := range pts {
		offset, lateral := p.y, p.x
		if axis == Minor {
			offset, lateral = p.x, p.y
		}
		l.Bars = append(l.Bars, Bar{Offset: offset, Lateral: lateral, Area: bar.Area, Diameter: bar.Diameter})
	}
	return l, nil
}

// DepthOf returns the distance of a bar from the compression face.
func (l *Layout) DepthOf(b Bar) float64 {
	return l.Depth/2 - b.Offset
}

// SteelArea returns Ast.
func (l *Layout) SteelArea() float64 {
	var as float64
	for _, b := range l.Bars {
		as += b.Area
	}
	return as
}

// GrossArea returns Ag.
func (l *Layout) GrossArea() float64 {
	if l.Shape == Circular {
		return math.Pi * l.Depth * l.Depth / 4
	}
	return l.Width * l.Depth
}

// Flipped returns a copy of the layout with the compression face swapped.
func (l *Layout) Flipped() *Layout {
	f := *l
	f.Bars = make([]Bar, len(l.Bars))
	for i, b := range l.Bars {
		b.Offset = -b.Offset
		f.Bars[i] = b
	}
	return &f
}
