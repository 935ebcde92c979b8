package column

import (
	"errors"
	"math"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// Default sweep resolutions
const (
	DefaultRectangularSamples = 7000
	DefaultCircularSamples    = 5000
)

// Options tunes the interaction sweep.
type Options struct {
	Samples int // 0 selects the default for the shape

	// Negative also sweeps with the opposite face in compression, filling
	// Curve.Negative
	Negative bool
}

// Point is one point of the interaction diagram. Forces are in kip or kN and
// moments in kip-ft or kN-m.
type Point struct {
	Control  float64 `json:"control"`
	C        float64 `json:"c"`
	A        float64 `json:"a"`
	EpsilonT float64 `json:"epsilon_t"`
	Phi      float64 `json:"phi"`

	PnConcrete float64 `json:"pn_concrete"`
	PnSteel    float64 `json:"pn_steel"`
	Pn         float64 `json:"pn"`
	Mn         float64 `json:"mn"`
	PhiPn      float64 `json:"phi_pn"`
	PhiMn      float64 `json:"phi_mn"`

	Squash bool `json:"squash,omitempty"` // pure compression point
}

// Curve is the design P-M interaction diagram of a column about one axis.
// Points run from the tension end of the sweep to pure compression.
type Curve struct {
	Shape       Shape            `json:"shape"`
	Axis        Axis             `json:"axis"`
	Units       Units            `json:"units"`
	Confinement nscp.Confinement `json:"confinement"`

	Beta1    float64 `json:"beta1"`
	EpsilonY float64 `json:"epsilon_y"`

	Points []Point `json:"points"`

	// Negative is the branch with the opposite face in compression: moments
	// are negative, running from the tension end to pure compression. Empty
	// unless requested.
	Negative []Point `json:"negative,omitempty"`

	P0       float64 `json:"p0"`         // nominal pure compression capacity
	PhiPnMax float64 `json:"phi_pn_max"` // largest design axial strength on the curve
	AxialCap float64 `json:"axial_cap"`  // maximum permitted design axial strength

	Samples int `json:"samples"`
	Skipped int `json:"skipped"` // degenerate samples left out, both branches
}

// Interaction builds the interaction diagram of the column about an axis.
func (c *Column) Interaction(axis Axis, opts Options) (*Curve, error) {
	layout, err := c.Layout(axis)
	if err != nil {
		return nil, err
	}
	conf, err := c.Confinement()
	if err != nil {
		return nil, err
	}
	return BuildCurve(layout, c.Material(), conf, opts)
}

// BuildCurve sweeps the control variable across its range, solving the
// section at every sample, and closes the curve with the pure compression
// point.
func BuildCurve(l *Layout, m Material, conf nscp.Confinement, opts Options) (*Curve, error) {
	if len(l.Bars) == 0 {
		return nil, &ConfigError{Field: "bars", Value: 0, Reason: "layout has no bars"}
	}
	solver, err := NewSolver(l, m)
	if err != nil {
		return nil, err
	}

	n := opts.Samples
	if n < 0 {
		return nil, &ConfigError{Field: "samples", Value: n, Reason: "must not be negative"}
	}
	if n == 0 {
		n = DefaultRectangularSamples
		if l.Shape == Circular {
			n = DefaultCircularSamples
		}
	}

	curve := &Curve{
		Shape:       l.Shape,
		Axis:        l.Axis,
		Units:       l.Units,
		Confinement: conf,
		Beta1:       solver.Beta1(),
		EpsilonY:    m.EpsilonY(),
		Samples:     n,
	}

	curve.Points, err = curve.sweep(solver, l, n, 1)
	if err != nil {
		return nil, err
	}

	// Pure compression
	ast := l.SteelArea()
	pc := 0.85 * m.Fc * (l.GrossArea() - ast)
	ps := m.Fy * ast
	phi := nscp.PhiCompressionControlled(conf)
	p0 := l.Units.Force(pc + ps)
	curve.P0 = p0
	squash := Point{
		A:          l.Depth,
		EpsilonT:   -nscp.EpsilonCU,
		Phi:        phi,
		PnConcrete: l.Units.Force(pc),
		PnSteel:    l.Units.Force(ps),
		Pn:         p0,
		PhiPn:      phi * p0,
		Squash:     true,
	}
	curve.Points = appendPoint(curve.Points, squash)

	if opts.Negative {
		flipped, err := NewSolver(l.Flipped(), m)
		if err != nil {
			return nil, err
		}
		curve.Negative, err = curve.sweep(flipped, l, n, -1)
		if err != nil {
			return nil, err
		}
		curve.Negative = appendPoint(curve.Negative, squash)
	}

	for _, p := range curve.Points {
		curve.PhiPnMax = math.Max(curve.PhiPnMax, p.PhiPn)
	}
	curve.AxialCap = nscp.AxialCap(conf) * curve.PhiPnMax
	return curve, nil
}

// sweep solves n samples of the control variable. sign = -1 negates the
// moments, for the branch with the opposite face in compression.
// Degenerate samples are skipped and counted.
func (c *Curve) sweep(solver *Solver, l *Layout, n int, sign float64) ([]Point, error) {
	var pts []Point
	for i := 1; i <= n; i++ {
		var control float64
		if l.Shape == Circular {
			control = math.Pi * float64(i) / float64(n)
		} else {
			control = 5 * l.Depth * float64(i) / float64(n)
		}

		sample, err := solver.Solve(control)
		if err != nil {
			var cv *ControlVariableError
			if errors.As(err, &cv) {
				c.Skipped++
				continue
			}
			return nil, err
		}
		p := c.point(sample)
		p.Mn *= sign
		p.PhiMn *= sign
		pts = appendPoint(pts, p)
	}
	return pts, nil
}

func (c *Curve) point(s *Sample) Point {
	phi := nscp.Phi(s.EpsilonT, c.EpsilonY, c.Confinement)
	pn := c.Units.Force(s.Pn)
	mn := c.Units.Moment(s.Mn)
	return Point{
		Control:    s.Control,
		C:          s.C,
		A:          s.A,
		EpsilonT:   s.EpsilonT,
		Phi:        phi,
		PnConcrete: c.Units.Force(s.PnConcrete),
		PnSteel:    c.Units.Force(s.PnSteel),
		Pn:         pn,
		Mn:         mn,
		PhiPn:      phi * pn,
		PhiMn:      phi * mn,
	}
}

// appendPoint appends p unless it repeats the last point. A repeated pure
// compression point replaces its duplicate.
func appendPoint(pts []Point, p Point) []Point {
	if k := len(pts); k > 0 {
		last := pts[k-1]
		if same(last.PhiPn, p.PhiPn) && same(last.PhiMn, p.PhiMn) {
			if p.Squash {
				pts[k-1] = p
			}
			return pts
		}
	}
	return append(pts, p)
}

func same(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Capped returns the points with φPn limited to the maximum permitted
// axial strength.
func (c *Curve) Capped() []Point {
	return c.capped(c.Points)
}

func (c *Curve) capped(src []Point) []Point {
	pts := make([]Point, len(src))
	for i, p := range src {
		p.PhiPn = math.Min(p.PhiPn, c.AxialCap)
		pts[i] = p
	}
	return pts
}

// Outline returns the points as one path from the tension end of the
// negative branch through pure compression to the tension end of the
// positive branch. Without a negative branch it is Points reversed.
// φPn is capped.
func (c *Curve) Outline() []Point {
	out := c.capped(c.Negative)
	pos := c.Capped()
	if len(out) > 0 && len(pos) > 0 && out[len(out)-1].Squash && pos[len(pos)-1].Squash {
		out = out[:len(out)-1]
	}
	for i := len(pos) - 1; i >= 0; i-- {
		out = append(out, pos[i])
	}
	return out
}

// Balanced returns the point of largest design moment.
func (c *Curve) Balanced() Point {
	var best Point
	for i, p := range c.Points {
		if i == 0 || math.Abs(p.PhiMn) > math.Abs(best.PhiMn) {
			best = p
		}
	}
	return best
}
