package column

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gorcc/internal/nscp"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

// Units selects the unit system of every length, stress and force of a column.
//
//	imperial: in, psi; forces reported in kip and moments in kip-ft
//	metric:   mm, MPa; forces reported in kN and moments in kN-m
type Units int

const (
	Imperial Units = iota
	Metric
)

func (u Units) String() string {
	if u == Metric {
		return "metric"
	}
	return "imperial"
}

// MarshalText implements encoding.TextMarshaler.
func (u Units) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Units) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "imperial", "us", "in":
		*u = Imperial
	case "metric", "si", "mm":
		*u = Metric
	default:
		return &ConfigError{Field: "units", Value: string(text), Reason: "must be imperial or metric"}
	}
	return nil
}

// Force converts an internal force (lb or N) to reporting units (kip or kN).
func (u Units) Force(f float64) float64 {
	return f / 1000
}

// Moment converts an internal moment (lb-in or N-mm) to reporting units
// (kip-ft or kN-m).
func (u Units) Moment(m float64) float64 {
	if u == Metric {
		return m / 1e6
	}
	return m / 12000
}

// Labels for reporting units
func (u Units) LengthLabel() string {
	if u == Metric {
		return "mm"
	}
	return "in"
}

func (u Units) AreaLabel() string {
	if u == Metric {
		return "mm²"
	}
	return "in²"
}

func (u Units) StressLabel() string {
	if u == Metric {
		return "MPa"
	}
	return "psi"
}

func (u Units) ForceLabel() string {
	if u == Metric {
		return "kN"
	}
	return "kip"
}

func (u Units) MomentLabel() string {
	if u == Metric {
		return "kN-m"
	}
	return "kip-ft"
}

// MinClearSpacing is the absolute lower bound of clear spacing between
// longitudinal bars (1 in or 25 mm).
func (u Units) MinClearSpacing() float64 {
	if u == Metric {
		return 25
	}
	return 1
}

func (u Units) rebarSystem() rebar.System {
	if u == Metric {
		return rebar.Metric
	}
	return rebar.Imperial
}

// Shape tags the section geometry.
type Shape int

const (
	Rectangular Shape = iota
	Circular
)

func (s Shape) String() string {
	if s == Circular {
		return "circular"
	}
	return "rectangular"
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "rectangular", "rectangle", "rect":
		*s = Rectangular
	case "circular", "circle", "round":
		*s = Circular
	default:
		return &ConfigError{Field: "shape", Value: string(text), Reason: "must be rectangular or circular"}
	}
	return nil
}

// Axis selects the bending axis of a rectangular section.
// Major bending varies strain along the depth H, minor along the width B.
type Axis int

const (
	Major Axis = iota
	Minor
)

func (a Axis) String() string {
	if a == Minor {
		return "minor"
	}
	return "major"
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	axis, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = axis
	return nil
}

// ParseAxis parses "major"/"x" or "minor"/"y".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "major", "x":
		return Major, nil
	case "minor", "y":
		return Minor, nil
	}
	return Major, &ConfigError{Field: "axis", Value: s, Reason: "must be major or minor"}
}

// Section is the concrete outline: a rectangle B x H or a circle of
// diameter D. Only the fields of the tagged shape are meaningful.
type Section struct {
	Shape    Shape
	Width    float64 // B, perpendicular to major-axis bending
	Depth    float64 // H, along major-axis bending
	Diameter float64 // D
}

// Validate checks that every dimension of the tagged shape is positive.
func (s Section) Validate() error {
	switch s.Shape {
	case Rectangular:
		if !(s.Width > 0) {
			return &ConfigError{Field: "width", Value: s.Width, Reason: "must be positive"}
		}
		if !(s.Depth > 0) {
			return &ConfigError{Field: "depth", Value: s.Depth, Reason: "must be positive"}
		}
	case Circular:
		if !(s.Diameter > 0) {
			return &ConfigError{Field: "diameter", Value: s.Diameter, Reason: "must be positive"}
		}
	default:
		return &ConfigError{Field: "shape", Value: int(s.Shape), Reason: "unknown shape"}
	}
	return nil
}

// GrossArea returns Ag.
func (s Section) GrossArea() float64 {
	if s.Shape == Circular {
		return math.Pi * s.Diameter * s.Diameter / 4
	}
	return s.Width * s.Depth
}

// LeastDimension returns the smaller plan dimension.
func (s Section) LeastDimension() float64 {
	if s.Shape == Circular {
		return s.Diameter
	}
	return math.Min(s.Width, s.Depth)
}

// Demand is a factored load point checked against an interaction curve.
type Demand struct {
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	Pu    float64 `json:"pu" yaml:"pu"` // kip or kN, compression positive
	Mu    float64 `json:"mu" yaml:"mu"` // kip-ft or kN-m
}

// Column is a reinforced concrete column definition as read from a column
// file. Lengths are in inches or millimetres and stresses in psi or MPa
// according to Units.
type Column struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Units       Units  `json:"units" yaml:"units"`

	// Section geometry
	Shape    Shape   `json:"shape" yaml:"shape"`
	Width    float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Depth    float64 `json:"depth,omitempty" yaml:"depth,omitempty"`
	Diameter float64 `json:"diameter,omitempty" yaml:"diameter,omitempty"`
	Cover    float64 `json:"cover" yaml:"cover"` // clear cover to ties

	// Material properties
	Fc float64 `json:"fc" yaml:"fc"`
	Fy float64 `json:"fy" yaml:"fy"`
	Es float64 `json:"es,omitempty" yaml:"es,omitempty"` // 0 selects the code value

	// Longitudinal reinforcement
	BarSize     string `json:"bar_size" yaml:"bar_size"`
	BarCount    int    `json:"bar_count,omitempty" yaml:"bar_count,omitempty"`         // circular
	BarsPerFace int    `json:"bars_per_face,omitempty" yaml:"bars_per_face,omitempty"` // rectangular top/bottom rows
	BarsPerSide int    `json:"bars_per_side,omitempty" yaml:"bars_per_side,omitempty"` // rectangular, between rows

	// Transverse reinforcement
	TieSize    string  `json:"tie_size" yaml:"tie_size"`
	TieSpacing float64 `json:"tie_spacing,omitempty" yaml:"tie_spacing,omitempty"`
	Tied       bool    `json:"tied" yaml:"tied"`
	Spiral     bool    `json:"spiral" yaml:"spiral"`

	// Development length modification factor (1.0 when omitted)
	DevLengthFactor float64 `json:"dev_length_factor,omitempty" yaml:"dev_length_factor,omitempty"`

	// Factored demands to check
	Demands []Demand `json:"demands,omitempty" yaml:"demands,omitempty"`
}

// Section returns the tagged section geometry.
func (c *Column) Section() Section {
	return Section{Shape: c.Shape, Width: c.Width, Depth: c.Depth, Diameter: c.Diameter}
}

// Material returns the material model, filling in the code steel modulus
// when none is given.
func (c *Column) Material() Material {
	es := c.Es
	if es == 0 {
		es = nscp.EsPSI
		if c.Units == Metric {
			es = nscp.Es
		}
	}
	return Material{Units: c.Units, Fc: c.Fc, Fy: c.Fy, Es: es}
}

// Confinement resolves the tied/spiral selection.
func (c *Column) Confinement() (nscp.Confinement, error) {
	conf, err := nscp.ParseConfinement(c.Tied, c.Spiral)
	if err != nil {
		return conf, &ConfigError{
			Field:  "confinement",
			Value:  fmt.Sprintf("tied=%t spiral=%t", c.Tied, c.Spiral),
			Reason: err.Error(),
		}
	}
	return conf, nil
}

// BarSizes looks up the longitudinal and transverse bar sizes.
func (c *Column) BarSizes() (bar, tie rebar.Size, err error) {
	bar, err = rebar.Lookup(c.BarSize, c.Units.rebarSystem())
	if err != nil {
		return bar, tie, &ConfigError{Field: "bar_size", Value: c.BarSize, Reason: err.Error()}
	}
	tie, err = rebar.Lookup(c.TieSize, c.Units.rebarSystem())
	if err != nil {
		return bar, tie, &ConfigError{Field: "tie_size", Value: c.TieSize, Reason: err.Error()}
	}
	return bar, tie, nil
}

// Validate checks the column definition. Spacing is checked when the
// layout is built.
func (c *Column) Validate() error {
	if err := c.Section().Validate(); err != nil {
		return err
	}
	if !(c.Cover > 0) {
		return &ConfigError{Field: "cover", Value: c.Cover, Reason: "must be positive"}
	}
	if c.Es < 0 {
		return &ConfigError{Field: "es", Value: c.Es, Reason: "must be positive"}
	}
	if err := c.Material().Validate(); err != nil {
		return err
	}
	if _, err := c.Confinement(); err != nil {
		return err
	}
	if _, _, err := c.BarSizes(); err != nil {
		return err
	}

	switch c.Shape {
	case Circular:
		if c.BarCount < 4 {
			return &ConfigError{Field: "bar_count", Value: c.BarCount, Reason: "circular columns need at least 4 bars"}
		}
	case Rectangular:
		if c.BarsPerFace < 2 {
			return &ConfigError{Field: "bars_per_face", Value: c.BarsPerFace, Reason: "need at least 2 bars per face"}
		}
		if c.BarsPerSide < 0 {
			return &ConfigError{Field: "bars_per_side", Value: c.BarsPerSide, Reason: "must not be negative"}
		}
	}

	if c.TieSpacing < 0 {
		return &ConfigError{Field: "tie_spacing", Value: c.TieSpacing, Reason: "must not be negative"}
	}
	if c.DevLengthFactor < 0 {
		return &ConfigError{Field: "dev_length_factor", Value: c.DevLengthFactor, Reason: "must not be negative"}
	}
	return nil
}
