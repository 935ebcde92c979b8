package column

import (
	"math"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// Sample holds the strain compatibility state of the section for one value
// of the control variable. Forces are in lb or N and moments in lb-in or
// N-mm, taken about the section centroid.
type Sample struct {
	Control float64 // c for rectangular sections, θ for circular
	C       float64 // neutral axis depth from the compression face
	A       float64 // equivalent stress block depth

	Cc    float64 // concrete compression force
	CcArm float64 // lever arm of Cc about the centroid

	BarStrains  []float64 // compression positive
	BarStresses []float64
	BarForces   []float64 // net of displaced concrete inside the stress block

	EpsilonT float64 // net tensile strain at the extreme tension bar, tension positive

	PnConcrete float64
	PnSteel    float64
	Pn         float64
	Mn         float64
}

// Solver evaluates the section state for one bending direction.
type Solver struct {
	layout *Layout
	mat    Material
	beta1  float64
}

// NewSolver validates the material and prepares a solver for the layout.
func NewSolver(l *Layout, m Material) (*Solver, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	beta1, err := m.Beta1()
	if err != nil {
		return nil, err
	}
	return &Solver{layout: l, mat: m, beta1: beta1}, nil
}

// Beta1 returns the stress block factor in use.
func (s *Solver) Beta1() float64 {
	return s.beta1
}

// Solve evaluates the section at the given control variable: the neutral
// axis depth c for rectangular sections or the half-angle θ of the
// compression segment for circular sections.
func (s *Solver) Solve(control float64) (*Sample, error) {
	var (
		sample *Sample
		err    error
	)
	if s.layout.Shape == Circular {
		sample, err = s.circularBlock(control)
	} else {
		sample, err = s.rectangularBlock(control)
	}
	if err != nil {
		return nil, err
	}

	s.steel(sample)

	sample.Pn = sample.PnConcrete + sample.PnSteel
	sample.Mn += sample.Cc * sample.CcArm
	return sample, nil
}

func (s *Solver) rectangularBlock(c float64) (*Sample, error) {
	if !(c > 0) || math.IsInf(c, 0) {
		return nil, &ControlVariableError{Name: "c", Value: c}
	}
	h := s.layout.Depth
	a := math.Min(s.beta1*c, h)
	cc := 0.85 * s.mat.Fc * a * s.layout.Width

	return &Sample{
		Control:    c,
		C:          c,
		A:          a,
		Cc:         cc,
		CcArm:      h/2 - a/2,
		PnConcrete: cc,
	}, nil
}

func (s *Solver) circularBlock(theta float64) (*Sample, error) {
	if !(theta > 0) || theta > math.Pi {
		return nil, &ControlVariableError{Name: "theta", Value: theta}
	}
	d := s.layout.Depth
	r := d / 2

	a := math.Min(r*(1-math.Cos(theta)), d)
	c := a / s.beta1
	if !(c > 0) {
		return nil, &ControlVariableError{Name: "c", Value: c}
	}

	// Circular segment of half-angle θ
	k := theta - math.Sin(2*theta)/2
	if !(k > 0) {
		return nil, &ControlVariableError{Name: "theta", Value: theta}
	}
	area := r * r * k
	arm := 2 * r * math.Pow(math.Sin(theta), 3) / (3 * k)
	cc := 0.85 * s.mat.Fc * area

	return &Sample{
		Control:    theta,
		C:          c,
		A:          a,
		Cc:         cc,
		CcArm:      arm,
		PnConcrete: cc,
	}, nil
}

// steel adds the bar contributions to the sample.
func (s *Solver) steel(sample *Sample) {
	n := len(s.layout.Bars)
	sample.BarStrains = make([]float64, n)
	sample.BarStresses = make([]float64, n)
	sample.BarForces = make([]float64, n)

	deepest := math.Inf(-1)
	for i, bar := range s.layout.Bars {
		depth := s.layout.DepthOf(bar)

		strain := nscp.EpsilonCU * (sample.C - depth) / sample.C
		stress := math.Max(math.Min(strain*s.mat.Es, s.mat.Fy), -s.mat.Fy)

		force := bar.Area * stress
		if depth < sample.A {
			// Displaced concrete already counted in Cc
			force = bar.Area * (stress - 0.85*s.mat.Fc)
		}

		sample.BarStrains[i] = strain
		sample.BarStresses[i] = stress
		sample.BarForces[i] = force
		sample.PnSteel += force
		sample.Mn += force * bar.Offset

		if depth > deepest {
			deepest = depth
			sample.EpsilonT = -strain
		}
	}
}
