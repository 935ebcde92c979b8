package nscp

import (
	"fmt"
	"math"
	"strings"
)

// NSCP 2015 Material and Strength Constants for Columns

const (
	// Beta1 factors for equivalent rectangular stress block
	// Section 422.2.2.4.3
	Beta1Max = 0.85 // for f'c <= 28 MPa (4000 psi)
	Beta1Min = 0.65 // minimum value

	// Lowest f'c for which the stress block rules are defined (Section 419.2.1.1)
	FcMinMPa = 17.0
	FcMinPSI = 2500.0

	// Strain limits
	EpsilonCU = 0.003 // Ultimate concrete strain (Section 422.2.2.1)
	EpsilonTC = 0.005 // Tension-controlled strain limit (Table 421.2.2)

	// Strength reduction factors (Table 421.2.2)
	PhiTension       = 0.90 // Tension-controlled sections
	PhiCompression   = 0.65 // Compression-controlled (tied)
	PhiCompressionSp = 0.75 // Compression-controlled (spiral)

	// Maximum axial strength factors (Table 422.4.2.1)
	AxialCapTied   = 0.80
	AxialCapSpiral = 0.85

	// Longitudinal reinforcement limits (Section 410.6.1.1)
	RhoMin = 0.01
	RhoMax = 0.08

	// Modulus of elasticity for steel (Section 420.2.2.2)
	Es    = 200000.0   // MPa
	EsPSI = 29000000.0 // psi
)

// Confinement is the transverse reinforcement scheme of a column. The zero
// value means none was selected.
type Confinement int

const (
	Tied Confinement = iota + 1
	Spiral
)

func (c Confinement) String() string {
	switch c {
	case Tied:
		return "tied"
	case Spiral:
		return "spiral"
	}
	return "unset"
}

// Valid reports whether c is tied or spiral.
func (c Confinement) Valid() bool {
	return c == Tied || c == Spiral
}

// MarshalText implements encoding.TextMarshaler.
func (c Confinement) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("no confinement selected")
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Confinement) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "tied":
		*c = Tied
	case "spiral":
		*c = Spiral
	default:
		return fmt.Errorf("unknown confinement %q", string(text))
	}
	return nil
}

// Beta1 calculates the factor for equivalent rectangular stress block
// with f'c in MPa.
// NSCP 2015 Section 422.2.2.4.3
func Beta1(fc float64) float64 {
	if fc <= 28 {
		return Beta1Max
	}
	// β1 = 0.85 - 0.05(f'c - 28)/7 for f'c > 28 MPa
	beta1 := Beta1Max - 0.05*(fc-28)/7
	return math.Max(beta1, Beta1Min)
}

// Beta1PSI is Beta1 with f'c in psi.
func Beta1PSI(fc float64) float64 {
	if fc <= 4000 {
		return Beta1Max
	}
	beta1 := Beta1Max - 0.05*(fc-4000)/1000
	return math.Max(beta1, Beta1Min)
}

// Phi calculates the strength reduction factor from the net tensile strain
// of the extreme tension steel (tension positive).
// NSCP 2015 Table 421.2.2
func Phi(epsilonT, epsilonTY float64, conf Confinement) float64 {
	low, span := PhiCompression, PhiTension-PhiCompression
	if conf == Spiral {
		low, span = PhiCompressionSp, PhiTension-PhiCompressionSp
	}

	if epsilonT <= epsilonTY {
		// Compression-controlled
		return low
	}
	if epsilonT >= EpsilonTC || epsilonTY >= EpsilonTC {
		// Tension-controlled
		return PhiTension
	}
	// Transition zone
	return low + span*(epsilonT-epsilonTY)/(EpsilonTC-epsilonTY)
}

// PhiCompressionControlled returns the lower bound of φ for the confinement.
func PhiCompressionControlled(conf Confinement) float64 {
	if conf == Spiral {
		return PhiCompressionSp
	}
	return PhiCompression
}

// AxialCap returns the factor applied to the pure compression capacity
// to obtain the maximum permitted axial strength.
func AxialCap(conf Confinement) float64 {
	if conf == Spiral {
		return AxialCapSpiral
	}
	return AxialCapTied
}

// ParseConfinement resolves the tied/spiral selection. Exactly one of the
// two must be set.
func ParseConfinement(tied, spiral bool) (Confinement, error) {
	switch {
	case tied && spiral:
		return 0, fmt.Errorf("both tied and spiral confinement selected")
	case !tied && !spiral:
		return 0, fmt.Errorf("no confinement selected, choose tied or spiral")
	case spiral:
		return Spiral, nil
	}
	return Tied, nil
}
