package column

import (
	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// Material holds concrete and steel properties in psi or MPa.
type Material struct {
	Units Units
	Fc    float64 // f'c - concrete compressive strength
	Fy    float64 // fy - steel yield strength
	Es    float64 // steel modulus of elasticity
}

// Validate checks that every property is positive.
func (m Material) Validate() error {
	if !(m.Fc > 0) {
		return &ConfigError{Field: "fc", Value: m.Fc, Reason: "must be positive"}
	}
	if !(m.Fy > 0) {
		return &ConfigError{Field: "fy", Value: m.Fy, Reason: "must be positive"}
	}
	if !(m.Es > 0) {
		return &ConfigError{Field: "es", Value: m.Es, Reason: "must be positive"}
	}
	return nil
}

// Beta1 returns the stress block depth factor. f'c below the structural
// minimum is outside the domain of the stress block rules.
func (m Material) Beta1() (float64, error) {
	if m.Units == Metric {
		if m.Fc < nscp.FcMinMPa {
			return 0, &DomainError{Quantity: "beta1", Value: m.Fc, Min: nscp.FcMinMPa}
		}
		return nscp.Beta1(m.Fc), nil
	}
	if m.Fc < nscp.FcMinPSI {
		return 0, &DomainError{Quantity: "beta1", Value: m.Fc, Min: nscp.FcMinPSI}
	}
	return nscp.Beta1PSI(m.Fc), nil
}

// EpsilonY returns the steel yield strain fy/Es.
func (m Material) EpsilonY() float64 {
	return m.Fy / m.Es
}
