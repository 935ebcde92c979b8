package column

import "fmt"

// ConfigError reports an invalid column definition: a non-positive
// dimension, an unknown bar size or an ambiguous confinement selection.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// SpacingError reports longitudinal bars placed closer than the minimum
// clear spacing.
type SpacingError struct {
	Face     string  // "perimeter", "top/bottom" or "side"
	Clear    float64 // computed clear spacing
	Required float64 // max(1 in | 25 mm, bar diameter)
}

func (e *SpacingError) Error() string {
	return fmt.Sprintf("longitudinal bars spaced too closely on %s face: clear spacing %.3f must exceed %.3f",
		e.Face, e.Clear, e.Required)
}

// ControlVariableError reports a degenerate sweep sample such as a
// neutral axis depth that is not positive.
type ControlVariableError struct {
	Name  string
	Value float64
}

func (e *ControlVariableError) Error() string {
	return fmt.Sprintf("degenerate control variable %s = %g", e.Name, e.Value)
}

// DomainError reports a material value outside the range where a derived
// quantity such as β1 is defined.
type DomainError struct {
	Quantity string
	Value    float64
	Min      float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s undefined for %g (minimum %g)", e.Quantity, e.Value, e.Min)
}
