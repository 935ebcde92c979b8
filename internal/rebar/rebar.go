// Package rebar holds the standard reinforcing bar designations and their
// nominal dimensions.
package rebar

import (
	"fmt"
	"sort"
	"strings"
)

// System identifies the measurement system a designation belongs to.
type System int

const (
	Imperial System = iota // inches, in²
	Metric                 // mm, mm²
)

// Size is a nominal reinforcing bar.
type Size struct {
	Designation string
	Diameter    float64 // in or mm
	Area        float64 // in² or mm²
	Fy          float64 // default grade yield strength, psi or MPa
	System      System
}

// ASTM A615 bar sizes. Grade 60 default.
var imperialSizes = map[string]Size{
	"#3":  {"#3", 0.375, 0.11, 60000, Imperial},
	"#4":  {"#4", 0.500, 0.20, 60000, Imperial},
	"#5":  {"#5", 0.625, 0.31, 60000, Imperial},
	"#6":  {"#6", 0.750, 0.44, 60000, Imperial},
	"#7":  {"#7", 0.875, 0.60, 60000, Imperial},
	"#8":  {"#8", 1.000, 0.79, 60000, Imperial},
	"#9":  {"#9", 1.128, 1.00, 60000, Imperial},
	"#10": {"#10", 1.270, 1.27, 60000, Imperial},
	"#11": {"#11", 1.410, 1.56, 60000, Imperial},
	"#14": {"#14", 1.693, 2.25, 60000, Imperial},
	"#18": {"#18", 2.257, 4.00, 60000, Imperial},
}

// Round bars (RB) are grade 240 MPa, deformed bars (DB) grade 420 MPa.
var metricSizes = map[string]Size{
	"RB6":  {"RB6", 6, 28.3, 240, Metric},
	"RB9":  {"RB9", 9, 63.6, 240, Metric},
	"RB10": {"RB10", 10, 78.5, 240, Metric},
	"RB12": {"RB12", 12, 113, 240, Metric},
	"DB10": {"DB10", 10, 78.5, 420, Metric},
	"DB12": {"DB12", 12, 113, 420, Metric},
	"DB16": {"DB16", 16, 201, 420, Metric},
	"DB20": {"DB20", 20, 314, 420, Metric},
	"DB25": {"DB25", 25, 491, 420, Metric},
	"DB28": {"DB28", 28, 616, 420, Metric},
	"DB32": {"DB32", 32, 804, 420, Metric},
	"DB36": {"DB36", 36, 1018, 420, Metric},
}

// UnknownSizeError is returned for a designation that is not in the table.
type UnknownSizeError struct {
	Designation string
	System      System
}

func (e *UnknownSizeError) Error() string {
	return fmt.Sprintf("unknown bar size %q (valid: %s)", e.Designation, strings.Join(Designations(e.System), ", "))
}

// Lookup returns the bar size for a designation in the given system.
// Designations are matched case-insensitively; imperial sizes must carry
// the leading '#'.
func Lookup(designation string, system System) (Size, error) {
	key := strings.ToUpper(strings.TrimSpace(designation))
	table := imperialSizes
	if system == Metric {
		table = metricSizes
	}
	size, ok := table[key]
	if !ok {
		return Size{}, &UnknownSizeError{Designation: designation, System: system}
	}
	return size, nil
}

// Designations lists the known designations of a system in ascending
// diameter order.
func Designations(system System) []string {
	table := imperialSizes
	if system == Metric {
		table = metricSizes
	}
	sizes := make([]Size, 0, len(table))
	for _, s := range table {
		sizes = append(sizes, s)
	}
	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i].Diameter != sizes[j].Diameter {
			return sizes[i].Diameter < sizes[j].Diameter
		}
		return sizes[i].Designation > sizes[j].Designation
	})
	names := make([]string, len(sizes))
	for i, s := range sizes {
		names[i] = s.Designation
	}
	return names
}
