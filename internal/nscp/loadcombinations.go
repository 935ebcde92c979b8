package nscp

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	// Load factors for each load type
	Dead       float64 `json:"dead,omitempty"`       // D - Dead load
	Live       float64 `json:"live,omitempty"`       // L - Live load
	Roof       float64 `json:"roof,omitempty"`       // Lr - Roof live load
	Wind       float64 `json:"wind,omitempty"`       // W - Wind load
	Earthquake float64 `json:"earthquake,omitempty"` // E - Earthquake load
	Rain       float64 `json:"rain,omitempty"`       // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
// Alternatives written "(Lr or R)" or "(1.0L or 0.5W)" are listed as
// separate combinations so that only one of them is applied at a time.
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2a",
		Description: "1.2D + 1.6L + 0.5Lr",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
	},
	{
		ID:          "2b",
		Description: "1.2D + 1.6L + 0.5R",
		Dead:        1.2,
		Live:        1.6,
		Rain:        0.5,
	},
	{
		ID:          "3a",
		Description: "1.2D + 1.6Lr + 1.0L",
		Dead:        1.2,
		Roof:        1.6,
		Live:        1.0,
	},
	{
		ID:          "3b",
		Description: "1.2D + 1.6Lr + 0.5W",
		Dead:        1.2,
		Roof:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "3c",
		Description: "1.2D + 1.6R + 1.0L",
		Dead:        1.2,
		Rain:        1.6,
		Live:        1.0,
	},
	{
		ID:          "3d",
		Description: "1.2D + 1.6R + 0.5W",
		Dead:        1.2,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4a",
		Description: "1.2D + 1.0W + 1.0L + 0.5Lr",
		Dead:        1.2,
		Wind:        1.0,
		Live:        1.0,
		Roof:        0.5,
	},
	{
		ID:          "4b",
		Description: "1.2D + 1.0W + 1.0L + 0.5R",
		Dead:        1.2,
		Wind:        1.0,
		Live:        1.0,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for gravity-only column checks
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// LoadEffects holds an unfactored load effect (axial force or moment)
// from each load type
type LoadEffects struct {
	Dead       float64 `json:"dead,omitempty"`
	Live       float64 `json:"live,omitempty"`
	Roof       float64 `json:"roof,omitempty"`
	Wind       float64 `json:"wind,omitempty"`
	Earthquake float64 `json:"earthquake,omitempty"`
	Rain       float64 `json:"rain,omitempty"`
}

// IsZero reports whether no load effect is given
func (e LoadEffects) IsZero() bool {
	return e == LoadEffects{}
}

// Factor applies the combination's load factors to the given effects
func (lc LoadCombination) Factor(effects LoadEffects) float64 {
	return lc.Dead*effects.Dead +
		lc.Live*effects.Live +
		lc.Roof*effects.Roof +
		lc.Wind*effects.Wind +
		lc.Earthquake*effects.Earthquake +
		lc.Rain*effects.Rain
}

// FactoredDemand is the factored axial load and moment of one combination
type FactoredDemand struct {
	Combination LoadCombination `json:"combination"`
	Pu          float64         `json:"pu"` // Factored axial load (compression positive)
	Mu          float64         `json:"mu"` // Factored moment
}

// FactorDemands applies every combination to the unfactored axial loads
// and moments of a column
func FactorDemands(axial, moment LoadEffects, combinations []LoadCombination) []FactoredDemand {
	demands := make([]FactoredDemand, 0, len(combinations))
	for _, combo := range combinations {
		demands = append(demands, FactoredDemand{
			Combination: combo,
			Pu:          combo.Factor(axial),
			Mu:          combo.Factor(moment),
		})
	}
	return demands
}

// GoverningAxial finds the combination with the largest factored axial load
func GoverningAxial(demands []FactoredDemand) (FactoredDemand, bool) {
	var governing FactoredDemand
	found := false
	for _, d := range demands {
		if !found || d.Pu > governing.Pu {
			governing = d
			found = true
		}
	}
	return governing, found
}
