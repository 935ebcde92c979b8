package column

import (
	"math"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// Detailing holds the reinforcement detailing checks of a column.
type Detailing struct {
	Ag  float64 `json:"ag"`
	Ast float64 `json:"ast"`
	Rho float64 `json:"rho"` // Ast/Ag

	MeetsMinReinforcement bool `json:"meets_min_reinforcement"`
	MeetsMaxReinforcement bool `json:"meets_max_reinforcement"`

	// Tie spacing limit min(16 db, 48 dt, least dimension)
	TieSpacing    float64 `json:"tie_spacing"`
	MaxTieSpacing float64 `json:"max_tie_spacing"`
	TieSpacingOK  bool    `json:"tie_spacing_ok"` // true when no spacing is given

	ClearSpacing    float64 `json:"clear_spacing"`
	RequiredSpacing float64 `json:"required_spacing"`

	DevelopmentLength float64 `json:"development_length"` // straight bar, in or mm

	Messages []string `json:"messages,omitempty"`
}

// Detailing checks reinforcement ratio, tie spacing and development length.
func (c *Column) Detailing() (*Detailing, error) {
	layout, err := c.Layout(Major)
	if err != nil {
		return nil, err
	}

	d := &Detailing{
		Ag:              layout.GrossArea(),
		Ast:             layout.SteelArea(),
		TieSpacing:      c.TieSpacing,
		ClearSpacing:    layout.ClearSpacing,
		RequiredSpacing: layout.RequiredSpacing,
	}
	d.Rho = d.Ast / d.Ag
	d.MeetsMinReinforcement = d.Rho >= nscp.RhoMin
	d.MeetsMaxReinforcement = d.Rho <= nscp.RhoMax
	if !d.MeetsMinReinforcement {
		d.Messages = append(d.Messages, "Reinforcement ratio below 1%")
	}
	if !d.MeetsMaxReinforcement {
		d.Messages = append(d.Messages, "Reinforcement ratio above 8%")
	}

	db, dt := layout.BarSize.Diameter, layout.TieSize.Diameter
	d.MaxTieSpacing = math.Min(math.Min(16*db, 48*dt), c.Section().LeastDimension())
	d.TieSpacingOK = c.TieSpacing == 0 || c.TieSpacing <= d.MaxTieSpacing
	if !d.TieSpacingOK {
		d.Messages = append(d.Messages, "Tie spacing exceeds the limit")
	}

	factor := c.DevLengthFactor
	if factor == 0 {
		factor = 1
	}
	if c.Units == Metric {
		d.DevelopmentLength = factor * 0.6 * c.Fy * db / math.Sqrt(c.Fc)
	} else {
		d.DevelopmentLength = factor * c.Fy * db / (20 * math.Sqrt(c.Fc))
	}

	return d, nil
}
