package column

import (
	"math"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// OutOfRange is the utilization reported for a demand beyond the extent of
// the interaction curve.
const OutOfRange = 999.0

// CurveCheck holds the result of checking one demand against a curve.
// Forces are in kip or kN and moments in kip-ft or kN-m.
type CurveCheck struct {
	Demand Demand `json:"demand"`

	PhiPn      float64 `json:"phi_pn"`       // design axial strength at |Mu|, capped
	PhiPnLower float64 `json:"phi_pn_lower"` // lower branch axial strength at |Mu|
	PhiMn      float64 `json:"phi_mn"`       // design moment strength at Pu
	AxialCap   float64 `json:"axial_cap"`

	// Nominal contributions at the capacity point
	Phi        float64 `json:"phi"`
	PnConcrete float64 `json:"pn_concrete"`
	PnSteel    float64 `json:"pn_steel"`
	PnTotal    float64 `json:"pn_total"`

	Utilization float64 `json:"utilization"` // percent
	Pass        bool    `json:"pass"`
}

// CheckSummary collects the checks of several demands.
type CheckSummary struct {
	Checks    []CurveCheck `json:"checks"`
	Governing int          `json:"governing"` // index of the highest utilization, -1 when empty
	Pass      bool         `json:"pass"`
}

// lerp interpolates every field that varies continuously along the curve.
func lerp(a, b Point, t float64) Point {
	f := func(x, y float64) float64 { return x + t*(y-x) }
	return Point{
		Control:    f(a.Control, b.Control),
		C:          f(a.C, b.C),
		A:          f(a.A, b.A),
		EpsilonT:   f(a.EpsilonT, b.EpsilonT),
		Phi:        f(a.Phi, b.Phi),
		PnConcrete: f(a.PnConcrete, b.PnConcrete),
		PnSteel:    f(a.PnSteel, b.PnSteel),
		Pn:         f(a.Pn, b.Pn),
		Mn:         f(a.Mn, b.Mn),
		PhiPn:      f(a.PhiPn, b.PhiPn),
		PhiMn:      f(a.PhiMn, b.PhiMn),
	}
}

// crossings finds every segment of the curve where key(p) passes target and
// returns the interpolated points.
func (c *Curve) crossings(target float64, key func(Point) float64) []Point {
	var out []Point
	for i := 0; i+1 < len(c.Points); i++ {
		a, b := c.Points[i], c.Points[i+1]
		ka, kb := key(a)-target, key(b)-target
		switch {
		case ka == 0:
			out = append(out, a)
		case kb == 0 && i+2 == len(c.Points):
			out = append(out, b)
		case (ka < 0) != (kb < 0) && kb != 0:
			out = append(out, lerp(a, b, ka/(ka-kb)))
		}
	}
	if len(c.Points) == 1 && key(c.Points[0]) == target {
		out = append(out, c.Points[0])
	}
	return out
}

// Check evaluates a factored demand against the curve.
func (c *Curve) Check(d Demand) CurveCheck {
	res := CurveCheck{Demand: d, AxialCap: c.AxialCap}
	mu := math.Abs(d.Mu)

	absM := func(p Point) float64 { return math.Abs(p.PhiMn) }
	phiPn := func(p Point) float64 { return p.PhiPn }

	// Axial strength at the demand moment
	axialUtil := OutOfRange
	atMoment := c.crossings(mu, absM)
	capPoint := c.Balanced()
	if len(atMoment) > 0 {
		upper, lower := atMoment[0], atMoment[0]
		for _, p := range atMoment[1:] {
			if p.PhiPn > upper.PhiPn {
				upper = p
			}
			if p.PhiPn < lower.PhiPn {
				lower = p
			}
		}
		capPoint = upper
		res.PhiPn = math.Min(upper.PhiPn, c.AxialCap)
		res.PhiPnLower = lower.PhiPn

		switch {
		case d.Pu == 0:
			axialUtil = 0
		case d.Pu < 0:
			// Tension is bounded by the lower branch at |Mu|, or by the
			// tension end of the sweep when that branch stays in compression
			limit := res.PhiPnLower
			if limit >= 0 {
				limit = c.tensionLimit()
			}
			if limit < 0 {
				axialUtil = d.Pu / limit * 100
			}
		case res.PhiPn > 0:
			axialUtil = d.Pu / res.PhiPn * 100
		}
	}

	// Moment strength at the demand axial load
	momentUtil := OutOfRange
	if atAxial := c.crossings(d.Pu, phiPn); len(atAxial) > 0 {
		for _, p := range atAxial {
			res.PhiMn = math.Max(res.PhiMn, math.Abs(p.PhiMn))
		}
		switch {
		case mu == 0:
			momentUtil = 0
		case res.PhiMn > 0:
			momentUtil = mu / res.PhiMn * 100
		}
	}

	res.Phi = capPoint.Phi
	res.PnConcrete = capPoint.PnConcrete
	res.PnSteel = capPoint.PnSteel
	res.PnTotal = capPoint.PnConcrete + capPoint.PnSteel

	res.Utilization = math.Max(axialUtil, momentUtil)
	if axialUtil == OutOfRange || momentUtil == OutOfRange {
		res.Utilization = OutOfRange
	}
	res.Pass = res.Utilization <= 100
	return res
}

// tensionLimit returns the most negative design axial strength on the curve.
func (c *Curve) tensionLimit() float64 {
	limit := 0.0
	for _, p := range c.Points {
		limit = math.Min(limit, p.PhiPn)
	}
	return limit
}

// CheckAll checks every demand and marks the governing one.
func (c *Curve) CheckAll(demands []Demand) CheckSummary {
	sum := CheckSummary{Governing: -1, Pass: true}
	for i, d := range demands {
		r := c.Check(d)
		sum.Checks = append(sum.Checks, r)
		if sum.Governing < 0 || r.Utilization > sum.Checks[sum.Governing].Utilization {
			sum.Governing = i
		}
		if !r.Pass {
			sum.Pass = false
		}
	}
	return sum
}

// AxialInput is the input of the simplified pure axial check. Areas are in
// in² or mm², stresses in psi or MPa and Pu in kip or kN.
type AxialInput struct {
	Units       Units            `json:"units"`
	Ag          float64          `json:"ag"`
	As          float64          `json:"as"`
	Fc          float64          `json:"fc"`
	Fy          float64          `json:"fy"`
	Pu          float64          `json:"pu"`
	Confinement nscp.Confinement `json:"confinement"`
}

// AxialCheck is the result of the simplified pure axial check.
type AxialCheck struct {
	Ag         float64 `json:"ag"`
	As         float64 `json:"as"`
	SteelRatio float64 `json:"steel_ratio"` // percent

	PnConcrete float64 `json:"pn_concrete"` // lb or N
	PnSteel    float64 `json:"pn_steel"`    // lb or N
	PnTotal    float64 `json:"pn_total"`    // lb or N

	Phi         float64 `json:"phi"`
	Pu          float64 `json:"pu"`          // kip or kN
	PuCapacity  float64 `json:"pu_capacity"` // kip or kN
	Utilization float64 `json:"utilization"` // percent
	Pass        bool    `json:"pass"`
}

// AxialCapacity computes φPn of a concentrically loaded column without the
// interaction sweep.
func AxialCapacity(in AxialInput) (*AxialCheck, error) {
	if !(in.Ag > 0) {
		return nil, &ConfigError{Field: "ag", Value: in.Ag, Reason: "must be positive"}
	}
	if in.As < 0 || in.As >= in.Ag {
		return nil, &ConfigError{Field: "as", Value: in.As, Reason: "must be between 0 and Ag"}
	}
	if !(in.Fc > 0) {
		return nil, &ConfigError{Field: "fc", Value: in.Fc, Reason: "must be positive"}
	}
	if !(in.Fy > 0) {
		return nil, &ConfigError{Field: "fy", Value: in.Fy, Reason: "must be positive"}
	}
	if !in.Confinement.Valid() {
		return nil, &ConfigError{Field: "confinement", Value: in.Confinement.String(), Reason: "choose tied or spiral"}
	}

	res := &AxialCheck{
		Ag:         in.Ag,
		As:         in.As,
		SteelRatio: in.As / in.Ag * 100,
		PnConcrete: 0.85 * in.Fc * (in.Ag - in.As),
		PnSteel:    in.Fy * in.As,
		Phi:        nscp.PhiCompressionControlled(in.Confinement),
		Pu:         in.Pu,
	}
	res.PnTotal = res.PnConcrete + res.PnSteel
	res.PuCapacity = in.Units.Force(res.Phi * res.PnTotal)

	if res.PuCapacity > 0 {
		res.Utilization = in.Pu / res.PuCapacity * 100
	} else {
		res.Utilization = OutOfRange
	}
	res.Pass = res.Utilization <= 100
	return res, nil
}

// AxialCheck runs the simplified axial check with the column's own areas.
func (c *Column) AxialCheck(pu float64) (*AxialCheck, error) {
	layout, err := c.Layout(Major)
	if err != nil {
		return nil, err
	}
	conf, _ := c.Confinement()
	return AxialCapacity(AxialInput{
		Units:       c.Units,
		Ag:          layout.GrossArea(),
		As:          layout.SteelArea(),
		Fc:          c.Fc,
		Fy:          c.Fy,
		Pu:          pu,
		Confinement: conf,
	})
}
