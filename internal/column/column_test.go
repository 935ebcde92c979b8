package column

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func squareColumn() *Column {
	return &Column{
		Name:        "C1",
		Units:       Imperial,
		Shape:       Rectangular,
		Width:       16,
		Depth:       16,
		Cover:       1.5,
		Fc:          4000,
		Fy:          60000,
		BarSize:     "#8",
		BarsPerFace: 3,
		BarsPerSide: 1,
		TieSize:     "#4",
		TieSpacing:  12,
		Tied:        true,
	}
}

func roundColumn() *Column {
	return &Column{
		Name:     "C2",
		Units:    Imperial,
		Shape:    Circular,
		Diameter: 24,
		Cover:    1.5,
		Fc:       4000,
		Fy:       60000,
		BarSize:  "#8",
		BarCount: 8,
		TieSize:  "#4",
		Spiral:   true,
	}
}

func TestCircularLayout(t *testing.T) {
	l, err := roundColumn().Layout(Major)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(l.Bars) != 8 {
		t.Fatalf("bars = %d, want 8", len(l.Bars))
	}
	if !approx(l.Bars[0].Offset, 9.5, 1e-12) {
		t.Errorf("first bar offset = %v, want 9.5", l.Bars[0].Offset)
	}
	want := 9.5 * math.Cos(math.Pi/4)
	if !approx(l.Bars[1].Offset, want, 1e-9) || !approx(l.Bars[1].Lateral, want, 1e-9) {
		t.Errorf("bar at 45° = (%v, %v), want (%v, %v)", l.Bars[1].Offset, l.Bars[1].Lateral, want, want)
	}
	if !approx(l.SteelArea(), 8*0.79, 1e-12) {
		t.Errorf("Ast = %v", l.SteelArea())
	}
	wantClear := (math.Pi*24 - 8) / 8
	if !approx(l.ClearSpacing, wantClear, 1e-9) {
		t.Errorf("clear spacing = %v, want %v", l.ClearSpacing, wantClear)
	}
}

func TestRectangularLayout(t *testing.T) {
	col := squareColumn()
	col.Width = 20

	major, err := col.Layout(Major)
	if err != nil {
		t.Fatalf("Layout(Major): %v", err)
	}
	if len(major.Bars) != 8 {
		t.Fatalf("bars = %d, want 8", len(major.Bars))
	}
	if major.Depth != 16 || major.Width != 20 {
		t.Errorf("major extent = %v x %v", major.Depth, major.Width)
	}
	// Rows at ±(H/2 - cover - tie - db/2)
	if !approx(major.Bars[0].Offset, 5.5, 1e-12) || !approx(major.Bars[1].Offset, -5.5, 1e-12) {
		t.Errorf("row offsets = %v, %v", major.Bars[0].Offset, major.Bars[1].Offset)
	}
	if !approx(major.Bars[0].Lateral, -7.5, 1e-12) {
		t.Errorf("corner lateral = %v, want -7.5", major.Bars[0].Lateral)
	}

	minor, err := col.Layout(Minor)
	if err != nil {
		t.Fatalf("Layout(Minor): %v", err)
	}
	if minor.Depth != 20 || minor.Width != 16 {
		t.Errorf("minor extent = %v x %v", minor.Depth, minor.Width)
	}
	if !approx(minor.Bars[0].Offset, -7.5, 1e-12) || !approx(minor.Bars[0].Lateral, 5.5, 1e-12) {
		t.Errorf("minor corner = (%v, %v)", minor.Bars[0].Offset, minor.Bars[0].Lateral)
	}
}

func TestSpacingRejected(t *testing.T) {
	round := roundColumn()
	round.Diameter = 12
	round.BarCount = 24
	_, err := round.Layout(Major)
	var sp *SpacingError
	if !errors.As(err, &sp) {
		t.Fatalf("circular err = %v, want SpacingError", err)
	}
	if sp.Face != "perimeter" || sp.Required != 1 {
		t.Errorf("spacing error = %+v", sp)
	}

	rect := squareColumn()
	rect.Width = 12
	rect.BarsPerFace = 6
	_, err = rect.Layout(Major)
	if !errors.As(err, &sp) {
		t.Fatalf("rectangular err = %v, want SpacingError", err)
	}
	if sp.Face != "top/bottom" || !approx(sp.Clear, 0.4, 1e-12) {
		t.Errorf("spacing error = %+v", sp)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(c *Column)
		field string
	}{
		{"both confinements", func(c *Column) { c.Spiral = true }, "confinement"},
		{"no confinement", func(c *Column) { c.Tied = false }, "confinement"},
		{"bad bar", func(c *Column) { c.BarSize = "6" }, "bar_size"},
		{"bad tie", func(c *Column) { c.TieSize = "DB10" }, "tie_size"},
		{"zero width", func(c *Column) { c.Width = 0 }, "width"},
		{"negative fc", func(c *Column) { c.Fc = -1 }, "fc"},
		{"one bar per face", func(c *Column) { c.BarsPerFace = 1 }, "bars_per_face"},
		{"no cover", func(c *Column) { c.Cover = 0 }, "cover"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := squareColumn()
			tt.edit(col)
			err := col.Validate()
			var cfg *ConfigError
			if !errors.As(err, &cfg) {
				t.Fatalf("err = %v, want ConfigError", err)
			}
			if cfg.Field != tt.field {
				t.Errorf("field = %q, want %q", cfg.Field, tt.field)
			}
		})
	}

	round := roundColumn()
	round.BarCount = 3
	var cfg *ConfigError
	if err := round.Validate(); !errors.As(err, &cfg) || cfg.Field != "bar_count" {
		t.Errorf("3 bars: err = %v", err)
	}
}

func TestSolverDegenerateControl(t *testing.T) {
	col := squareColumn()
	l, _ := col.Layout(Major)
	s, err := NewSolver(l, col.Material())
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	var cv *ControlVariableError
	for _, c := range []float64{0, -1, math.NaN()} {
		if _, err := s.Solve(c); !errors.As(err, &cv) {
			t.Errorf("Solve(%v) err = %v, want ControlVariableError", c, err)
		}
	}

	round := roundColumn()
	rl, _ := round.Layout(Major)
	rs, _ := NewSolver(rl, round.Material())
	if _, err := rs.Solve(4); !errors.As(err, &cv) {
		t.Errorf("Solve(4) err = %v, want ControlVariableError", err)
	}
}

func TestBeta1Domain(t *testing.T) {
	col := squareColumn()
	col.Fc = 2000
	_, err := col.Interaction(Major, Options{Samples: 100})
	var dom *DomainError
	if !errors.As(err, &dom) {
		t.Fatalf("err = %v, want DomainError", err)
	}
}

func TestRectangularCurve(t *testing.T) {
	curve, err := squareColumn().Interaction(Major, Options{Samples: 2000})
	if err != nil {
		t.Fatalf("Interaction: %v", err)
	}

	// P0 = 0.85 f'c (Ag - Ast) + fy Ast
	p0 := (0.85*4000*(256-6.32) + 60000*6.32) / 1000
	if !approx(curve.P0, p0, 1e-9) {
		t.Errorf("P0 = %v, want %v", curve.P0, p0)
	}
	last := curve.Points[len(curve.Points)-1]
	if !last.Squash || last.Mn != 0 || !approx(last.Pn, p0, 1e-9) {
		t.Errorf("last point = %+v", last)
	}
	if !approx(curve.PhiPnMax, 0.65*p0, 1e-6) {
		t.Errorf("φPn,max = %v, want %v", curve.PhiPnMax, 0.65*p0)
	}
	if !approx(curve.AxialCap, 0.80*0.65*p0, 1e-6) {
		t.Errorf("cap = %v, want %v", curve.AxialCap, 0.80*0.65*p0)
	}

	first := curve.Points[0]
	if first.Phi != nscp.PhiTension || first.Pn >= 0 {
		t.Errorf("first point = %+v, want tension controlled", first)
	}

	for i, p := range curve.Points {
		if p.Phi < nscp.PhiCompression || p.Phi > nscp.PhiTension {
			t.Fatalf("point %d φ = %v", i, p.Phi)
		}
		if i > 0 && same(p.PhiPn, curve.Points[i-1].PhiPn) && same(p.PhiMn, curve.Points[i-1].PhiMn) {
			t.Fatalf("point %d repeats point %d", i, i-1)
		}
	}

	for _, p := range curve.Capped() {
		if p.PhiPn > curve.AxialCap {
			t.Fatalf("capped φPn %v above %v", p.PhiPn, curve.AxialCap)
		}
	}

	if bal := curve.Balanced(); bal.PhiMn <= 0 || bal.Squash {
		t.Errorf("balanced point = %+v", bal)
	}
}

func TestCircularCurve(t *testing.T) {
	curve, err := roundColumn().Interaction(Major, Options{})
	if err != nil {
		t.Fatalf("Interaction: %v", err)
	}
	if curve.Samples != DefaultCircularSamples {
		t.Errorf("samples = %d", curve.Samples)
	}

	ag := math.Pi * 24 * 24 / 4
	p0 := (0.85*4000*(ag-6.32) + 60000*6.32) / 1000
	if !approx(curve.P0, p0, 1e-9) {
		t.Errorf("P0 = %v, want %v", curve.P0, p0)
	}
	if !approx(curve.PhiPnMax, 0.75*p0, 1e-6) {
		t.Errorf("φPn,max = %v, want %v", curve.PhiPnMax, 0.75*p0)
	}
	if !approx(curve.AxialCap, 0.85*0.75*p0, 1e-6) {
		t.Errorf("cap = %v", curve.AxialCap)
	}
	if last := curve.Points[len(curve.Points)-1]; !last.Squash || last.Phi != nscp.PhiCompressionSp {
		t.Errorf("last point = %+v", last)
	}
}

func TestFlippedSymmetry(t *testing.T) {
	for _, col := range []*Column{squareColumn(), roundColumn()} {
		l, err := col.Layout(Major)
		if err != nil {
			t.Fatalf("Layout: %v", err)
		}
		s, _ := NewSolver(l, col.Material())
		f, _ := NewSolver(l.Flipped(), col.Material())

		controls := []float64{2, 5, 9, 14, 30}
		if col.Shape == Circular {
			controls = []float64{0.3, 1, 1.6, 2.2, 3}
		}
		for _, c := range controls {
			a, err := s.Solve(c)
			if err != nil {
				t.Fatalf("Solve(%v): %v", c, err)
			}
			b, _ := f.Solve(c)
			if !approx(a.Pn, b.Pn, 1e-6*math.Abs(a.Pn)+1e-6) {
				t.Errorf("%s c=%v: Pn %v vs flipped %v", col.Shape, c, a.Pn, b.Pn)
			}
			if !approx(a.Mn, b.Mn, 1e-6*math.Abs(a.Mn)+1e-3) {
				t.Errorf("%s c=%v: Mn %v vs flipped %v", col.Shape, c, a.Mn, b.Mn)
			}
		}
	}
}

func TestNegativeBranch(t *testing.T) {
	for _, col := range []*Column{squareColumn(), roundColumn()} {
		curve, err := col.Interaction(Major, Options{Samples: 400, Negative: true})
		if err != nil {
			t.Fatalf("Interaction: %v", err)
		}
		if len(curve.Negative) == 0 {
			t.Fatalf("%s: no negative branch", col.Shape)
		}

		pos := make(map[float64]Point)
		for _, p := range curve.Points {
			if !p.Squash {
				pos[p.Control] = p
			}
		}
		matched := 0
		for _, n := range curve.Negative {
			p, ok := pos[n.Control]
			if !ok || n.Squash {
				continue
			}
			matched++
			if !approx(n.Pn, p.Pn, 1e-6*math.Abs(p.Pn)+1e-6) {
				t.Errorf("%s control=%v: Pn %v vs %v", col.Shape, n.Control, n.Pn, p.Pn)
			}
			if !approx(n.Mn, -p.Mn, 1e-6*math.Abs(p.Mn)+1e-6) || !approx(n.PhiMn, -p.PhiMn, 1e-6*math.Abs(p.PhiMn)+1e-6) {
				t.Errorf("%s control=%v: Mn %v, want %v", col.Shape, n.Control, n.Mn, -p.Mn)
			}
		}
		if matched < len(curve.Points)/2 {
			t.Errorf("%s: only %d of %d points matched", col.Shape, matched, len(curve.Points))
		}
		if last := curve.Negative[len(curve.Negative)-1]; !last.Squash || last.Pn != curve.P0 {
			t.Errorf("%s: negative branch ends at %+v", col.Shape, last)
		}

		out := curve.Outline()
		if len(out) != len(curve.Points)+len(curve.Negative)-1 {
			t.Errorf("%s: outline has %d points", col.Shape, len(out))
		}
		squash := 0
		for _, p := range out {
			if p.Squash {
				squash++
			}
			if p.PhiPn > curve.AxialCap {
				t.Fatalf("%s: outline above cap: %+v", col.Shape, p)
			}
		}
		if squash != 1 || out[0].PhiMn >= 0 || out[len(out)-1].PhiMn <= 0 {
			t.Errorf("%s: outline ends %v .. %v, %d squash points", col.Shape, out[0].PhiMn, out[len(out)-1].PhiMn, squash)
		}
	}

	curve, _ := squareColumn().Interaction(Major, Options{Samples: 100})
	if curve.Negative != nil {
		t.Error("negative branch built without being requested")
	}
	if out := curve.Outline(); len(out) != len(curve.Points) || !out[0].Squash {
		t.Errorf("outline without negative branch = %d points", len(out))
	}
}

func TestCurveCheck(t *testing.T) {
	curve, err := squareColumn().Interaction(Major, Options{Samples: 2000})
	if err != nil {
		t.Fatalf("Interaction: %v", err)
	}

	r := curve.Check(Demand{Pu: 0, Mu: 0})
	if !r.Pass || r.Utilization != 0 {
		t.Errorf("zero demand = %+v", r)
	}
	if !approx(r.PhiPn, curve.AxialCap, 1e-9) {
		t.Errorf("φPn at Mu=0 = %v, want cap %v", r.PhiPn, curve.AxialCap)
	}

	over := curve.AxialCap * 1.1
	r = curve.Check(Demand{Pu: over, Mu: 0})
	if r.Pass || !approx(r.Utilization, 110, 1e-6) {
		t.Errorf("above cap = %+v", r)
	}

	r = curve.Check(Demand{Pu: 300, Mu: 50})
	if !r.Pass || r.Utilization <= 0 || r.Utilization > 100 {
		t.Errorf("moderate demand = %+v", r)
	}
	if r.PhiMn <= 50 {
		t.Errorf("φMn at 300 = %v", r.PhiMn)
	}
	if !approx(r.PnTotal, r.PnConcrete+r.PnSteel, 1e-9) {
		t.Errorf("contributions do not add up: %+v", r)
	}

	r = curve.Check(Demand{Pu: 300, Mu: 10000})
	if r.Pass || r.Utilization != OutOfRange {
		t.Errorf("huge moment = %+v", r)
	}

	// Negative moment is checked by magnitude
	pos := curve.Check(Demand{Pu: 200, Mu: 80})
	neg := curve.Check(Demand{Pu: 200, Mu: -80})
	if pos.Utilization != neg.Utilization {
		t.Errorf("utilization %v vs %v", pos.Utilization, neg.Utilization)
	}

	sum := curve.CheckAll([]Demand{{Label: "a", Pu: 100, Mu: 20}, {Label: "b", Pu: over}, {Label: "c"}})
	if sum.Pass || sum.Governing != 1 || len(sum.Checks) != 3 {
		t.Errorf("summary = %+v", sum)
	}
	if empty := curve.CheckAll(nil); empty.Governing != -1 || !empty.Pass {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestCurveCheckTension(t *testing.T) {
	curve, err := squareColumn().Interaction(Major, Options{Samples: 2000})
	if err != nil {
		t.Fatalf("Interaction: %v", err)
	}
	tension := curve.Points[0].PhiPn
	if tension >= 0 || tension != curve.tensionLimit() {
		t.Fatalf("tension end φPn = %v, limit %v", tension, curve.tensionLimit())
	}

	tests := []struct {
		name string
		pu   float64
		want float64
		pass bool
	}{
		{"half", 0.5 * tension, 50, true},
		{"inside", 0.97 * tension, 97, true},
		{"outside", 1.03 * tension, OutOfRange, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := curve.Check(Demand{Pu: tt.pu})
			if r.Pass != tt.pass || !approx(r.Utilization, tt.want, 1e-6) {
				t.Errorf("Pu = %v: utilization = %v pass=%v, want %v", tt.pu, r.Utilization, r.Pass, tt.want)
			}
		})
	}
}

func TestAxialCapacity(t *testing.T) {
	r, err := AxialCapacity(AxialInput{
		Units: Metric,
		Ag:    250000,
		As:    4000,
		Fc:    30,
		Fy:    420,
		Pu:    2000,

		Confinement: nscp.Tied,
	})
	if err != nil {
		t.Fatalf("AxialCapacity: %v", err)
	}
	if !approx(r.PnConcrete, 6273000, 1e-6) || !approx(r.PnSteel, 1680000, 1e-6) {
		t.Errorf("Pn = %v + %v", r.PnConcrete, r.PnSteel)
	}
	if r.Phi != 0.65 {
		t.Errorf("φ = %v", r.Phi)
	}
	if !approx(r.PuCapacity, 5169.45, 1e-6) {
		t.Errorf("capacity = %v, want 5169.45", r.PuCapacity)
	}
	if !approx(r.Utilization, 38.69, 0.01) || !r.Pass {
		t.Errorf("utilization = %v pass=%v", r.Utilization, r.Pass)
	}
	if !approx(r.SteelRatio, 1.6, 1e-9) {
		t.Errorf("ratio = %v", r.SteelRatio)
	}

	sp, _ := AxialCapacity(AxialInput{Units: Metric, Ag: 250000, As: 4000, Fc: 30, Fy: 420, Pu: 2000, Confinement: nscp.Spiral})
	if sp.Phi != 0.75 {
		t.Errorf("spiral φ = %v", sp.Phi)
	}

	if _, err := AxialCapacity(AxialInput{Ag: 100, As: 100, Fc: 30, Fy: 420, Confinement: nscp.Tied}); err == nil {
		t.Error("As >= Ag accepted")
	}

	_, err = AxialCapacity(AxialInput{Units: Metric, Ag: 250000, As: 4000, Fc: 30, Fy: 420, Pu: 2000})
	var cfg *ConfigError
	if !errors.As(err, &cfg) || cfg.Field != "confinement" {
		t.Errorf("missing confinement error = %v", err)
	}
}

func TestDetailing(t *testing.T) {
	d, err := squareColumn().Detailing()
	if err != nil {
		t.Fatalf("Detailing: %v", err)
	}
	if !approx(d.Rho, 6.32/256, 1e-12) || !d.MeetsMinReinforcement || !d.MeetsMaxReinforcement {
		t.Errorf("ratio = %+v", d)
	}
	if d.MaxTieSpacing != 16 || !d.TieSpacingOK {
		t.Errorf("tie spacing = %v ok=%v", d.MaxTieSpacing, d.TieSpacingOK)
	}
	want := 60000 * 1.0 / (20 * math.Sqrt(4000))
	if !approx(d.DevelopmentLength, want, 1e-9) {
		t.Errorf("ld = %v, want %v", d.DevelopmentLength, want)
	}

	col := squareColumn()
	col.TieSpacing = 18
	d, _ = col.Detailing()
	if d.TieSpacingOK || len(d.Messages) != 1 {
		t.Errorf("18 in ties = %+v", d)
	}
}

func TestParse(t *testing.T) {
	yamlDoc := `
name: C2
units: imperial
shape: circular
diameter: 24
cover: 1.5
fc: 4000
fy: 60000
bar_size: "#8"
bar_count: 8
tie_size: "#4"
spiral: true
demands:
  - label: D+L
    pu: 400
    mu: 120
`
	col, err := Parse([]byte(yamlDoc), ".yaml")
	if err != nil {
		t.Fatalf("Parse yaml: %v", err)
	}
	if col.Shape != Circular || col.BarCount != 8 || len(col.Demands) != 1 || col.Demands[0].Mu != 120 {
		t.Errorf("column = %+v", col)
	}

	jsonDoc := `{"name":"C1","units":"metric","shape":"rectangular","width":400,"depth":600,
		"cover":40,"fc":28,"fy":420,"bar_size":"DB20","bars_per_face":4,"bars_per_side":2,
		"tie_size":"DB10","tied":true}`
	col, err = Parse([]byte(jsonDoc), ".json")
	if err != nil {
		t.Fatalf("Parse json: %v", err)
	}
	if col.Units != Metric || col.Material().Es != nscp.Es {
		t.Errorf("column = %+v", col)
	}

	if _, err := Parse([]byte(`{"shape":"hexagon"}`), ".json"); err == nil {
		t.Error("unknown shape accepted")
	}
}
