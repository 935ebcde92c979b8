package cmd

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/nscp"
	"github.com/spf13/cobra"
)

func testColumn(t *testing.T) (*column.Column, column.Axis) {
	t.Helper()
	columnFile, columnAxis = "testdata/column.yaml", "major"
	t.Cleanup(func() { columnFile, columnAxis = "", "major" })

	col, axis, err := loadColumn()
	if err != nil {
		t.Fatalf("loadColumn: %v", err)
	}
	return col, axis
}

func TestLoadColumn(t *testing.T) {
	col, axis := testColumn(t)
	if col.Name != "C1" || axis != column.Major || len(col.Demands) != 2 {
		t.Errorf("column = %+v, axis = %v", col, axis)
	}

	columnFile = ""
	if _, _, err := loadColumn(); err == nil {
		t.Error("missing file accepted")
	}
	columnFile, columnAxis = "testdata/column.yaml", "diagonal"
	if _, _, err := loadColumn(); err == nil {
		t.Error("unknown axis accepted")
	}
}

func TestKeyPoints(t *testing.T) {
	col, axis := testColumn(t)
	curve, err := col.Interaction(axis, column.Options{Samples: 1000})
	if err != nil {
		t.Fatalf("Interaction: %v", err)
	}

	kps := keyPoints(curve)
	if len(kps) != 4 {
		t.Fatalf("key points = %d", len(kps))
	}
	if kps[0].point.Pn >= 0 {
		t.Errorf("tension end Pn = %v", kps[0].point.Pn)
	}
	if !kps[3].point.Squash || kps[3].point.Pn != curve.P0 {
		t.Errorf("last key point = %+v", kps[3].point)
	}
	if math.Abs(kps[1].point.Pn) > math.Abs(kps[0].point.Pn) {
		t.Errorf("pure bending Pn = %v", kps[1].point.Pn)
	}
	if kps[2].point != curve.Balanced() {
		t.Errorf("max moment point = %+v", kps[2].point)
	}

	if keyPoints(&column.Curve{}) != nil {
		t.Error("empty curve has key points")
	}
}

func TestDiagramData(t *testing.T) {
	col, axis := testColumn(t)
	layout, err := col.Layout(axis)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	curve, err := col.Interaction(axis, column.Options{Samples: 500})
	if err != nil {
		t.Fatalf("Interaction: %v", err)
	}

	plot := interactionData("C1", curve, col.Demands)
	if len(plot.Design) != len(curve.Points) || len(plot.Nominal) != len(curve.Points) {
		t.Errorf("points = %d/%d, want %d", len(plot.Design), len(plot.Nominal), len(curve.Points))
	}
	for _, p := range plot.Design {
		if p.Y > curve.AxialCap+1e-9 {
			t.Fatalf("design point above cap: %+v", p)
		}
	}
	if len(plot.Demands) != 2 || plot.Labels[1] != "0.9D+1.0W" || plot.ForceUnit != "kip" {
		t.Errorf("demands = %+v %v %q", plot.Demands, plot.Labels, plot.ForceUnit)
	}

	bal := curve.Balanced()
	sec := sectionData("C1", layout, &bal, curve.EpsilonY)
	if len(sec.Bars) != 8 || sec.NeutralAxisDepth != bal.C || sec.EpsilonCU != nscp.EpsilonCU {
		t.Errorf("section = %+v", sec)
	}
	if sec := sectionData("C1", layout, nil, 0); sec.NeutralAxisDepth != 0 {
		t.Errorf("bars-only section has a neutral axis")
	}
}

func TestCheckDemandsFor(t *testing.T) {
	col, _ := testColumn(t)

	c := &cobra.Command{}
	c.Flags().Float64Var(&checkPu, "pu", 0, "")
	c.Flags().Float64Var(&checkMu, "mu", 0, "")

	demands, err := checkDemandsFor(c, col)
	if err != nil || len(demands) != 2 {
		t.Fatalf("file demands = %v, %v", demands, err)
	}

	if err := c.Flags().Set("pu", "250"); err != nil {
		t.Fatal(err)
	}
	demands, err = checkDemandsFor(c, col)
	if err != nil || len(demands) != 1 || demands[0].Pu != 250 || demands[0].Mu != 0 {
		t.Errorf("flag demands = %v, %v", demands, err)
	}
}

func TestCombinationDemands(t *testing.T) {
	demands := nscp.FactorDemands(
		nscp.LoadEffects{Dead: 500, Live: 300},
		nscp.LoadEffects{Dead: 40, Live: 30},
		nscp.SimplifiedCombinations,
	)
	got := combinationDemands(demands)
	if len(got) != 2 {
		t.Fatalf("demands = %v", got)
	}
	if got[1].Label != nscp.SimplifiedCombinations[1].ID || math.Abs(got[1].Pu-1080) > 1e-9 || math.Abs(got[1].Mu-96) > 1e-9 {
		t.Errorf("demand = %+v", got[1])
	}
}

func TestForceUnit(t *testing.T) {
	if forceUnit("metric") != "kN" || forceUnit("imperial") != "kip" {
		t.Error("force unit labels")
	}
}

func TestAxialInputFromFlags(t *testing.T) {
	t.Cleanup(func() { axialUnits, axialTied, axialSpiral = "metric", false, false })
	axialUnits, axialAg, axialAs, axialFc, axialFy, axialPu = "metric", 250000, 4000, 30, 420, 2000

	tests := []struct {
		tied, spiral bool
		want         nscp.Confinement
		wantErr      bool
	}{
		{true, false, nscp.Tied, false},
		{false, true, nscp.Spiral, false},
		{false, false, 0, true},
		{true, true, 0, true},
	}
	for _, tt := range tests {
		axialTied, axialSpiral = tt.tied, tt.spiral
		in, err := axialInputFromFlags()
		if (err != nil) != tt.wantErr {
			t.Errorf("tied=%v spiral=%v: err = %v", tt.tied, tt.spiral, err)
			continue
		}
		if !tt.wantErr && (in.Confinement != tt.want || in.Units != column.Metric || in.Ag != 250000) {
			t.Errorf("tied=%v spiral=%v: input = %+v", tt.tied, tt.spiral, in)
		}
	}
}

func TestDiagramDataNegative(t *testing.T) {
	col, axis := testColumn(t)
	columnSamples, columnNegative = 300, true
	t.Cleanup(func() { columnSamples, columnNegative = 0, false })

	curve, err := col.Interaction(axis, curveOptions())
	if err != nil {
		t.Fatalf("Interaction: %v", err)
	}
	demands := []column.Demand{{Label: "reversed", Pu: 200, Mu: -90}}
	plot := interactionData("C1", curve, demands)

	if len(plot.Design) != len(curve.Points)+len(curve.Negative)-1 {
		t.Errorf("design points = %d", len(plot.Design))
	}
	if plot.Design[0].X >= 0 || plot.Design[len(plot.Design)-1].X <= 0 {
		t.Errorf("outline runs %v .. %v", plot.Design[0].X, plot.Design[len(plot.Design)-1].X)
	}
	if plot.Demands[0].X != -90 {
		t.Errorf("demand moment = %v, want signed", plot.Demands[0].X)
	}
}
