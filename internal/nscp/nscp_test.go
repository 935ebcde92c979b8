package nscp

import (
	"math"
	"testing"
)

func TestBeta1(t *testing.T) {
	tests := []struct {
		fc   float64
		want float64
	}{
		{21, 0.85},
		{28, 0.85},
		{35, 0.80},
		{56, 0.65},
		{80, 0.65},
	}
	for _, tt := range tests {
		if got := Beta1(tt.fc); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Beta1(%v) = %v, want %v", tt.fc, got, tt.want)
		}
	}
}

func TestBeta1PSI(t *testing.T) {
	tests := []struct {
		fc   float64
		want float64
	}{
		{3000, 0.85},
		{4000, 0.85},
		{5000, 0.80},
		{8000, 0.65},
		{10000, 0.65},
	}
	for _, tt := range tests {
		if got := Beta1PSI(tt.fc); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Beta1PSI(%v) = %v, want %v", tt.fc, got, tt.want)
		}
	}
}

func TestPhiBreakpoints(t *testing.T) {
	ety := 60000.0 / EsPSI

	tests := []struct {
		name string
		conf Confinement
		low  float64
	}{
		{"tied", Tied, 0.65},
		{"spiral", Spiral, 0.75},
	}
	for _, tt := range tests {
		if got := Phi(ety, ety, tt.conf); got != tt.low {
			t.Errorf("%s: Phi(εy) = %v, want %v", tt.name, got, tt.low)
		}
		if got := Phi(-0.001, ety, tt.conf); got != tt.low {
			t.Errorf("%s: Phi(compression) = %v, want %v", tt.name, got, tt.low)
		}
		if got := Phi(EpsilonTC, ety, tt.conf); got != PhiTension {
			t.Errorf("%s: Phi(0.005) = %v, want %v", tt.name, got, PhiTension)
		}
		if got := Phi(0.02, ety, tt.conf); got != PhiTension {
			t.Errorf("%s: Phi(0.02) = %v, want %v", tt.name, got, PhiTension)
		}
	}
}

func TestPhiMonotonicInTransition(t *testing.T) {
	ety := 420.0 / Es
	for _, conf := range []Confinement{Tied, Spiral} {
		prev := Phi(ety, ety, conf)
		const steps = 200
		for i := 1; i < steps; i++ {
			et := ety + (EpsilonTC-ety)*float64(i)/steps
			phi := Phi(et, ety, conf)
			if phi <= prev {
				t.Fatalf("%v: phi not increasing at εt=%v (%v <= %v)", conf, et, phi, prev)
			}
			if phi >= PhiTension {
				t.Fatalf("%v: phi reached ceiling inside transition at εt=%v", conf, et)
			}
			prev = phi
		}
	}
}

func TestPhiTransitionMidpoint(t *testing.T) {
	ety := 0.002
	mid := (ety + EpsilonTC) / 2
	if got, want := Phi(mid, ety, Tied), 0.65+0.25*0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("tied midpoint = %v, want %v", got, want)
	}
	if got, want := Phi(mid, ety, Spiral), 0.75+0.15*0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("spiral midpoint = %v, want %v", got, want)
	}
}

func TestPhiHighStrengthSteel(t *testing.T) {
	// εy beyond the tension-controlled limit leaves no transition zone
	ety := 0.006
	if got := Phi(0.0065, ety, Tied); got != PhiTension {
		t.Errorf("Phi = %v, want %v", got, PhiTension)
	}
	if got := Phi(0.0055, ety, Tied); got != PhiCompression {
		t.Errorf("Phi = %v, want %v", got, PhiCompression)
	}
}

func TestParseConfinement(t *testing.T) {
	tests := []struct {
		tied, spiral bool
		want         Confinement
		wantErr      bool
	}{
		{true, false, Tied, false},
		{false, true, Spiral, false},
		{true, true, 0, true},
		{false, false, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseConfinement(tt.tied, tt.spiral)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConfinement(%v, %v) error = %v, wantErr %v", tt.tied, tt.spiral, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConfinement(%v, %v) = %v, want %v", tt.tied, tt.spiral, got, tt.want)
		}
	}
}

func TestFactorDemands(t *testing.T) {
	axial := LoadEffects{Dead: 500, Live: 300}
	moment := LoadEffects{Dead: 40, Live: 25}

	demands := FactorDemands(axial, moment, SimplifiedCombinations)
	if len(demands) != 2 {
		t.Fatalf("len(demands) = %d, want 2", len(demands))
	}
	if got := demands[0].Pu; math.Abs(got-700) > 1e-9 {
		t.Errorf("1.4D Pu = %v, want 700", got)
	}
	if got := demands[1].Pu; math.Abs(got-1080) > 1e-9 {
		t.Errorf("1.2D+1.6L Pu = %v, want 1080", got)
	}
	if got := demands[1].Mu; math.Abs(got-88) > 1e-9 {
		t.Errorf("1.2D+1.6L Mu = %v, want 88", got)
	}

	gov, ok := GoverningAxial(demands)
	if !ok || gov.Combination.ID != "2" {
		t.Errorf("governing = %+v, want combination 2", gov.Combination)
	}
}

func TestRoofOrRainAlternatives(t *testing.T) {
	for _, lc := range LoadCombinations {
		if lc.Roof != 0 && lc.Rain != 0 {
			t.Errorf("combination %s applies both Lr and R", lc.ID)
		}
		if lc.Roof == 1.6 || lc.Rain == 1.6 {
			if lc.Live != 0 && lc.Wind != 0 {
				t.Errorf("combination %s applies both 1.0L and 0.5W", lc.ID)
			}
		}
	}

	// 1.2(100) + 1.6(20) governs, not 1.2(100) + 1.6(10 + 20)
	demands := FactorDemands(LoadEffects{Dead: 100, Roof: 10, Rain: 20}, LoadEffects{}, LoadCombinations)
	gov, ok := GoverningAxial(demands)
	if !ok || gov.Combination.ID != "3c" || math.Abs(gov.Pu-152) > 1e-9 {
		t.Errorf("governing = %s Pu=%v, want 3c Pu=152", gov.Combination.ID, gov.Pu)
	}
}

func TestGoverningAxialEmpty(t *testing.T) {
	if _, ok := GoverningAxial(nil); ok {
		t.Error("GoverningAxial(nil) reported a result")
	}
}

func TestConfinementText(t *testing.T) {
	for _, in := range []string{"tied", " Spiral "} {
		var c Confinement
		if err := c.UnmarshalText([]byte(in)); err != nil || !c.Valid() {
			t.Errorf("UnmarshalText(%q) = %v, %v", in, c, err)
		}
	}
	for _, in := range []string{"", "hoops"} {
		var c Confinement
		if err := c.UnmarshalText([]byte(in)); err == nil {
			t.Errorf("UnmarshalText(%q) accepted", in)
		}
	}

	var unset Confinement
	if unset.Valid() {
		t.Error("zero confinement is valid")
	}
	if _, err := unset.MarshalText(); err == nil {
		t.Error("zero confinement marshalled")
	}
}
