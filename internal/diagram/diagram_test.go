package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleSection(circular bool) SectionData {
	d := SectionData{
		Title:            "C1",
		Circular:         circular,
		Width:            16,
		Depth:            16,
		NeutralAxisDepth: 6,
		StressBlockDepth: 5.1,
		EpsilonCU:        0.003,
		EpsilonT:         0.0045,
		EpsilonY:         0.00207,
		LengthUnit:       "in",
	}
	d.Bars = []Point{{X: -5.5, Y: 5.5}, {X: 5.5, Y: 5.5}, {X: -5.5, Y: -5.5}, {X: 5.5, Y: -5.5}}
	return d
}

func sampleCurve() InteractionData {
	return InteractionData{
		Title:      "C1",
		ForceUnit:  "kip",
		MomentUnit: "kip-ft",
		Nominal:    []Point{{X: 0, Y: -380}, {X: 150, Y: 0}, {X: 260, Y: 360}, {X: 0, Y: 1228}},
		Design:     []Point{{X: 0, Y: -342}, {X: 135, Y: 0}, {X: 170, Y: 234}, {X: 0, Y: 798}},
		AxialCap:   638,
		Demands:    []Point{{X: 50, Y: 300}},
		Labels:     []string{"D+L"},
	}
}

func TestDrawASCIISection(t *testing.T) {
	for _, circular := range []bool{false, true} {
		out := DrawASCIISection(sampleSection(circular))
		// four bars plus the legend entry
		if n := strings.Count(out, "●"); n != 5 {
			t.Errorf("circular=%t: bar glyphs = %d, want 5", circular, n)
		}
		for _, want := range []string{"C1", "N.A.", "░", "Stress block depth a = 5.10 in"} {
			if !strings.Contains(out, want) {
				t.Errorf("circular=%t: missing %q", circular, want)
			}
		}
	}
}

func TestDrawStrainDiagram(t *testing.T) {
	out := DrawStrainDiagram(sampleSection(false))
	if !strings.Contains(out, "εcu=0.0030") || !strings.Contains(out, "✓yields") {
		t.Errorf("strain diagram:\n%s", out)
	}
	if DrawStrainDiagram(SectionData{Depth: 10}) != "" {
		t.Error("expected empty diagram without a neutral axis")
	}
}

func TestEnvelope(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 100}}
	got := Envelope(pts, 0, 100, 5)
	want := []float64{0, 50, 100, 50, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Envelope = %v, want %v", got, want)
		}
	}
	if out := Envelope(pts, 200, 300, 3); out[0] != 0 || out[2] != 0 {
		t.Errorf("out of range = %v", out)
	}
}

func TestDrawInteraction(t *testing.T) {
	out := DrawInteraction(sampleCurve(), 40, 10)
	if !strings.Contains(out, "kip-ft vs axial load") {
		t.Errorf("caption missing:\n%s", out)
	}
	if DrawInteraction(InteractionData{}, 40, 10) != "" {
		t.Error("expected empty chart for an empty curve")
	}
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("RESULT", []string{"φPn = 798.3 kip", "PASS"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d", len(lines))
	}
	w := len([]rune(lines[0]))
	for _, l := range lines {
		if len([]rune(l)) != w {
			t.Errorf("ragged box line %q", l)
		}
	}
}

func TestExportDiagrams(t *testing.T) {
	dir := t.TempDir()

	curveFile := filepath.Join(dir, "out", "curve.png")
	if err := ExportInteractionDiagram(sampleCurve(), curveFile); err != nil {
		t.Fatalf("ExportInteractionDiagram: %v", err)
	}
	if _, err := os.Stat(curveFile); err != nil {
		t.Errorf("curve image: %v", err)
	}

	sectionFile := filepath.Join(dir, "section.svg")
	if err := ExportSectionDiagram(sampleSection(true), sectionFile); err != nil {
		t.Fatalf("ExportSectionDiagram: %v", err)
	}
	if _, err := os.Stat(sectionFile); err != nil {
		t.Errorf("section image: %v", err)
	}

	if err := ExportInteractionDiagram(InteractionData{}, filepath.Join(dir, "x.png")); err == nil {
		t.Error("empty curve exported")
	}
}
