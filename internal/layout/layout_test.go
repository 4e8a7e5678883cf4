package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Faneva385/svg-initiation/internal/geom"
)

const tol = 1e-9

func TestRatiosSumToOne(t *testing.T) {
	inputs := [][]float64{
		{1},
		{1, 2, 3},
		{0.1, 0.2, 0.3, 0.4},
		{1e6, 3, 0, 42.5},
	}
	for _, m := range inputs {
		res, err := Compute(m, 1, DefaultOptions())
		if err != nil {
			t.Fatalf("Compute(%v): %v", m, err)
		}
		var sum float64
		for _, a := range res.Arcs {
			sum += a.Ratio
		}
		if math.Abs(sum-1) > tol {
			t.Errorf("Compute(%v) ratios sum to %v, want 1", m, sum)
		}
	}
}

func TestQuarters(t *testing.T) {
	res, err := Compute([]float64{1, 1, 1, 1}, 1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for k, a := range res.Arcs {
		span := a.Ratio * 2 * math.Pi
		if math.Abs(span-math.Pi/2) > tol {
			t.Errorf("slice %d span = %v, want π/2", k, span)
		}
		if a.LargeArc {
			t.Errorf("slice %d has large-arc flag", k)
		}
	}
	if d := res.EndAngle - (StartTop + 2*math.Pi); math.Abs(d) > tol {
		t.Errorf("end angle = %v, want start+2π", res.EndAngle)
	}

	first := res.Arcs[0].Start
	last := res.Arcs[3].End
	if math.Abs(first.X-last.X) > tol || math.Abs(first.Y-last.Y) > tol {
		t.Errorf("circle not closed: first start %v, last end %v", first, last)
	}
}

func TestContiguousBoundaries(t *testing.T) {
	res, err := Compute([]float64{5, 2, 7, 1}, 1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for k := 1; k < len(res.Arcs); k++ {
		if res.Arcs[k].Start != res.Arcs[k-1].End {
			t.Errorf("slice %d start %v != slice %d end %v", k, res.Arcs[k].Start, k-1, res.Arcs[k-1].End)
		}
		if res.Guides[k] != res.Arcs[k].Start {
			t.Errorf("guide %d = %v, want slice start %v", k, res.Guides[k], res.Arcs[k].Start)
		}
	}
}

func TestLargeArcFlag(t *testing.T) {
	res, err := Compute([]float64{3, 1}, 1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Arcs[0].LargeArc {
		t.Error("slice 0 (ratio 0.75) should set the large-arc flag")
	}
	if res.Arcs[1].LargeArc {
		t.Error("slice 1 (ratio 0.25) should not set the large-arc flag")
	}
	if !strings.Contains(res.Arcs[0].Path(), " A 1 1 0 1 1 ") {
		t.Errorf("slice 0 path %q missing large-arc flag", res.Arcs[0].Path())
	}
	if !strings.Contains(res.Arcs[1].Path(), " A 1 1 0 0 1 ") {
		t.Errorf("slice 1 path %q has wrong flag", res.Arcs[1].Path())
	}

	// Exactly half never needs the long arc.
	half, _ := Compute([]float64{1, 1}, 1, DefaultOptions())
	if half.Arcs[0].LargeArc || half.Arcs[1].LargeArc {
		t.Error("ratio 0.5 must not set the large-arc flag")
	}
}

func TestPathFormat(t *testing.T) {
	res, err := Compute([]float64{1, 1}, 1, Options{StartAngle: StartRight, Final: true})
	if err != nil {
		t.Fatal(err)
	}
	p := res.Arcs[0].Path()
	if !strings.HasPrefix(p, "M 0 0 L 1 0 A 1 1 0 0 1 -1 ") {
		t.Errorf("path = %q", p)
	}
	if !strings.HasSuffix(p, " L 0 0") {
		t.Errorf("path %q does not return to center", p)
	}
}

func TestZeroMagnitudeSlice(t *testing.T) {
	res, err := Compute([]float64{0, 5}, 1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	zero := res.Arcs[0]
	if !zero.Degenerate() || zero.Start != zero.End {
		t.Errorf("slice 0 should be degenerate, got %+v", zero)
	}
	full := res.Arcs[1]
	if !full.LargeArc || full.Ratio != 1 || !full.Full() {
		t.Errorf("slice 1 should span the full circle, got %+v", full)
	}
	// Start and end coincide, so the circle is drawn through the opposite
	// point as two half arcs.
	want := "M 0 0 L " + geom.FormatPoint(full.Start) +
		" A 1 1 0 0 1 " + geom.FormatPoint(full.Start.Scale(-1)) +
		" A 1 1 0 0 1 " + geom.FormatPoint(full.End) + " L 0 0"
	if got := full.Path(); got != want {
		t.Errorf("full circle path = %q, want %q", got, want)
	}
	if strings.Count(zero.Path(), " A ") != 1 {
		t.Errorf("zero slice path = %q, want a single arc", zero.Path())
	}
	for k, a := range res.Arcs {
		if !a.Start.IsFinite() || !a.End.IsFinite() {
			t.Errorf("slice %d has non-finite coordinates: %+v", k, a)
		}
		if strings.Contains(a.Path(), "NaN") {
			t.Errorf("slice %d path contains NaN: %q", k, a.Path())
		}
	}
}

func TestNoData(t *testing.T) {
	for _, m := range [][]float64{nil, {}, {0, 0, 0}} {
		if _, err := Compute(m, 1, DefaultOptions()); !errors.Is(err, ErrNoData) {
			t.Errorf("Compute(%v) err = %v, want ErrNoData", m, err)
		}
	}
}

func TestInvalidMagnitude(t *testing.T) {
	for _, m := range [][]float64{{1, -1}, {math.NaN()}, {1, math.Inf(1)}} {
		if _, err := Compute(m, 1, DefaultOptions()); !errors.Is(err, ErrInvalidMagnitude) {
			t.Errorf("Compute(%v) err = %v, want ErrInvalidMagnitude", m, err)
		}
	}
}

func TestProgressScalesSweep(t *testing.T) {
	res, err := Compute([]float64{1, 1}, 0.5, Options{StartAngle: StartTop})
	if err != nil {
		t.Fatal(err)
	}
	if res.MidAngles != nil {
		t.Error("mid-angles must only be computed on the final pass")
	}
	if math.Abs(res.EndAngle-(StartTop+math.Pi)) > tol {
		t.Errorf("end angle at half progress = %v, want start+π", res.EndAngle)
	}

	zero, err := Compute([]float64{1, 1}, 0, Options{StartAngle: StartTop})
	if err != nil {
		t.Fatal(err)
	}
	for k, a := range zero.Arcs {
		if !a.Degenerate() {
			t.Errorf("slice %d not degenerate at progress 0", k)
		}
	}

	over, _ := Compute([]float64{1}, 3, DefaultOptions())
	if over.Arcs[0].Ratio != 1 {
		t.Errorf("progress not clamped: ratio %v", over.Arcs[0].Ratio)
	}
}

func TestMidAngles(t *testing.T) {
	res, err := Compute([]float64{1, 1, 1, 1}, 1, Options{StartAngle: StartRight, Final: true})
	if err != nil {
		t.Fatal(err)
	}
	for k, got := range res.MidAngles {
		want := math.Pi/4 + float64(k)*math.Pi/2
		if math.Abs(got-want) > tol {
			t.Errorf("mid-angle %d = %v, want %v", k, got, want)
		}
	}

	// A label whose mid-angle is exactly 0 is still placed.
	res, _ = Compute([]float64{1, 1}, 1, Options{StartAngle: -math.Pi / 2, Final: true})
	if res.MidAngles[0] != 0 {
		t.Fatalf("mid-angle 0 = %v, want 0", res.MidAngles[0])
	}
}

func TestStartRightBeginsAtPointOneZero(t *testing.T) {
	res, err := Compute([]float64{2, 1}, 1, Options{StartAngle: StartRight})
	if err != nil {
		t.Fatal(err)
	}
	if res.Guides[0] != geom.Pt(1, 0) {
		t.Errorf("legacy start = %v, want (1, 0)", res.Guides[0])
	}
}

func TestComputeIsPure(t *testing.T) {
	m := []float64{3.5, 1, 0, 8, 2.25}
	a, err := Compute(m, 0.731, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Compute(m, 0.731, DefaultOptions())

	pa, pb := a.Paths(), b.Paths()
	for k := range pa {
		if pa[k] != pb[k] {
			t.Errorf("path %d differs between calls: %q vs %q", k, pa[k], pb[k])
		}
		if geom.FormatPoint(a.Guides[k]) != geom.FormatPoint(b.Guides[k]) {
			t.Errorf("guide %d differs between calls", k)
		}
		if a.MidAngles[k] != b.MidAngles[k] {
			t.Errorf("mid-angle %d differs between calls", k)
		}
	}
}

func TestColorAt(t *testing.T) {
	if got := ColorAt(DefaultPalette, 6); got != DefaultPalette[0] {
		t.Errorf("ColorAt(6) = %s, want %s", got, DefaultPalette[0])
	}
	for k := 0; k < 6; k++ {
		if got := ColorAt(DefaultPalette, k); got != DefaultPalette[k] {
			t.Errorf("ColorAt(%d) = %s, want %s", k, got, DefaultPalette[k])
		}
	}
	for k := 0; k < 50; k++ {
		if ColorAt(DefaultPalette, k) == DefaultPalette[6] {
			t.Fatalf("ColorAt(%d) used the reserved color", k)
		}
	}
	if got := ColorAt([]string{"#000"}, 3); got != "#000" {
		t.Errorf("single-entry palette = %s", got)
	}
	if got := ColorAt(nil, 3); got != "" {
		t.Errorf("empty palette = %q", got)
	}
}
