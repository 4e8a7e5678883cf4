package geom

import (
	"math"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestUnitPointAtAngle(t *testing.T) {
	cases := []struct {
		angle float64
		want  Point
	}{
		{0, Pt(1, 0)},
		{math.Pi / 2, Pt(0, 1)},
		{-math.Pi / 2, Pt(0, -1)},
		{math.Pi, Pt(-1, 0)},
	}
	for _, c := range cases {
		got := UnitPointAtAngle(c.angle)
		if !near(got.X, c.want.X) || !near(got.Y, c.want.Y) {
			t.Errorf("UnitPointAtAngle(%v) = %v, want %v", c.angle, got, c.want)
		}
		if !near(got.Len(), 1) {
			t.Errorf("UnitPointAtAngle(%v) not on unit circle: len %v", c.angle, got.Len())
		}
	}
}

func TestFormatPoint(t *testing.T) {
	cases := []struct {
		p    Point
		want string
	}{
		{Pt(1, 0), "1 0"},
		{Pt(0.5, -0.25), "0.5 -0.25"},
		{Pt(-1, 1e-3), "-1 0.001"},
	}
	for _, c := range cases {
		if got := FormatPoint(c.p); got != c.want {
			t.Errorf("FormatPoint(%#v) = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestFormatPointStable(t *testing.T) {
	p := UnitPointAtAngle(1.234)
	if FormatPoint(p) != FormatPoint(UnitPointAtAngle(1.234)) {
		t.Fatal("formatting the same point twice differs")
	}
}

func TestUnitToPercent(t *testing.T) {
	m := UnitToPercent()
	cases := []struct {
		in, want Point
	}{
		{Pt(-1, -1), Pt(0, 0)},
		{Pt(0, 0), Pt(50, 50)},
		{Pt(1, 1), Pt(100, 100)},
		{Pt(0, -1), Pt(50, 0)},
	}
	for _, c := range cases {
		got := m.Apply(c.in)
		if !near(got.X, c.want.X) || !near(got.Y, c.want.Y) {
			t.Errorf("UnitToPercent(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := UnitToBox(300, 200)
	p := Pt(0.3, -0.7)
	back := m.Invert().Apply(m.Apply(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Fatalf("invert round trip = %v, want %v", back, p)
	}

	center := m.Apply(Origin)
	if center != Pt(150, 100) {
		t.Errorf("box center = %v, want (150, 100)", center)
	}
}

func TestRotate(t *testing.T) {
	got := Rotate(math.Pi / 2).Apply(Pt(1, 0))
	if !near(got.X, 0) || !near(got.Y, 1) {
		t.Errorf("Rotate(π/2)(1,0) = %v, want (0,1)", got)
	}
}
