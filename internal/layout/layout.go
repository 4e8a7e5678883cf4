// Package layout converts a sequence of magnitudes into circular sectors.
//
// Compute is a pure function of its inputs: angles accumulate additively in
// a single pass so that, at full progress, the end of the last sector lands
// back on the start of the first one.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Faneva385/svg-initiation/internal/geom"
)

var (
	ErrNoData           = errors.New("no data to chart")
	ErrInvalidMagnitude = errors.New("invalid magnitude")
)

// Start angles for the accumulator.
const (
	// StartTop begins the first sector at 12 o'clock.
	StartTop = -math.Pi / 2
	// StartRight begins the first sector at 3 o'clock, point (1, 0).
	StartRight = 0.0
)

// Options controls a layout pass.
type Options struct {
	// StartAngle is the angle of the first sector's start boundary.
	StartAngle float64
	// Final marks the settled pass; only then are mid-angles recorded.
	Final bool
}

// DefaultOptions returns the options of the settled, top-anchored pass.
func DefaultOptions() Options {
	return Options{StartAngle: StartTop, Final: true}
}

// Arc is a single sector from the center, along the unit circle from Start
// to End, and back.
type Arc struct {
	Start    geom.Point
	End      geom.Point
	LargeArc bool
	// Ratio is the progress scaled share of the full circle.
	Ratio float64
}

// fullCircle is how close to 1 a ratio must be for its sector to be drawn
// as two half arcs. Renderers drop an arc whose endpoints coincide.
const fullCircle = 1 - 1e-9

// Path returns the SVG path description of the sector.
func (a Arc) Path() string {
	var sb strings.Builder
	sb.Grow(96)
	sb.WriteString("M 0 0 L ")
	sb.WriteString(geom.FormatPoint(a.Start))
	if a.Full() {
		sb.WriteString(" A 1 1 0 0 1 ")
		sb.WriteString(geom.FormatPoint(a.Start.Scale(-1)))
		sb.WriteString(" A 1 1 0 0 1 ")
	} else if a.LargeArc {
		sb.WriteString(" A 1 1 0 1 1 ")
	} else {
		sb.WriteString(" A 1 1 0 0 1 ")
	}
	sb.WriteString(geom.FormatPoint(a.End))
	sb.WriteString(" L 0 0")
	return sb.String()
}

// Full reports whether the sector covers the whole circle.
func (a Arc) Full() bool {
	return a.Ratio >= fullCircle
}

// Degenerate reports whether the sector has no area.
func (a Arc) Degenerate() bool {
	return a.Ratio == 0
}

// Result holds the index-aligned output of a layout pass.
type Result struct {
	Arcs []Arc
	// Guides are the endpoints of the radial lines on each sector's start
	// boundary.
	Guides []geom.Point
	// MidAngles are only populated on the final pass.
	MidAngles []float64
	// EndAngle is the accumulator value after the last sector.
	EndAngle float64
	Final    bool
}

// Paths returns the path description of every arc.
func (r Result) Paths() []string {
	paths := make([]string, len(r.Arcs))
	for i, a := range r.Arcs {
		paths[i] = a.Path()
	}
	return paths
}

// Total sums the magnitudes, rejecting values that cannot be charted.
func Total(magnitudes []float64) (float64, error) {
	if len(magnitudes) == 0 {
		return 0, ErrNoData
	}

	var total float64
	for i, v := range magnitudes {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0, fmt.Errorf("magnitude %d (%v): %w", i, v, ErrInvalidMagnitude)
		}
		total += v
	}

	if total == 0 || math.IsInf(total, 0) {
		return 0, ErrNoData
	}
	return total, nil
}

// Compute lays out one sector per magnitude at the given sweep progress.
// Progress is clamped to [0, 1].
func Compute(magnitudes []float64, progress float64, opts Options) (Result, error) {
	total, err := Total(magnitudes)
	if err != nil {
		return Result{}, err
	}

	progress = clamp01(progress)

	n := len(magnitudes)
	res := Result{
		Arcs:   make([]Arc, n),
		Guides: make([]geom.Point, n),
		Final:  opts.Final,
	}
	if opts.Final {
		res.MidAngles = make([]float64, n)
	}

	angle := opts.StartAngle
	start := geom.UnitPointAtAngle(angle)

	for k, v := range magnitudes {
		ratio := v / total * progress
		res.Guides[k] = start
		if opts.Final {
			res.MidAngles[k] = angle + ratio*math.Pi
		}

		end := start
		if ratio > 0 {
			angle += ratio * 2 * math.Pi
			end = geom.UnitPointAtAngle(angle)
		}

		res.Arcs[k] = Arc{
			Start:    start,
			End:      end,
			LargeArc: ratio > 0.5,
			Ratio:    ratio,
		}
		start = end
	}

	res.EndAngle = angle
	return res, nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
