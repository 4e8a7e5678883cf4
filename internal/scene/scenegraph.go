// Package scene holds the chart's retained scene graph and the writers that
// turn it into SVG markup or a draw command buffer.
package scene

import (
	"math"

	"github.com/Faneva385/svg-initiation/internal/geom"
	"github.com/Faneva385/svg-initiation/internal/layout"
)

// ViewBox is the unit square every node lives in.
var ViewBox = Rect{X: -1, Y: -1, Width: 2, Height: 2}

// Scene is the render-ready state of one chart. It persists between frames;
// each layout pass only rewrites node attributes.
type Scene struct {
	ID         string
	StartAngle float64
	StyleSheet string

	Slices []*SliceNode
	// Guides and Mask are only present for donut charts.
	Guides []*GuideNode
	Mask   *MaskNode
	Labels []*LabelNode

	NodesByID map[string]any

	// Progress of the last applied pass.
	Progress float64
	Final    bool
}

// SliceNode is one filled sector.
type SliceNode struct {
	ID    string
	Index int
	Fill  string
	Path  string
	// Offset and Sweep are the sector's angular position relative to the
	// scene's start angle, as of the last pass.
	Offset float64
	Sweep  float64
	Empty  bool
}

// GuideNode is a radial line from the center to a slice's start boundary.
// It is drawn into the mask to cut a gap between adjacent sectors.
type GuideNode struct {
	ID          string
	Index       int
	End         geom.Point
	StrokeWidth float64
}

// Path returns the guide as a path description.
func (g *GuideNode) Path() string {
	return "M 0 0 L " + geom.FormatPoint(g.End)
}

// MaskNode hides the donut hole and the gaps along the guides.
type MaskNode struct {
	ID string
	// HoleRadius is the inner radius as a fraction of the outer one.
	HoleRadius float64
}

// LabelNode is a text label anchored to a slice's mid-angle.
type LabelNode struct {
	ID    string
	Index int
	Text  string
	// Position is in unit space; Left and Top are percentages of the host box.
	Position geom.Point
	Left     float64
	Top      float64
	Placed   bool
	Active   bool
}

// Rect represents an axis-aligned box.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Apply copies a layout pass into the nodes. Labels are placed only by the
// final pass.
func (s *Scene) Apply(res layout.Result, progress float64) {
	var offset float64
	for k, arc := range res.Arcs {
		if k >= len(s.Slices) {
			break
		}
		sweep := arc.Ratio * 2 * math.Pi
		node := s.Slices[k]
		node.Path = arc.Path()
		node.Offset = offset
		node.Sweep = sweep
		node.Empty = arc.Degenerate()
		offset += sweep
	}

	for k, g := range s.Guides {
		if k < len(res.Guides) {
			g.End = res.Guides[k]
		}
	}

	if !res.Final {
		// Labels show only after a final pass; a later partial pass hides
		// them again on every surface.
		for _, l := range s.Labels {
			l.Placed = false
		}
	}

	if res.Final {
		toPercent := geom.UnitToPercent()
		for _, l := range s.Labels {
			if l.Index >= len(res.MidAngles) {
				continue
			}
			l.Position = geom.UnitPointAtAngle(res.MidAngles[l.Index])
			pct := toPercent.Apply(l.Position)
			l.Left, l.Top = pct.X, pct.Y
			l.Placed = true
		}
	}

	s.Progress = progress
	s.Final = res.Final
}

// Label returns the label of slice k, if it has one.
func (s *Scene) Label(k int) (*LabelNode, bool) {
	for _, l := range s.Labels {
		if l.Index == k {
			return l, true
		}
	}
	return nil, false
}

// SetActive toggles the emphasis of slice k's label. It reports whether
// the emphasis changed.
func (s *Scene) SetActive(k int, active bool) bool {
	l, ok := s.Label(k)
	if !ok || l.Active == active {
		return false
	}
	l.Active = active
	return true
}

// HitTest returns the index of the slice under p (unit space), or -1.
// Points in the donut hole or outside the circle hit nothing.
func (s *Scene) HitTest(p geom.Point) int {
	r := p.Len()
	if r > 1 {
		return -1
	}
	if s.Mask != nil && r < s.Mask.HoleRadius {
		return -1
	}

	// Measure the angle from the chart's start boundary.
	rel := geom.Rotate(-s.StartAngle).Apply(p).Angle()
	if rel < 0 {
		rel += 2 * math.Pi
	}
	for _, n := range s.Slices {
		if n.Empty {
			continue
		}
		if rel >= n.Offset && rel < n.Offset+n.Sweep {
			return n.Index
		}
	}
	return -1
}
