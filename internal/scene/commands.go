package scene

import (
	"encoding/json"
	"math"

	"github.com/Faneva385/svg-initiation/internal/geom"
)

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["A", rx, ry, rot, large, sweep, x, y].
type PathCommand []interface{}

// DrawCommand represents a single drawing operation for a canvas host.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "fill", "erase", "stroke-erase", "text"
	NodeID      string        `json:"nodeId,omitempty"`      // For hit correlation
	Index       *int          `json:"index,omitempty"`       // Slice index
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] unit space → box
	Path        []PathCommand `json:"path,omitempty"`        // Path data
	Fill        string        `json:"fill,omitempty"`        // Fill color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Guide width, unit space
	Radius      float64       `json:"radius,omitempty"`      // Hole radius for "erase"
	Text        string        `json:"text,omitempty"`        // Label text
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
	Active      bool          `json:"active,omitempty"`
}

// CompileDrawCommands generates a draw command buffer from a scene for a
// w×h box. Commands are in painter's order (back to front): slices, then the
// hole and gaps erased from them, then labels.
func CompileDrawCommands(s *Scene, w, h float64) []DrawCommand {
	if s == nil {
		return nil
	}

	xf := geom.UnitToBox(w, h).ToSlice()
	var commands []DrawCommand

	for _, n := range s.Slices {
		if n.Empty {
			continue
		}
		commands = append(commands, DrawCommand{
			Op:        "fill",
			NodeID:    n.ID,
			Index:     intPtr(n.Index),
			Transform: xf,
			Path:      slicePath(s.StartAngle, n),
			Fill:      n.Fill,
		})
	}

	if s.Mask != nil {
		commands = append(commands, DrawCommand{
			Op:        "erase",
			NodeID:    s.Mask.ID,
			Transform: xf,
			Radius:    s.Mask.HoleRadius,
		})
		for _, g := range s.Guides {
			if g.StrokeWidth <= 0 {
				continue
			}
			commands = append(commands, DrawCommand{
				Op:          "stroke-erase",
				NodeID:      g.ID,
				Index:       intPtr(g.Index),
				Transform:   xf,
				Path:        []PathCommand{{"M", 0.0, 0.0}, {"L", g.End.X, g.End.Y}},
				StrokeWidth: g.StrokeWidth,
			})
		}
	}

	if s.Final {
		for _, l := range s.Labels {
			if !l.Placed {
				continue
			}
			p := l.Position.Scale(labelRadius)
			commands = append(commands, DrawCommand{
				Op:        "text",
				NodeID:    l.ID,
				Index:     intPtr(l.Index),
				Transform: xf,
				Text:      l.Text,
				X:         p.X,
				Y:         p.Y,
				Active:    l.Active,
			})
		}
	}

	return commands
}

// slicePath rebuilds the sector from the node's angles so canvas hosts get
// numbers rather than a path string to parse.
func slicePath(start float64, n *SliceNode) []PathCommand {
	from := geom.UnitPointAtAngle(start + n.Offset)
	to := geom.UnitPointAtAngle(start + n.Offset + n.Sweep)
	path := []PathCommand{
		{"M", 0.0, 0.0},
		{"L", from.X, from.Y},
	}
	switch {
	case n.Sweep >= 2*math.Pi*fullSweep:
		// Endpoints coincide; go through the opposite point.
		mid := from.Scale(-1)
		path = append(path,
			PathCommand{"A", 1.0, 1.0, 0.0, 0.0, 1.0, mid.X, mid.Y},
			PathCommand{"A", 1.0, 1.0, 0.0, 0.0, 1.0, to.X, to.Y})
	case n.Sweep > math.Pi:
		path = append(path, PathCommand{"A", 1.0, 1.0, 0.0, 1.0, 1.0, to.X, to.Y})
	default:
		path = append(path, PathCommand{"A", 1.0, 1.0, 0.0, 0.0, 1.0, to.X, to.Y})
	}
	return append(path, PathCommand{"L", 0.0, 0.0})
}

// fullSweep matches the layout's threshold for a whole-circle sector.
const fullSweep = 1 - 1e-9

func intPtr(v int) *int {
	return &v
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
