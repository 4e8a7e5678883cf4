package scene

import (
	"fmt"
	"strings"

	"github.com/Faneva385/svg-initiation/internal/layout"
)

// Spec describes the nodes a chart needs.
type Spec struct {
	Slices     int
	Labels     []string
	Donut      float64
	Gap        float64
	StartAngle float64
	Palette    []string
}

// Build creates the scene graph for a chart. Node ids are derived from id
// so that every chart's nodes stay distinct on a shared page.
func Build(id string, spec Spec) *Scene {
	palette := spec.Palette
	if len(palette) == 0 {
		palette = layout.DefaultPalette
	}

	s := &Scene{
		ID:         id,
		StartAngle: spec.StartAngle,
		StyleSheet: StyleSheet(id),
		NodesByID:  make(map[string]any),
	}

	for k := 0; k < spec.Slices; k++ {
		node := &SliceNode{
			ID:    nodeID(id, "slice", k),
			Index: k,
			Fill:  layout.ColorAt(palette, k),
			Empty: true,
		}
		s.Slices = append(s.Slices, node)
		s.NodesByID[node.ID] = node
	}

	if spec.Donut > 0 {
		s.Mask = &MaskNode{ID: id + "-mask", HoleRadius: spec.Donut}
		s.NodesByID[s.Mask.ID] = s.Mask

		for k := 0; k < spec.Slices; k++ {
			g := &GuideNode{
				ID:          nodeID(id, "guide", k),
				Index:       k,
				StrokeWidth: spec.Gap,
			}
			s.Guides = append(s.Guides, g)
			s.NodesByID[g.ID] = g
		}
	}

	// Labels beyond the slice count have nothing to attach to.
	for k, text := range spec.Labels {
		if k >= spec.Slices {
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		l := &LabelNode{
			ID:    nodeID(id, "label", k),
			Index: k,
			Text:  text,
		}
		s.Labels = append(s.Labels, l)
		s.NodesByID[l.ID] = l
	}

	return s
}

func nodeID(sceneID, kind string, k int) string {
	return fmt.Sprintf("%s-%s-%d", sceneID, kind, k)
}

// StyleSheet returns the rules for one chart, scoped under its root id.
func StyleSheet(id string) string {
	scope := "#" + id
	return strings.Join([]string{
		scope + " .slice { transition: opacity .3s; cursor: pointer; }",
		scope + " .slice:hover { opacity: .8; }",
		scope + " .slice.is-empty { visibility: hidden; }",
		scope + " .label { font: 0.1px sans-serif; fill: #333; text-anchor: middle; dominant-baseline: middle; transition: opacity .3s; opacity: .7; }",
		scope + " .label.is-active { opacity: 1; font-weight: bold; }",
	}, "\n")
}
