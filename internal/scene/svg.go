package scene

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/Faneva385/svg-initiation/internal/geom"
)

// DefaultSize is the pixel width and height of standalone SVG output.
const DefaultSize = 400

// WriteSVG renders the scene as a standalone SVG document of size×size
// pixels over the unit viewBox.
func WriteSVG(w io.Writer, s *Scene, size int) error {
	if s == nil {
		return fmt.Errorf("write svg: nil scene")
	}
	if size <= 0 {
		size = DefaultSize
	}

	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	canvas.Startview(size, size, int(ViewBox.X), int(ViewBox.Y), int(ViewBox.Width), int(ViewBox.Height))
	canvas.Gid(s.ID)
	canvas.Style("text/css", styleLines(s.StyleSheet)...)

	slicesAttrs := []string{`class="slices"`}
	if s.Mask != nil {
		writeMask(canvas, s)
		slicesAttrs = append(slicesAttrs, fmt.Sprintf(`mask="url(#%s)"`, s.Mask.ID))
	}

	canvas.Group(slicesAttrs...)
	for _, n := range s.Slices {
		class := `class="slice"`
		if n.Empty {
			class = `class="slice is-empty"`
		}
		canvas.Path(n.Path,
			fmt.Sprintf(`id="%s"`, n.ID),
			class,
			fmt.Sprintf(`fill="%s"`, n.Fill),
			fmt.Sprintf(`data-index="%d"`, n.Index),
		)
	}
	canvas.Gend()

	if s.Final && len(s.Labels) > 0 {
		canvas.Group(`class="labels"`)
		for _, l := range s.Labels {
			if !l.Placed {
				continue
			}
			class := `class="label"`
			if l.Active {
				class = `class="label is-active"`
			}
			canvas.Gtransform(fmt.Sprintf("translate(%s)", geom.FormatPoint(l.Position.Scale(labelRadius))))
			canvas.Text(0, 0, l.Text,
				fmt.Sprintf(`id="%s"`, l.ID),
				class,
				fmt.Sprintf(`data-index="%d"`, l.Index),
			)
			canvas.Gend()
		}
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	return cw.err
}

// styleLines splits a style sheet for svgo, which writes a lone argument
// that looks like a link ("#id ...") as an xlink:href instead of CDATA.
func styleLines(sheet string) []string {
	lines := strings.Split(sheet, "\n")
	if len(lines) == 1 {
		lines = append(lines, "")
	}
	return lines
}

// labelRadius pulls labels inside the viewBox so that text on the outer
// edge is not clipped.
const labelRadius = 0.85

func writeMask(canvas *svg.SVG, s *Scene) {
	canvas.Def()
	canvas.Mask(s.Mask.ID, int(ViewBox.X), int(ViewBox.Y), int(ViewBox.Width), int(ViewBox.Height))
	canvas.Rect(int(ViewBox.X), int(ViewBox.Y), int(ViewBox.Width), int(ViewBox.Height), `fill="white"`)
	canvas.Gtransform(fmt.Sprintf("scale(%s)", geom.FormatNumber(s.Mask.HoleRadius)))
	canvas.Circle(0, 0, 1, `fill="black"`)
	canvas.Gend()
	for _, g := range s.Guides {
		canvas.Path(g.Path(),
			fmt.Sprintf(`id="%s"`, g.ID),
			`class="guide"`,
			`stroke="black"`,
			fmt.Sprintf(`stroke-width="%s"`, geom.FormatNumber(g.StrokeWidth)),
		)
	}
	canvas.MaskEnd()
	canvas.DefEnd()
}

// countingWriter keeps the first write error, since svgo does not
// report them.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil {
		c.err = err
	}
	return n, err
}
