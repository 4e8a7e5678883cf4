// Package export renders charts to standalone SVG files: single passes,
// full animation frame sequences and manifest batches.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Faneva385/svg-initiation/internal/anim"
	"github.com/Faneva385/svg-initiation/internal/attrs"
	"github.com/Faneva385/svg-initiation/internal/chart"
	"github.com/Faneva385/svg-initiation/internal/scene"
)

// DefaultFPS is the frame rate of exported animations.
const DefaultFPS = 60

// Options configures an export.
type Options struct {
	// ID of the SVG root group. Generated when empty.
	ID string
	// Size is the pixel width and height of each SVG.
	Size    int
	Palette []string
	FPS     int
	// Workers bounds concurrent renders in Batch.
	Workers int
	// Progress receives a progress bar. Nothing is drawn when nil.
	Progress io.Writer
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = scene.DefaultSize
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Progress == nil {
		o.Progress = io.Discard
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// sceneSurface keeps the latest scene so it can be written once.
type sceneSurface struct {
	scene *scene.Scene
}

func (s *sceneSurface) Mount(sc *scene.Scene, _ map[int]*chart.SliceHandler) error {
	s.scene = sc
	return nil
}

func (s *sceneSurface) Update(sc *scene.Scene) error {
	s.scene = sc
	return nil
}

func (s *sceneSurface) Unmount() {}

// Render writes a chart at progress as an SVG document. Labels appear only
// at progress 1.
func Render(w io.Writer, a attrs.Attributes, progress float64, opts Options) error {
	opts = opts.withDefaults()

	a.Animate = false
	surface := &sceneSurface{}
	c, err := chart.New(a, surface, anim.NewManualScheduler(time.Time{}), chart.Options{
		ID:      opts.ID,
		Palette: opts.Palette,
		Logger:  opts.Logger,
	})
	if err != nil {
		return err
	}
	defer c.Teardown()

	if err := c.Mount(time.Time{}); err != nil {
		return err
	}
	if progress < 1 {
		if err := c.Update(progress); err != nil {
			return err
		}
	}
	return scene.WriteSVG(w, surface.scene, opts.Size)
}

// RenderFile renders a chart into path.
func RenderFile(path string, a attrs.Attributes, progress float64, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, a, progress, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// frameSurface writes every pass it receives as the next numbered frame.
type frameSurface struct {
	ctx   context.Context
	dir   string
	size  int
	paths []string
	err   error
}

func (f *frameSurface) Mount(*scene.Scene, map[int]*chart.SliceHandler) error { return nil }

func (f *frameSurface) Update(sc *scene.Scene) error {
	if f.err != nil {
		return f.err
	}
	if err := f.ctx.Err(); err != nil {
		f.err = err
		return err
	}

	path := filepath.Join(f.dir, fmt.Sprintf("frame_%04d.svg", len(f.paths)))
	var buf bytes.Buffer
	if err := scene.WriteSVG(&buf, sc, f.size); err != nil {
		f.err = err
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		f.err = fmt.Errorf("write frame: %w", err)
		return f.err
	}
	f.paths = append(f.paths, path)
	return nil
}

func (f *frameSurface) Unmount() {}

// Frames runs the entrance animation on a simulated clock at opts.FPS and
// writes each pass to dir as frame_NNNN.svg. The last frame is the settled
// chart. When a.Animate is false only that frame is written.
func Frames(ctx context.Context, a attrs.Attributes, dir string, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}

	surface := &frameSurface{ctx: ctx, dir: dir, size: opts.Size}
	sched := anim.NewManualScheduler(time.Time{})
	c, err := chart.New(a, surface, sched, chart.Options{
		ID:      opts.ID,
		Palette: opts.Palette,
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	defer c.Teardown()

	if err := c.Mount(sched.Now()); err != nil {
		return nil, err
	}

	step := time.Second / time.Duration(opts.FPS)
	expected := int(a.Duration/step) + 2
	bar := newBar(opts.Progress, expected, "frames")
	defer bar.Close()

	for sched.Pending() > 0 && surface.err == nil {
		sched.Advance(step)
		bar.Set(len(surface.paths))
	}
	if surface.err != nil {
		return surface.paths, surface.err
	}
	if c.State() != anim.StateSettled {
		return surface.paths, fmt.Errorf("animation stopped in state %s", c.State())
	}
	bar.Finish()

	opts.Logger.Info("frames exported", "dir", dir, "frames", len(surface.paths), "fps", opts.FPS)
	return surface.paths, nil
}

// sanitizeName maps a chart name onto a safe file name.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
