// Package chart is the pie/donut chart component: it owns the parsed
// configuration, the retained scene and the animation driver, and pushes
// every pass to an injected rendering surface.
package chart

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Faneva385/svg-initiation/internal/anim"
	"github.com/Faneva385/svg-initiation/internal/attrs"
	"github.com/Faneva385/svg-initiation/internal/events"
	"github.com/Faneva385/svg-initiation/internal/geom"
	"github.com/Faneva385/svg-initiation/internal/layout"
	"github.com/Faneva385/svg-initiation/internal/scene"
	"github.com/Faneva385/svg-initiation/internal/typeid"
)

var (
	ErrDetached       = errors.New("chart detached")
	ErrAlreadyMounted = errors.New("chart already mounted")
	ErrNotMounted     = errors.New("chart not mounted")
)

// Surface is the rendering target a chart draws into. The chart calls Mount
// once with the freshly built scene, Update after every pass and Unmount on
// teardown. A surface must not share the scene's nodes with other charts.
type Surface interface {
	Mount(s *scene.Scene, handlers map[int]*SliceHandler) error
	Update(s *scene.Scene) error
	Unmount()
}

// Options configures a Chart beyond its attributes.
type Options struct {
	// ID of the chart's root node. A chart typeid is generated when empty.
	ID      string
	Palette []string
	Logger  *slog.Logger
	// Events receives section.hovered notifications. A private registry is
	// created when nil.
	Events *events.Registry
}

// Chart is one mounted pie/donut chart.
type Chart struct {
	id      string
	attrs   attrs.Attributes
	scene   *scene.Scene
	surface Surface
	driver  *anim.Driver
	events  *events.Registry
	logger  *slog.Logger

	// handlers maps slice index to its pointer handler.
	handlers map[int]*SliceHandler
	hovered  int

	mounted  bool
	detached bool
}

// New validates a and builds the chart's scene. Nothing is drawn until Mount.
func New(a attrs.Attributes, surface Surface, sched anim.Scheduler, opts Options) (*Chart, error) {
	if surface == nil {
		return nil, errors.New("new chart: nil surface")
	}
	if sched == nil {
		return nil, errors.New("new chart: nil scheduler")
	}
	if _, err := layout.Total(a.Data); err != nil {
		return nil, fmt.Errorf("new chart: %w", err)
	}

	if opts.ID == "" {
		opts.ID = typeid.NewChartID()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Events == nil {
		opts.Events = events.NewRegistry()
	}

	c := &Chart{
		id:       opts.ID,
		attrs:    a,
		surface:  surface,
		events:   opts.Events,
		logger:   opts.Logger.With("chart", opts.ID),
		handlers: make(map[int]*SliceHandler, len(a.Data)),
		hovered:  -1,
	}

	c.scene = scene.Build(c.id, scene.Spec{
		Slices:     len(a.Data),
		Labels:     a.Labels,
		Donut:      a.Donut,
		Gap:        a.Gap,
		StartAngle: a.StartAngle,
		Palette:    opts.Palette,
	})

	for k := range a.Data {
		c.handlers[k] = &SliceHandler{Index: k, chart: c}
	}

	c.driver = anim.NewDriver(sched, c.draw, anim.Options{
		Duration: a.Duration,
		Easing:   a.Easing,
		Logger:   c.logger,
	})

	return c, nil
}

// NewFromAttributes parses raw string attributes and builds a chart.
func NewFromAttributes(raw map[string]string, surface Surface, sched anim.Scheduler, opts Options) (*Chart, error) {
	a, err := attrs.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse attributes: %w", err)
	}
	return New(a, surface, sched, opts)
}

// ID returns the chart's root node id.
func (c *Chart) ID() string { return c.id }

// Attributes returns the parsed configuration.
func (c *Chart) Attributes() attrs.Attributes { return c.attrs }

// Scene returns the retained scene graph.
func (c *Chart) Scene() *scene.Scene { return c.scene }

// Events returns the registry section.hovered notifications go to.
func (c *Chart) Events() *events.Registry { return c.events }

// State returns the animation state.
func (c *Chart) State() anim.State { return c.driver.State() }

// Handlers returns the pointer handler of every slice, keyed by index.
func (c *Chart) Handlers() map[int]*SliceHandler { return c.handlers }

// Mount builds the surface and starts the entrance animation at now, or
// draws the settled chart directly when animation is disabled.
func (c *Chart) Mount(now time.Time) error {
	if c.detached {
		return ErrDetached
	}
	if c.mounted {
		return ErrAlreadyMounted
	}
	if err := c.surface.Mount(c.scene, c.handlers); err != nil {
		return fmt.Errorf("mount surface: %w", err)
	}
	c.mounted = true

	c.logger.Info("chart mounted", "slices", len(c.attrs.Data), "donut", c.attrs.Donut, "animate", c.attrs.Animate)

	if !c.attrs.Animate {
		return c.driver.Skip()
	}
	return c.driver.Start(now)
}

// Draw re-runs the full-progress pass. It never replays the animation.
func (c *Chart) Draw() error {
	if c.detached {
		return ErrDetached
	}
	if !c.mounted {
		return ErrNotMounted
	}
	return c.driver.Redraw()
}

// Update renders a single pass at progress, bypassing the animation. A
// progress of 1 is the settled pass and places labels.
func (c *Chart) Update(progress float64) error {
	if c.detached {
		return ErrDetached
	}
	if !c.mounted {
		return ErrNotMounted
	}
	return c.draw(progress, progress >= 1)
}

// Teardown cancels any pending frame and releases the surface. The chart
// cannot be mounted again.
func (c *Chart) Teardown() {
	if c.detached {
		return
	}
	c.driver.Stop()
	if c.mounted {
		c.surface.Unmount()
	}
	c.detached = true
	c.mounted = false
	c.hovered = -1
	c.logger.Debug("chart detached")
}

func (c *Chart) draw(progress float64, final bool) error {
	if c.detached {
		return ErrDetached
	}
	res, err := layout.Compute(c.attrs.Data, progress, layout.Options{
		StartAngle: c.attrs.StartAngle,
		Final:      final,
	})
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	c.scene.Apply(res, progress)
	return c.surface.Update(c.scene)
}

// PointerEnter emits a section.hovered notification for slice k and
// emphasizes its label. It does nothing unless the chart is mounted, and out
// of range indices are ignored.
func (c *Chart) PointerEnter(k int) {
	if !c.mounted || k < 0 || k >= len(c.attrs.Data) {
		return
	}
	c.hovered = k
	if c.scene.SetActive(k, true) {
		c.flush()
	}
	c.events.Dispatch(events.NewSectionHovered(c.id, k))
}

// PointerLeave clears the emphasis of slice k's label. No notification is
// emitted.
func (c *Chart) PointerLeave(k int) {
	if !c.mounted || k < 0 || k >= len(c.attrs.Data) {
		return
	}
	if c.hovered == k {
		c.hovered = -1
	}
	if c.scene.SetActive(k, false) {
		c.flush()
	}
}

// PointerMove hit-tests p (unit space) and turns it into enter/leave
// transitions. It returns the slice under the pointer, or -1.
func (c *Chart) PointerMove(p geom.Point) int {
	if !c.mounted {
		return -1
	}
	k := c.scene.HitTest(p)
	if k == c.hovered {
		return k
	}
	if c.hovered >= 0 {
		c.PointerLeave(c.hovered)
	}
	if k >= 0 {
		c.PointerEnter(k)
	}
	return k
}

// PointerMoveInBox is PointerMove for a point in a w×h host box.
func (c *Chart) PointerMoveInBox(x, y, w, h float64) int {
	return c.PointerMove(geom.UnitToBox(w, h).Invert().Apply(geom.Pt(x, y)))
}

func (c *Chart) flush() {
	if !c.mounted {
		return
	}
	if err := c.surface.Update(c.scene); err != nil {
		c.logger.Warn("update surface", "error", err)
	}
}

// SliceHandler routes pointer events for one slice to its chart.
type SliceHandler struct {
	Index int
	chart *Chart
}

// Enter handles pointer-enter on the slice.
func (h *SliceHandler) Enter() { h.chart.PointerEnter(h.Index) }

// Leave handles pointer-leave on the slice.
func (h *SliceHandler) Leave() { h.chart.PointerLeave(h.Index) }
