//go:build js && wasm

package main

import (
	"fmt"
	"strconv"
	"syscall/js"

	"github.com/Faneva385/svg-initiation/internal/chart"
	"github.com/Faneva385/svg-initiation/internal/geom"
	"github.com/Faneva385/svg-initiation/internal/scene"
)

// labelCSS styles the HTML label overlay. Labels are positioned by percent
// so they follow the host's size.
const labelCSS = `
:host { display: inline-block; position: relative; }
.piechart { position: relative; width: 100%; height: 100%; }
.piechart svg { display: block; width: 100%; height: 100%; }
.html-label { position: absolute; transform: translate(-50%, -50%); pointer-events: none; font: 12px sans-serif; opacity: .7; transition: opacity .3s; }
.html-label.is-active { opacity: 1; font-weight: bold; }
.html-label[hidden] { display: none; }
`

const svgNS = "http://www.w3.org/2000/svg"

// domSurface draws a scene into the shadow root of a host element. The
// nodes are created once from the scene graph; each pass only rewrites
// attributes.
type domSurface struct {
	host js.Value
	root js.Value

	slices map[int]js.Value
	guides map[int]js.Value
	labels map[int]js.Value

	listeners []js.Func
}

func newDOMSurface(host js.Value) *domSurface {
	return &domSurface{
		host:   host,
		slices: make(map[int]js.Value),
		guides: make(map[int]js.Value),
		labels: make(map[int]js.Value),
	}
}

func (d *domSurface) Mount(s *scene.Scene, handlers map[int]*chart.SliceHandler) error {
	root := d.host.Get("shadowRoot")
	if root.IsNull() || root.IsUndefined() {
		init := js.Global().Get("Object").New()
		init.Set("mode", "open")
		root = d.host.Call("attachShadow", init)
	}
	d.root = root
	doc := js.Global().Get("document")

	style := doc.Call("createElement", "style")
	style.Set("textContent", labelCSS+s.StyleSheet)

	container := doc.Call("createElement", "div")
	container.Set("className", "piechart")

	vb := scene.ViewBox
	svg := svgElement(doc, "svg", map[string]string{
		"viewBox": fmt.Sprintf("%s %s %s %s",
			geom.FormatNumber(vb.X), geom.FormatNumber(vb.Y), geom.FormatNumber(vb.Width), geom.FormatNumber(vb.Height)),
	})
	group := svgElement(doc, "g", map[string]string{"id": s.ID})
	svg.Call("appendChild", group)

	slices := svgElement(doc, "g", map[string]string{"class": "slices"})
	if s.Mask != nil {
		group.Call("appendChild", d.buildMask(doc, s))
		slices.Call("setAttribute", "mask", "url(#"+s.Mask.ID+")")
	}
	group.Call("appendChild", slices)

	for _, n := range s.Slices {
		el := svgElement(doc, "path", map[string]string{
			"id":         n.ID,
			"class":      "slice is-empty",
			"fill":       n.Fill,
			"data-index": strconv.Itoa(n.Index),
		})
		slices.Call("appendChild", el)
		d.slices[n.Index] = el
	}

	container.Call("appendChild", svg)
	for _, l := range s.Labels {
		el := doc.Call("createElement", "div")
		el.Set("className", "html-label")
		el.Set("id", l.ID)
		el.Set("hidden", true)
		el.Set("textContent", l.Text)
		container.Call("appendChild", el)
		d.labels[l.Index] = el
	}

	root.Set("innerHTML", "")
	root.Call("appendChild", style)
	root.Call("appendChild", container)

	for k, h := range handlers {
		el, ok := d.slices[k]
		if !ok {
			continue
		}
		enter := js.FuncOf(func(js.Value, []js.Value) interface{} { h.Enter(); return nil })
		leave := js.FuncOf(func(js.Value, []js.Value) interface{} { h.Leave(); return nil })
		el.Call("addEventListener", "pointerenter", enter)
		el.Call("addEventListener", "pointerleave", leave)
		d.listeners = append(d.listeners, enter, leave)
	}
	return nil
}

func (d *domSurface) buildMask(doc js.Value, s *scene.Scene) js.Value {
	vb := scene.ViewBox
	box := map[string]string{
		"x":      geom.FormatNumber(vb.X),
		"y":      geom.FormatNumber(vb.Y),
		"width":  geom.FormatNumber(vb.Width),
		"height": geom.FormatNumber(vb.Height),
	}

	defs := svgElement(doc, "defs", nil)
	mask := svgElement(doc, "mask", map[string]string{"id": s.Mask.ID, "maskUnits": "userSpaceOnUse"})
	for k, v := range box {
		mask.Call("setAttribute", k, v)
	}
	defs.Call("appendChild", mask)

	rect := svgElement(doc, "rect", box)
	rect.Call("setAttribute", "fill", "white")
	mask.Call("appendChild", rect)
	mask.Call("appendChild", svgElement(doc, "circle", map[string]string{
		"cx": "0", "cy": "0", "r": geom.FormatNumber(s.Mask.HoleRadius), "fill": "black",
	}))

	for _, g := range s.Guides {
		el := svgElement(doc, "path", map[string]string{
			"id":           g.ID,
			"class":        "guide",
			"stroke":       "black",
			"stroke-width": geom.FormatNumber(g.StrokeWidth),
		})
		mask.Call("appendChild", el)
		d.guides[g.Index] = el
	}
	return defs
}

func svgElement(doc js.Value, tag string, attrs map[string]string) js.Value {
	el := doc.Call("createElementNS", svgNS, tag)
	for k, v := range attrs {
		el.Call("setAttribute", k, v)
	}
	return el
}

func (d *domSurface) Update(s *scene.Scene) error {
	if d.root.IsUndefined() {
		return fmt.Errorf("surface not mounted")
	}
	for _, n := range s.Slices {
		el, ok := d.slices[n.Index]
		if !ok || el.IsNull() {
			continue
		}
		el.Call("setAttribute", "d", n.Path)
		el.Get("classList").Call("toggle", "is-empty", n.Empty)
	}
	for _, g := range s.Guides {
		if el, ok := d.guides[g.Index]; ok && !el.IsNull() {
			el.Call("setAttribute", "d", g.Path())
		}
	}
	for _, l := range s.Labels {
		el, ok := d.labels[l.Index]
		if !ok || el.IsNull() {
			continue
		}
		visible := s.Final && l.Placed
		el.Set("hidden", !visible)
		if visible {
			style := el.Get("style")
			style.Set("left", geom.FormatNumber(l.Left)+"%")
			style.Set("top", geom.FormatNumber(l.Top)+"%")
		}
		el.Get("classList").Call("toggle", "is-active", l.Active)
	}
	return nil
}

func (d *domSurface) Unmount() {
	for _, f := range d.listeners {
		f.Release()
	}
	d.listeners = nil
	if !d.root.IsUndefined() {
		d.root.Set("innerHTML", "")
	}
	d.slices = nil
	d.guides = nil
	d.labels = nil
}
