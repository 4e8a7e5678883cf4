//go:build js && wasm

// Command wasm exposes the chart component to a browser page as the global
// pieChart object.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"syscall/js"
	"time"

	"github.com/Faneva385/svg-initiation/internal/attrs"
	"github.com/Faneva385/svg-initiation/internal/chart"
	"github.com/Faneva385/svg-initiation/internal/events"
	"github.com/Faneva385/svg-initiation/internal/scene"
)

// HoverEventName is the DOM event dispatched on the host element.
const HoverEventName = "sectionhover"

var (
	sched  = newRAFScheduler()
	charts = make(map[string]*mounted)
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	api := js.Global().Get("Object").New()
	api.Set("mount", js.FuncOf(mount))
	api.Set("attributes", js.FuncOf(attributeNames))

	js.Global().Set("pieChart", api)
	js.Global().Set("pieChartWasmReady", js.ValueOf(true))

	select {}
}

func errorValue(err error) js.Value {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func attributeNames(this js.Value, args []js.Value) interface{} {
	names := make([]interface{}, len(attrs.Keys))
	for i, k := range attrs.Keys {
		names[i] = k
	}
	return js.ValueOf(names)
}

// readAttributes collects the chart attributes from the element, then lets
// an optional plain object override them.
func readAttributes(el js.Value, overrides js.Value) map[string]string {
	raw := make(map[string]string)
	for _, key := range attrs.Keys {
		if v := el.Call("getAttribute", key); v.Type() == js.TypeString {
			raw[key] = v.String()
		}
		if overrides.Type() != js.TypeObject {
			continue
		}
		v := overrides.Get(key)
		switch v.Type() {
		case js.TypeString:
			raw[key] = v.String()
		case js.TypeNumber, js.TypeBoolean:
			raw[key] = fmt.Sprint(v)
		}
	}
	return raw
}

// mount(element, attrs?) builds a chart inside element's shadow root and
// returns its handle.
func mount(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return js.ValueOf(map[string]interface{}{"error": "missing host element"})
	}
	el := args[0]
	overrides := js.Undefined()
	if len(args) > 1 {
		overrides = args[1]
	}

	surface := newDOMSurface(el)
	c, err := chart.NewFromAttributes(readAttributes(el, overrides), surface, sched, chart.Options{})
	if err != nil {
		slog.Error("create chart", "error", err)
		return errorValue(err)
	}

	m := &mounted{chart: c, host: el, surface: surface}
	m.hoverListener = c.Events().Subscribe(m.dispatchHover)

	if err := c.Mount(time.Now()); err != nil {
		c.Teardown()
		return errorValue(err)
	}
	charts[c.ID()] = m
	return m.handle()
}

// mounted is a chart attached to a host element.
type mounted struct {
	chart         *chart.Chart
	host          js.Value
	surface       *domSurface
	hoverListener string
	funcs         []js.Func
}

func (m *mounted) dispatchHover(ev *events.Event) {
	k, ok := ev.SectionIndex()
	if !ok {
		return
	}
	init := js.Global().Get("Object").New()
	init.Set("detail", js.ValueOf(map[string]interface{}{"index": k, "chartId": ev.ChartID}))
	init.Set("bubbles", true)
	init.Set("composed", true)
	m.host.Call("dispatchEvent", js.Global().Get("CustomEvent").New(HoverEventName, init))
}

func (m *mounted) fn(f func(args []js.Value) interface{}) js.Func {
	jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} { return f(args) })
	m.funcs = append(m.funcs, jf)
	return jf
}

func (m *mounted) handle() js.Value {
	h := js.Global().Get("Object").New()
	h.Set("id", m.chart.ID())

	h.Set("draw", m.fn(func(args []js.Value) interface{} {
		if err := m.chart.Draw(); err != nil {
			return errorValue(err)
		}
		return js.ValueOf(map[string]interface{}{"ok": true})
	}))

	h.Set("state", m.fn(func(args []js.Value) interface{} {
		return m.chart.State().String()
	}))

	// on(fn) subscribes fn to section hover notifications and returns an
	// unsubscribe function.
	h.Set("on", m.fn(func(args []js.Value) interface{} {
		if len(args) < 1 || args[0].Type() != js.TypeFunction {
			return js.ValueOf(map[string]interface{}{"error": "missing listener"})
		}
		cb := args[0]
		id := m.chart.Events().Subscribe(func(ev *events.Event) {
			if k, ok := ev.SectionIndex(); ok {
				cb.Invoke(k)
			}
		})
		return m.fn(func([]js.Value) interface{} {
			return m.chart.Events().Unsubscribe(id)
		})
	}))

	// hitTest(clientX, clientY) returns the slice under a viewport point
	// and updates hover state, or -1.
	h.Set("hitTest", m.fn(func(args []js.Value) interface{} {
		if len(args) < 2 {
			return -1
		}
		box := m.host.Call("getBoundingClientRect")
		x := args[0].Float() - box.Get("left").Float()
		y := args[1].Float() - box.Get("top").Float()
		return m.chart.PointerMoveInBox(x, y, box.Get("width").Float(), box.Get("height").Float())
	}))

	h.Set("drawCommands", m.fn(func(args []js.Value) interface{} {
		w, hgt := float64(scene.DefaultSize), float64(scene.DefaultSize)
		if len(args) >= 2 {
			w, hgt = args[0].Float(), args[1].Float()
		}
		out, err := scene.DrawCommandsToJSON(scene.CompileDrawCommands(m.chart.Scene(), w, hgt))
		if err != nil {
			return errorValue(err)
		}
		return out
	}))

	h.Set("teardown", m.fn(func(args []js.Value) interface{} {
		m.teardown()
		return nil
	}))

	return h
}

func (m *mounted) teardown() {
	m.chart.Events().Unsubscribe(m.hoverListener)
	m.chart.Teardown()
	delete(charts, m.chart.ID())
	for _, f := range m.funcs {
		f.Release()
	}
	m.funcs = nil
}
