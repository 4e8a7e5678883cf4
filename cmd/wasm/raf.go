//go:build js && wasm

package main

import (
	"syscall/js"
	"time"

	"github.com/Faneva385/svg-initiation/internal/anim"
)

// rafScheduler maps frame requests onto window.requestAnimationFrame.
type rafScheduler struct {
	window js.Value
}

func newRAFScheduler() *rafScheduler {
	return &rafScheduler{window: js.Global()}
}

func (r *rafScheduler) RequestFrame(fn anim.FrameFunc) anim.CancelFunc {
	var cb js.Func
	done := false
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		done = true
		cb.Release()
		fn(time.Now())
		return nil
	})
	id := r.window.Call("requestAnimationFrame", cb)

	return func() {
		if done {
			return
		}
		done = true
		r.window.Call("cancelAnimationFrame", id)
		cb.Release()
	}
}
