package events

import (
	"encoding/json"
	"testing"
)

func TestSectionHoveredEnvelope(t *testing.T) {
	ev := NewSectionHovered("chart_1", 3)

	var wire map[string]any
	if err := json.Unmarshal([]byte(ev.JSON()), &wire); err != nil {
		t.Fatal(err)
	}
	if wire["type"] != TypeSectionHovered || wire["chartId"] != "chart_1" {
		t.Errorf("envelope = %v", wire)
	}
	payload, _ := wire["payload"].(map[string]any)
	if payload["index"] != 3.0 {
		t.Errorf("payload = %v", wire["payload"])
	}

	k, ok := ev.SectionIndex()
	if !ok || k != 3 {
		t.Errorf("SectionIndex() = %d, %v", k, ok)
	}
	if _, ok := (&Event{Type: "other"}).SectionIndex(); ok {
		t.Error("SectionIndex on another event type should fail")
	}
}

func TestRegistryDispatchOrder(t *testing.T) {
	r := NewRegistry()
	var got []string
	r.Subscribe(func(*Event) { got = append(got, "a") })
	id := r.Subscribe(func(*Event) { got = append(got, "b") })
	r.Subscribe(func(*Event) { got = append(got, "c") })

	if n := r.Dispatch(NewSectionHovered("", 0)); n != 3 {
		t.Errorf("Dispatch delivered to %d, want 3", n)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v", got)
	}

	if !r.Unsubscribe(id) {
		t.Fatal("Unsubscribe returned false")
	}
	if r.Unsubscribe(id) {
		t.Error("second Unsubscribe should return false")
	}
	got = nil
	r.Dispatch(NewSectionHovered("", 0))
	if len(got) != 2 || got[1] != "c" {
		t.Errorf("after unsubscribe = %v", got)
	}
}

func TestRegistryListenerMayUnsubscribe(t *testing.T) {
	r := NewRegistry()
	var id string
	calls := 0
	id = r.Subscribe(func(*Event) {
		calls++
		r.Unsubscribe(id)
	})
	r.Dispatch(NewSectionHovered("", 1))
	r.Dispatch(NewSectionHovered("", 1))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	r.Subscribe(func(*Event) {})
	r.Clear()
	if n := r.Dispatch(NewSectionHovered("", 0)); n != 0 {
		t.Errorf("Dispatch after Clear = %d", n)
	}
}
