// Package events carries the notifications a chart emits to its host.
package events

import "encoding/json"

// Event is the envelope dispatched to listeners.
type Event struct {
	Type    string          `json:"type"`
	ChartID string          `json:"chartId,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// SectionHoveredPayload is the payload for section.hovered events.
type SectionHoveredPayload struct {
	Index int `json:"index"`
}

const (
	TypeSectionHovered = "section.hovered"
)

// NewSectionHovered builds the notification for a pointer entering slice index.
func NewSectionHovered(chartID string, index int) *Event {
	payload, _ := json.Marshal(SectionHoveredPayload{Index: index})
	return &Event{
		Type:    TypeSectionHovered,
		ChartID: chartID,
		Payload: payload,
	}
}

// SectionIndex decodes the slice index of a section.hovered event.
func (e *Event) SectionIndex() (int, bool) {
	if e == nil || e.Type != TypeSectionHovered {
		return 0, false
	}
	var p SectionHoveredPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return 0, false
	}
	return p.Index, true
}

// JSON returns the wire form of the event.
func (e *Event) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(data)
}
