// Package attrs parses the string-keyed configuration of a chart component.
package attrs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Faneva385/svg-initiation/internal/anim"
	"github.com/Faneva385/svg-initiation/internal/layout"
)

// Attribute keys.
const (
	KeyData     = "data"
	KeyLabels   = "labels"
	KeyDonut    = "donut"
	KeyGap      = "gap"
	KeyStart    = "start"
	KeyAnimate  = "animate"
	KeyDuration = "duration"
	KeyEasing   = "easing"
)

// Keys lists every attribute a chart understands, in documentation order.
var Keys = []string{KeyData, KeyLabels, KeyDonut, KeyGap, KeyStart, KeyAnimate, KeyDuration, KeyEasing}

// Separator splits list attributes.
const Separator = ";"

// DefaultGap is the stroke width of the separator lines, in viewBox units.
const DefaultGap = 0.015

var (
	ErrMissingData      = errors.New("missing required attribute \"data\"")
	ErrInvalidMagnitude = errors.New("invalid magnitude")
	ErrInvalidAttribute = errors.New("invalid attribute")
)

// Attributes is the parsed, validated chart configuration.
type Attributes struct {
	Data   []float64
	Labels []string
	// Donut is the hole radius as a fraction of the outer radius.
	Donut float64
	// Gap is the stroke width of the radial separators.
	Gap        float64
	StartAngle float64
	Animate    bool
	Duration   time.Duration
	Easing     anim.Easing
}

// Defaults returns the attributes applied when a key is absent.
func Defaults() Attributes {
	return Attributes{
		Gap:        DefaultGap,
		StartAngle: layout.StartTop,
		Animate:    true,
		Duration:   anim.DefaultDuration,
		Easing:     anim.DefaultEasing,
	}
}

// Label returns the label of slice k, or "" when it has none.
func (a Attributes) Label(k int) string {
	if k < 0 || k >= len(a.Labels) {
		return ""
	}
	return a.Labels[k]
}

// IsDonut reports whether the chart has a hole.
func (a Attributes) IsDonut() bool {
	return a.Donut > 0
}

// Parse validates raw attributes. Unknown keys are ignored.
func Parse(raw map[string]string) (Attributes, error) {
	a := Defaults()

	data, ok := raw[KeyData]
	if !ok || strings.TrimSpace(data) == "" {
		return Attributes{}, ErrMissingData
	}
	values, err := ParseMagnitudes(data)
	if err != nil {
		return Attributes{}, err
	}
	a.Data = values

	if v, ok := raw[KeyLabels]; ok && v != "" {
		a.Labels = strings.Split(v, Separator)
		for i := range a.Labels {
			a.Labels[i] = strings.TrimSpace(a.Labels[i])
		}
	}

	if v, ok := raw[KeyDonut]; ok && strings.TrimSpace(v) != "" {
		f, err := parseFinite(v)
		if err != nil || f < 0 || f >= 1 {
			return Attributes{}, fmt.Errorf("%w %s=%q: want a fraction in [0, 1)", ErrInvalidAttribute, KeyDonut, v)
		}
		a.Donut = f
	}

	if v, ok := raw[KeyGap]; ok && strings.TrimSpace(v) != "" {
		f, err := parseFinite(v)
		if err != nil || f < 0 {
			return Attributes{}, fmt.Errorf("%w %s=%q: want a non-negative number", ErrInvalidAttribute, KeyGap, v)
		}
		a.Gap = f
	}

	if v, ok := raw[KeyStart]; ok && strings.TrimSpace(v) != "" {
		angle, err := ParseStart(v)
		if err != nil {
			return Attributes{}, err
		}
		a.StartAngle = angle
	}

	if v, ok := raw[KeyAnimate]; ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Attributes{}, fmt.Errorf("%w %s=%q: %v", ErrInvalidAttribute, KeyAnimate, v, err)
		}
		a.Animate = b
	}

	if v, ok := raw[KeyDuration]; ok && strings.TrimSpace(v) != "" {
		d, err := parseDuration(v)
		if err != nil {
			return Attributes{}, fmt.Errorf("%w %s=%q: %v", ErrInvalidAttribute, KeyDuration, v, err)
		}
		a.Duration = d
	}

	if v, ok := raw[KeyEasing]; ok {
		e, err := anim.ParseEasing(strings.TrimSpace(v))
		if err != nil {
			return Attributes{}, fmt.Errorf("%w %s: %v", ErrInvalidAttribute, KeyEasing, err)
		}
		a.Easing = e
	}

	return a, nil
}

// ParseMagnitudes parses a ";"-separated list of non-negative decimals.
// A single trailing separator is tolerated. Positions in errors are 1-based.
func ParseMagnitudes(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, Separator)
	if s == "" {
		return nil, ErrMissingData
	}

	tokens := strings.Split(s, Separator)
	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := parseFinite(tok)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w at position %d: %q", ErrInvalidMagnitude, i+1, strings.TrimSpace(tok))
		}
		values[i] = v
	}
	return values, nil
}

// ParseStart accepts "top", "right" or an angle in radians.
func ParseStart(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return layout.StartTop, nil
	case "right":
		return layout.StartRight, nil
	}
	f, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("%w %s=%q: want top, right or radians", ErrInvalidAttribute, KeyStart, s)
	}
	return f, nil
}

// FormatMagnitudes is the inverse of ParseMagnitudes.
func FormatMagnitudes(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, Separator)
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

// parseDuration accepts Go durations ("750ms") or bare milliseconds ("750").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return 0, errors.New("must be positive")
		}
		return d, nil
	}
	ms, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	if ms <= 0 {
		return 0, errors.New("must be positive")
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}
