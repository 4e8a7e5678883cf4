// Package anim drives the chart's entrance sweep: easing curves, a frame
// scheduler abstraction and the Animating/Settled state machine.
package anim

import (
	"fmt"
	"math"
)

// Easing names a time-remapping curve. Every curve maps 0 to 0 and 1 to 1.
type Easing string

const (
	EasingLinear     Easing = "linear"
	EasingEaseIn     Easing = "easeIn"
	EasingEaseOut    Easing = "easeOut"
	EasingEaseInOut  Easing = "easeInOut"
	EasingCubicIn    Easing = "cubicIn"
	EasingCubicOut   Easing = "cubicOut"
	EasingCubicInOut Easing = "cubicInOut"
	EasingBackOut    Easing = "backOut"
	EasingElasticOut Easing = "elasticOut"
	EasingBounceOut  Easing = "bounceOut"
	EasingExpoOut    Easing = "expoOut"
)

// DefaultEasing is the entrance sweep curve.
const DefaultEasing = EasingExpoOut

var easings = map[Easing]bool{
	EasingLinear: true, EasingEaseIn: true, EasingEaseOut: true,
	EasingEaseInOut: true, EasingCubicIn: true, EasingCubicOut: true,
	EasingCubicInOut: true, EasingBackOut: true, EasingElasticOut: true,
	EasingBounceOut: true, EasingExpoOut: true,
}

// ParseEasing validates an easing name. The empty string selects the default.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		return DefaultEasing, nil
	}
	e := Easing(name)
	if !easings[e] {
		return "", fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}

// Ease is the asymptotic ease-out 1 - 2^(-10t). The endpoints are exact.
func Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// Apply evaluates the curve at t, clamping t to [0, 1].
func (e Easing) Apply(t float64) float64 {
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch e {
	case EasingEaseIn:
		return t * t

	case EasingEaseOut:
		return t * (2 - t)

	case EasingEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t

	case EasingCubicIn:
		return t * t * t

	case EasingCubicOut:
		t2 := 1 - t
		return 1 - t2*t2*t2

	case EasingCubicInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		t2 := -2*t + 2
		return 1 - t2*t2*t2/2

	case EasingBackOut:
		c1 := 1.70158
		c3 := c1 + 1
		t2 := t - 1
		return 1 + c3*t2*t2*t2 + c1*t2*t2

	case EasingElasticOut:
		c4 := (2 * math.Pi) / 3
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1

	case EasingBounceOut:
		return bounceOut(t)

	case EasingLinear:
		return t

	default:
		return Ease(t)
	}
}

// bounceOut implements the standard 4-segment parabolic bounce curve.
func bounceOut(t float64) float64 {
	n1 := 7.5625
	d1 := 2.75
	if t < 1/d1 {
		return n1 * t * t
	} else if t < 2/d1 {
		t -= 1.5 / d1
		return n1*t*t + 0.75
	} else if t < 2.5/d1 {
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	} else {
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
