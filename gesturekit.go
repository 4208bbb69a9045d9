package gesturekit

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R float64 `koanf:"r"`
	G float64 `koanf:"g"`
	B float64 `koanf:"b"`
	A float64 `koanf:"a"`
}

// Colors used by the default configuration and the tap flash.
var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorYellow = Color{1, 1, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
)

// lerpColor linearly interpolates between two colors.
func lerpColor(from, to Color, t float64) Color {
	return Color{
		R: from.R + (to.R-from.R)*t,
		G: from.G + (to.G-from.G)*t,
		B: from.B + (to.B-from.B)*t,
		A: from.A + (to.A-from.A)*t,
	}
}

// Vec2 is a 2D vector used for positions, offsets and translations.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Inset returns r shrunk by dx on the left and right and dy on the top and
// bottom. Width and height never go below zero.
func (r Rect) Inset(dx, dy float64) Rect {
	out := Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width - 2*dx, Height: r.Height - 2*dy}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// GestureKind identifies one of the four gesture recognizers an entity owns.
type GestureKind uint8

const (
	GestureTap    GestureKind = iota // discrete tap, drives the color flash
	GesturePan                       // translation of the pointer centroid
	GesturePinch                     // two-pointer (or wheel) uniform scale
	GestureRotate                    // two-pointer (or shift+wheel) rotation

	numGestureKinds
)

var gestureKindNames = [numGestureKinds]string{"tap", "pan", "pinch", "rotate"}

// String returns the lowercase name of the kind.
func (k GestureKind) String() string {
	if k < numGestureKinds {
		return gestureKindNames[k]
	}
	return "unknown"
}

// Phase is the lifecycle position of a continuous gesture.
type Phase uint8

const (
	PhaseBegan   Phase = iota // recognizer started tracking
	PhaseChanged              // parameters updated this frame
	PhaseEnded                // all contributing pointers lifted
)

var phaseNames = [...]string{"began", "changed", "ended"}

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// State is the interaction state of an Entity.
type State uint8

const (
	StateIdle        State = iota // current transform equals rest
	StateInteracting              // a transform gesture is live
	StateReturning                // springing back to rest
)

var stateNames = [...]string{"idle", "interacting", "returning"}

// String returns the lowercase name of the state.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// colorScale converts to the premultiplied scale ebiten applies at draw time.
func (c Color) colorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := float32(c.A)
	cs.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	return cs
}

// toRGBA converts to a premultiplied color.RGBA for image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
