package gesturekit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SpringTween animates a transform toward a target with a damped spring.
// It holds both endpoints by value and never writes to an entity; the owner
// polls Update each frame and applies the result. Call Update(dt) each frame
// until Done.
type SpringTween struct {
	from, to Transform
	progress *gween.Tween
	Done     bool
}

// NewSpringTween creates a spring from the from transform to the to transform.
// A non-positive duration produces a tween that finishes on its first update.
func NewSpringTween(from, to Transform, cfg SpringConfig) *SpringTween {
	return &SpringTween{
		from:     from,
		to:       to,
		progress: gween.New(0, 1, cfg.Duration, SpringEase(cfg.Damping, cfg.Velocity)),
	}
}

// Target returns the transform the spring settles on.
func (s *SpringTween) Target() Transform {
	return s.to
}

// Update advances the spring by dt seconds and returns the transform for this
// frame. Once finished it returns the target exactly.
func (s *SpringTween) Update(dt float32) Transform {
	if s.Done {
		return s.to
	}
	p, finished := s.progress.Update(dt)
	if finished {
		s.Done = true
		return s.to
	}
	return interpolateToward(s.from, s.to, float64(p))
}

// FlashConfig parameterizes the tap color flash.
type FlashConfig struct {
	Color    Color   `koanf:"color"`
	Duration float32 `koanf:"duration"`
}

// DefaultFlash flashes blue over one second.
var DefaultFlash = FlashConfig{Color: ColorBlue, Duration: 1.0}

// ColorFlash is a two-keyframe crossfade: base to flash color over the first
// half of the duration, then back to base over the second half.
type ColorFlash struct {
	base, flash Color
	keyframes   [2]*gween.Tween
	index       int
	Done        bool
}

// NewColorFlash creates a flash that starts and ends on base.
func NewColorFlash(base Color, cfg FlashConfig) *ColorFlash {
	half := cfg.Duration / 2
	return &ColorFlash{
		base:  base,
		flash: cfg.Color,
		keyframes: [2]*gween.Tween{
			gween.New(0, 1, half, ease.Linear),
			gween.New(1, 0, half, ease.Linear),
		},
	}
}

// Update advances the flash by dt seconds and returns the color for this
// frame.
func (f *ColorFlash) Update(dt float32) Color {
	if f.Done {
		return f.base
	}
	for {
		kf := f.keyframes[f.index]
		v, finished := kf.Update(dt)
		if !finished {
			return lerpColor(f.base, f.flash, float64(v))
		}
		if f.index == len(f.keyframes)-1 {
			f.Done = true
			return f.base
		}
		f.index++
		dt = 0
	}
}
