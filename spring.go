package gesturekit

import (
	"math"

	"github.com/tanema/gween/ease"
)

// SpringConfig parameterizes the spring-back animation.
type SpringConfig struct {
	// Damping is the damping ratio. Below 1 the spring overshoots.
	Damping float64 `koanf:"damping"`
	// Velocity is the initial velocity in units of the total distance per
	// second.
	Velocity float64 `koanf:"velocity"`
	// Duration is the settling time in seconds.
	Duration float32 `koanf:"duration"`
}

// DefaultSpring matches a lightly underdamped return: 0.5 s, damping 0.75,
// initial velocity 1.
var DefaultSpring = SpringConfig{Damping: 0.75, Velocity: 1, Duration: 0.5}

// springSettle is the fraction of the envelope left at the end of the
// duration. The natural frequency is derived from it.
const springSettle = 1e-3

// SpringEase returns a gween easing function for a damped harmonic oscillator
// that starts at b with the given initial velocity and settles on b+c by d.
// The value at t >= d is exactly b+c.
func SpringEase(damping, velocity float64) ease.TweenFunc {
	if damping <= 0 {
		damping = DefaultSpring.Damping
	}
	return func(t, b, c, d float32) float32 {
		if d <= 0 || t >= d {
			return b + c
		}
		if t <= 0 {
			return b
		}
		x := springProgress(float64(t), float64(d), damping, velocity)
		return b + c*float32(x)
	}
}

// springProgress returns the normalized position (0 at rest start, 1 at the
// target) of a unit spring at time t. omega is chosen so that the slowest
// decaying term reaches springSettle at duration.
func springProgress(t, duration, zeta, v0 float64) float64 {
	rate := zeta
	if zeta > 1 {
		rate = zeta - math.Sqrt(zeta*zeta-1)
	}
	omega := -math.Log(springSettle) / (rate * duration)
	switch {
	case zeta < 1:
		wd := omega * math.Sqrt(1-zeta*zeta)
		k := (zeta*omega - v0) / wd
		sin, cos := math.Sincos(wd * t)
		return 1 - math.Exp(-zeta*omega*t)*(cos+k*sin)
	case zeta == 1:
		return 1 - math.Exp(-omega*t)*(1+(omega-v0)*t)
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -omega * (zeta - root)
		r2 := -omega * (zeta + root)
		c1 := (-v0 - r2) / (r1 - r2)
		c2 := 1 - c1
		return 1 - (c1*math.Exp(r1*t) + c2*math.Exp(r2*t))
	}
}
