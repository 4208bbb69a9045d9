package gesturekit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Transform is an immutable 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Methods never modify the receiver; they return a new value.
type Transform [6]float64

// Identity is the neutral transform.
var Identity = Transform{1, 0, 0, 1, 0, 0}

// singularEpsilon bounds the determinant below which a matrix is treated as
// non-invertible.
const singularEpsilon = 1e-12

// Translation returns a pure translation matrix.
func Translation(x, y float64) Transform {
	return Transform{1, 0, 0, 1, x, y}
}

// Scaling returns a pure scale matrix.
func Scaling(sx, sy float64) Transform {
	return Transform{sx, 0, 0, sy, 0, 0}
}

// Rotation returns a pure rotation matrix for r radians.
func Rotation(r float64) Transform {
	sin, cos := math.Sincos(r)
	return Transform{cos, sin, -sin, cos, 0, 0}
}

// Concat returns m * o: points are transformed by o first, then by m.
func (m Transform) Concat(o Transform) Transform {
	return Transform{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Translated returns m * Translation(x, y). The offset is expressed in m's
// local coordinate space.
func (m Transform) Translated(x, y float64) Transform {
	return m.Concat(Translation(x, y))
}

// Scaled returns m * Scaling(sx, sy).
func (m Transform) Scaled(sx, sy float64) Transform {
	return m.Concat(Scaling(sx, sy))
}

// Rotated returns m * Rotation(r).
func (m Transform) Rotated(r float64) Transform {
	return m.Concat(Rotation(r))
}

// Determinant returns ad - cb.
func (m Transform) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Invertible reports whether the determinant is safely away from zero.
func (m Transform) Invertible() bool {
	det := m.Determinant()
	return det <= -singularEpsilon || det >= singularEpsilon
}

// Invert returns the inverse of m.
// Returns Identity if the matrix is singular (determinant ≈ 0).
func (m Transform) Invert() Transform {
	if !m.Invertible() {
		return Identity
	}
	invDet := 1.0 / m.Determinant()
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply maps the point (x, y) through m.
func (m Transform) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (m Transform) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every component of m is within eps of o.
func (m Transform) ApproxEqual(o Transform, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// GeoM converts m into an ebiten.GeoM for DrawImage.
func (m Transform) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// similarity is a transform restricted to translation, uniform scale and
// rotation. Every delta produced by Compose has this form.
type similarity struct {
	tx, ty   float64
	scale    float64
	rotation float64
}

// decompose extracts a similarity from m, ignoring any skew or non-uniform
// component.
func decompose(m Transform) similarity {
	return similarity{
		tx:       m[4],
		ty:       m[5],
		scale:    math.Hypot(m[0], m[1]),
		rotation: math.Atan2(m[1], m[0]),
	}
}

func (s similarity) transform() Transform {
	sin, cos := math.Sincos(s.rotation)
	return Transform{
		s.scale * cos, s.scale * sin,
		-s.scale * sin, s.scale * cos,
		s.tx, s.ty,
	}
}

// lerpComponents interpolates each matrix element independently.
func lerpComponents(from, to Transform, t float64) Transform {
	var out Transform
	for i := range out {
		out[i] = from[i] + (to[i]-from[i])*t
	}
	return out
}

// interpolateToward moves from toward to by progress t (0 = from, 1 = to) in
// to's local frame: the residual to⁻¹·from is decomposed, shrunk toward the
// identity, and recomposed on top of to. Rotation takes the shortest arc.
// Values of t outside [0, 1] extrapolate.
func interpolateToward(from, to Transform, t float64) Transform {
	if !to.Invertible() {
		return lerpComponents(from, to, t)
	}
	delta := decompose(to.Invert().Concat(from))
	k := 1 - t
	step := similarity{
		tx:       delta.tx * k,
		ty:       delta.ty * k,
		scale:    1 + (delta.scale-1)*k,
		rotation: delta.rotation * k,
	}
	return to.Concat(step.transform())
}
