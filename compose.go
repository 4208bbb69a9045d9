package gesturekit

// GestureParameters is a live snapshot of the three transform gestures on one
// entity. Each field is written by exactly one recognizer: Translation by pan,
// Scale by pinch, Rotation (radians) by rotate.
type GestureParameters struct {
	Scale       float64
	Rotation    float64
	Translation Vec2
}

// NeutralParameters composes to the rest transform unchanged.
var NeutralParameters = GestureParameters{Scale: 1}

// Compose combines a rest transform with live gesture values. The result is
//
//	rest · Translate(translation) · Scale(scale, scale) · Rotate(rotation)
//
// so the translation is expressed in the pre-scale space (panning distance is
// not amplified by a concurrent pinch) and rotation happens about the composed
// origin. The order is fixed; reordering changes on-screen behavior.
//
// Compose is total: a zero scale collapses the entity to a single point.
func Compose(rest Transform, scale, rotation float64, translation Vec2) Transform {
	return rest.
		Translated(translation.X, translation.Y).
		Scaled(scale, scale).
		Rotated(rotation)
}

// ComposeParams is Compose over a GestureParameters snapshot.
func ComposeParams(rest Transform, p GestureParameters) Transform {
	return Compose(rest, p.Scale, p.Rotation, p.Translation)
}
