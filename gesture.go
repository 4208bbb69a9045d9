package gesturekit

// AllowSimultaneous reports whether a gesture of kind b may be recognized on
// an entity while a gesture of kind a is already active there. Pan, pinch and
// rotate are independent axes of one transform and always coexist, including
// with a second report of their own kind. A tap is refused while a transform
// gesture is active.
func AllowSimultaneous(a, b GestureKind) bool {
	return isTransformKind(a) && isTransformKind(b)
}

func isTransformKind(k GestureKind) bool {
	return k == GesturePan || k == GesturePinch || k == GestureRotate
}

// GestureEvent describes one recognizer report on an entity.
type GestureEvent struct {
	Entity   *Entity
	EntityID uint32
	Kind     GestureKind
	Phase    Phase
	// Params is the entity's live snapshot after this report was applied.
	Params GestureParameters
	// GlobalX/GlobalY is the stage position of the report: the pointer
	// centroid for continuous gestures.
	GlobalX, GlobalY float64
}

// TapContext carries tap event data.
type TapContext struct {
	Entity   *Entity
	EntityID uint32
	UserData any
	// GlobalX/GlobalY is the tap position in stage coordinates.
	GlobalX, GlobalY float64
	// LocalX/LocalY is the tap position relative to the entity's untransformed
	// top-left corner.
	LocalX, LocalY float64
	PointerID      int
	Modifiers      KeyModifiers
}

// recognizer is the per-entity state for one gesture kind. An entity builds
// all four in NewEntity.
type recognizer struct {
	kind   GestureKind
	active bool
}

// newRecognizers wires one recognizer per kind.
func newRecognizers() [numGestureKinds]recognizer {
	var rs [numGestureKinds]recognizer
	for k := range rs {
		rs[k].kind = GestureKind(k)
	}
	return rs
}

// conflicts reports whether starting kind would violate AllowSimultaneous
// against any recognizer already active in rs.
func conflicts(rs *[numGestureKinds]recognizer, kind GestureKind) bool {
	for i := range rs {
		if rs[i].active && !AllowSimultaneous(rs[i].kind, kind) {
			return true
		}
	}
	return false
}

// withField returns live with the single field owned by kind copied from p.
func withField(live GestureParameters, kind GestureKind, p GestureParameters) GestureParameters {
	switch kind {
	case GesturePan:
		live.Translation = p.Translation
	case GesturePinch:
		live.Scale = p.Scale
	case GestureRotate:
		live.Rotation = p.Rotation
	}
	return live
}
