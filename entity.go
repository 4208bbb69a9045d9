package gesturekit

import (
	"fmt"
	"math"
)

// entityIDCounter is a plain counter; gesturekit is single-threaded.
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// Entity is a transformable on-screen item. It owns a rest transform fixed at
// construction and a current transform that is either the rest transform, the
// rest transform composed with live gesture values, or a frame of a spring
// back to rest.
//
// The entity is drawn as a Width x Height quad centred on its anchor (X, Y)
// in stage coordinates. Its world matrix is Translate(X, Y) · current.
type Entity struct {
	// Identity
	ID   uint32
	Name string

	// Anchor position and size, set at construction.
	X, Y          float64
	Width, Height float64

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// HitShape overrides the default rectangle for hit testing. Coordinates
	// are local to the entity's untransformed top-left corner.
	HitShape HitShape

	// Metadata
	UserData any
	EntityID uint32

	// Per-entity callbacks (nil by default)
	OnGesture     func(GestureEvent)
	OnTap         func(TapContext)
	OnStateChange func(from, to State)

	rest    Transform
	current Transform
	live    GestureParameters
	state   State

	baseColor Color
	color     Color

	springCfg SpringConfig
	flashCfg  FlashConfig
	spring    *SpringTween
	flash     *ColorFlash

	recognizers [numGestureKinds]recognizer
	track       gestureTrack

	stage    *Stage
	disposed bool
}

// NewEntity creates an entity occupying frame in stage coordinates, anchored
// at the frame's centre, with the given rest transform. All four gesture
// recognizers are created here.
//
// Panics if rest is not finite or the frame has a negative size.
func NewEntity(name string, frame Rect, rest Transform) *Entity {
	if !rest.IsFinite() {
		panic(fmt.Sprintf("gesturekit: entity %q has a non-finite rest transform %v", name, rest))
	}
	if frame.Width < 0 || frame.Height < 0 || math.IsNaN(frame.Width) || math.IsNaN(frame.Height) {
		panic(fmt.Sprintf("gesturekit: entity %q has an invalid size %vx%v", name, frame.Width, frame.Height))
	}
	cx, cy := frame.Center()
	return &Entity{
		ID:           nextEntityID(),
		Name:         name,
		X:            cx,
		Y:            cy,
		Width:        frame.Width,
		Height:       frame.Height,
		Visible:      true,
		Interactable: true,
		rest:         rest,
		current:      rest,
		live:         NeutralParameters,
		state:        StateIdle,
		baseColor:    ColorWhite,
		color:        ColorWhite,
		springCfg:    DefaultSpring,
		flashCfg:     DefaultFlash,
		recognizers:  newRecognizers(),
	}
}

// Rest returns the rest transform. It never changes after construction.
func (e *Entity) Rest() Transform {
	return e.rest
}

// Transform returns the current transform the entity renders with.
func (e *Entity) Transform() Transform {
	return e.current
}

// WorldTransform returns Translate(X, Y) · current.
func (e *Entity) WorldTransform() Transform {
	return Translation(e.X, e.Y).Concat(e.current)
}

// Params returns the live gesture snapshot.
func (e *Entity) Params() GestureParameters {
	return e.live
}

// State returns the interaction state.
func (e *Entity) State() State {
	return e.state
}

// Color returns the color the entity is drawn with this frame.
func (e *Entity) Color() Color {
	return e.color
}

// BaseColor returns the entity's resting color.
func (e *Entity) BaseColor() Color {
	return e.baseColor
}

// SetColor sets the resting color and cancels any flash in progress.
func (e *Entity) SetColor(c Color) {
	e.baseColor = c
	e.color = c
	e.flash = nil
}

// SetSpring replaces the spring used by animated resets started afterwards.
func (e *Entity) SetSpring(cfg SpringConfig) {
	e.springCfg = cfg
}

// SetFlash replaces the flash used by taps recognized afterwards.
func (e *Entity) SetFlash(cfg FlashConfig) {
	e.flashCfg = cfg
}

// Animating reports whether a spring or flash is in flight.
func (e *Entity) Animating() bool {
	return e.spring != nil || e.flash != nil
}

// GestureActive reports whether the recognizer for kind is mid-gesture.
func (e *Entity) GestureActive(kind GestureKind) bool {
	if kind >= numGestureKinds {
		return false
	}
	return e.recognizers[kind].active
}

// ApplyGesture feeds one report from an external recognizer. Only the field
// of p owned by kind is read. Began marks the recognizer active; Changed
// updates the live value and recomposes the transform (implicitly beginning
// if needed); Ended neutralizes the value and springs back to rest.
//
// Returns false if the report was refused: the entity is disposed, kind is
// GestureTap.
func (e *Entity) ApplyGesture(kind GestureKind, phase Phase, p GestureParameters) bool {
	return e.applyGesture(kind, phase, p, e.X, e.Y)
}

func (e *Entity) applyGesture(kind GestureKind, phase Phase, p GestureParameters, gx, gy float64) bool {
	if e.disposed || !isTransformKind(kind) {
		return false
	}
	r := &e.recognizers[kind]

	switch phase {
	case PhaseBegan:
		if !r.active {
			e.begin(r)
		}
	case PhaseChanged:
		if !r.active {
			e.begin(r)
		}
		e.live = withField(e.live, kind, p)
		e.current = ComposeParams(e.rest, e.live)
		e.spring = nil
		e.setState(StateInteracting)
	case PhaseEnded:
		if !r.active {
			return false
		}
		r.active = false
		e.live = withField(e.live, kind, NeutralParameters)
	default:
		return false
	}

	e.emitGesture(GestureEvent{
		Entity: e, EntityID: e.EntityID,
		Kind: kind, Phase: phase, Params: e.live,
		GlobalX: gx, GlobalY: gy,
	})

	if phase == PhaseEnded {
		e.Reset(true)
	}
	return true
}

// begin activates r with a neutral value.
func (e *Entity) begin(r *recognizer) {
	r.active = true
	e.live = withField(e.live, r.kind, NeutralParameters)
}

func (e *Entity) emitGesture(ev GestureEvent) {
	if e.stage != nil {
		e.stage.fireGesture(ev)
	}
	if e.OnGesture != nil {
		e.OnGesture(ev)
	}
}

// Tap recognizes a tap at the given local position (relative to the
// untransformed top-left corner). It starts the color flash and fires OnTap.
// Refused while any transform gesture is active.
func (e *Entity) Tap(localX, localY float64) bool {
	gx, gy := e.LocalToWorld(localX, localY)
	return e.tap(TapContext{GlobalX: gx, GlobalY: gy, LocalX: localX, LocalY: localY})
}

func (e *Entity) tap(ctx TapContext) bool {
	if e.disposed || conflicts(&e.recognizers, GestureTap) {
		return false
	}
	ctx.Entity = e
	ctx.EntityID = e.EntityID
	ctx.UserData = e.UserData
	e.flash = NewColorFlash(e.baseColor, e.flashCfg)
	e.color = e.baseColor
	if e.stage != nil {
		e.stage.fireTap(ctx)
	}
	if e.OnTap != nil {
		e.OnTap(ctx)
	}
	return true
}

// Reset returns the entity to its rest transform. When animated is false the
// change is immediate. When animated is true a spring from the current
// transform to rest is started; gesture input is never blocked and any later
// Changed report cancels the spring.
func (e *Entity) Reset(animated bool) {
	if e.disposed {
		return
	}
	if e.stage != nil {
		e.stage.resetStarted(animated)
	}
	if !animated || e.current == e.rest {
		e.current = e.rest
		e.spring = nil
		e.setState(StateIdle)
		return
	}
	e.spring = NewSpringTween(e.current, e.rest, e.springCfg)
	e.setState(StateReturning)
}

// Update advances the spring and the flash by dt seconds. Called by the
// stage once per frame.
func (e *Entity) Update(dt float32) {
	if e.disposed {
		return
	}
	if e.spring != nil {
		e.current = e.spring.Update(dt)
		if e.spring.Done {
			e.spring = nil
			e.current = e.rest
			e.setState(StateIdle)
		}
	}
	if e.flash != nil {
		e.color = e.flash.Update(dt)
		if e.flash.Done {
			e.flash = nil
			e.color = e.baseColor
		}
	}
}

func (e *Entity) setState(s State) {
	if e.state == s {
		return
	}
	from := e.state
	e.state = s
	if e.stage != nil {
		e.stage.stateChanged(e, from, s)
	}
	if e.OnStateChange != nil {
		e.OnStateChange(from, s)
	}
}

// --- Coordinate conversion ---

// WorldToLocal converts a stage point into the entity's local space, whose
// origin is the untransformed top-left corner.
func (e *Entity) WorldToLocal(wx, wy float64) (lx, ly float64) {
	x, y := e.WorldTransform().Invert().Apply(wx, wy)
	return x + e.Width/2, y + e.Height/2
}

// LocalToWorld converts a local point into stage coordinates.
func (e *Entity) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return e.WorldTransform().Apply(lx-e.Width/2, ly-e.Height/2)
}

// Contains reports whether the stage point lies on the entity as currently
// transformed. A singular current transform (zero scale) contains nothing.
func (e *Entity) Contains(wx, wy float64) bool {
	if !e.WorldTransform().Invertible() {
		return false
	}
	lx, ly := e.WorldToLocal(wx, wy)
	if e.HitShape != nil {
		return e.HitShape.Contains(lx, ly)
	}
	if e.Width == 0 && e.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= e.Width && ly >= 0 && ly <= e.Height
}

// --- Disposal ---

// Dispose removes the entity from its stage, stops its animations and drops
// its callbacks. Further updates and gestures are ignored.
func (e *Entity) Dispose() {
	if e.disposed {
		return
	}
	if e.stage != nil {
		e.stage.Remove(e)
	}
	e.disposed = true
	e.ID = 0
	e.spring = nil
	e.flash = nil
	e.HitShape = nil
	e.UserData = nil
	e.OnGesture = nil
	e.OnTap = nil
	e.OnStateChange = nil
}

// IsDisposed returns true if this entity has been disposed.
func (e *Entity) IsDisposed() bool {
	return e.disposed
}
