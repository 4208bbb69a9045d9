package gesturekit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
	defaultWheelStep    = 0.1 // scale fraction or radians per wheel notch
)

// --- Built-in HitShape types ---

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	touch  bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
	target *Entity // captured at press time
}

// --- Per-entity gesture tracking ---

// gestureTrack is the recognition state for the pointers captured by one
// entity during one press sequence (first press to last release).
type gestureTrack struct {
	count    int // captured pointers last frame
	maxCount int // most pointers seen at once in this sequence

	// Pan: centroid movement, rebased when the pointer count changes.
	originX, originY float64
	panBase          Vec2
	translation      Vec2

	// Pinch/rotate from the first two touch pointers.
	pair      [2]int
	pinchDist float64
	prevAngle float64
	scale     float64
	rotation  float64

	// Mouse-wheel fallback for pinch/rotate on desktop.
	wheelPinch  bool
	wheelRotate bool
}

func newGestureTrack() gestureTrack {
	return gestureTrack{scale: 1}
}

func (t *gestureTrack) hasPair() bool {
	return t.pair != [2]int{}
}

// --- Hit testing ---

// hitTest finds the topmost interactable entity at (x, y) as currently
// transformed, including mid-spring. Returns nil if nothing is hit.
func (s *Stage) hitTest(x, y float64) *Entity {
	// Iterate backward (reverse draw order): topmost entity first.
	for i := len(s.entities) - 1; i >= 0; i-- {
		e := s.entities[i]
		if !e.Visible || !e.Interactable || e.disposed {
			continue
		}
		if e.Contains(x, y) {
			return e
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Stage.Update to turn this frame's pointer state
// into gesture reports. An injected frame, when queued, replaces real input.
func (s *Stage) processInput() {
	var mods KeyModifiers
	var wheelY float64
	if frame, ok := s.popInjectedFrame(); ok {
		mods = frame.mods
		wheelY = frame.wheelY
		for _, ev := range frame.events {
			s.processPointer(ev.pointerID, ev.x, ev.y, ev.pressed, ev.pointerID > 0, mods)
		}
	} else {
		mods = readModifiers()
		s.processMousePointer(mods)
		s.processTouchPointers(mods)
		_, wheelY = ebiten.Wheel()
	}
	s.recognize(wheelY, mods)
}

// processMousePointer handles mouse input (pointer 0). Only the left button
// drives gestures.
func (s *Stage) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(0, float64(mx), float64(my), pressed, false, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Stage) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, true, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, true, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Stage) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the press/move/release state machine for one pointer.
// A press captures the hit entity until release. A release that qualifies as
// a tap is delivered here; continuous gestures are recognized afterwards in
// recognize.
func (s *Stage) processPointer(pointerID int, x, y float64, pressed, touch bool, mods KeyModifiers) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &s.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.touch = touch
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.target = s.hitTest(x, y)

	case !pressed && ps.down:
		e := ps.target
		ps.down = false
		ps.lastX, ps.lastY = x, y
		ps.target = nil
		if e != nil && s.isTap(e, ps, x, y) {
			lx, ly := e.WorldToLocal(x, y)
			e.tap(TapContext{
				GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
				PointerID: pointerID, Modifiers: mods,
			})
		}

	case pressed && ps.down:
		ps.lastX, ps.lastY = x, y
	}
}

// isTap reports whether releasing ps at (x, y) completes a tap on e: a single
// pointer sequence, no transform gesture begun, movement within the dead zone,
// released over the entity.
func (s *Stage) isTap(e *Entity, ps *pointerState, x, y float64) bool {
	t := &e.track
	if t.maxCount > 1 || e.anyTransformActive() {
		return false
	}
	if math.Hypot(x-ps.startX, y-ps.startY) > s.dragDeadZone {
		return false
	}
	return e.Contains(x, y)
}

func (e *Entity) anyTransformActive() bool {
	return e.recognizers[GesturePan].active ||
		e.recognizers[GesturePinch].active ||
		e.recognizers[GestureRotate].active
}

// --- Continuous gesture recognition ---

// recognize updates pan, pinch and rotate for every entity from the pointers
// it has captured.
func (s *Stage) recognize(wheelY float64, mods KeyModifiers) {
	// Snapshot: callbacks may add or remove entities.
	s.iterBuf = append(s.iterBuf[:0], s.entities...)
	for _, e := range s.iterBuf {
		if !e.disposed {
			s.recognizeEntity(e, wheelY, mods)
		}
	}
	clear(s.iterBuf)
}

func (s *Stage) recognizeEntity(e *Entity, wheelY float64, mods KeyModifiers) {
	t := &e.track

	var ids [maxPointers]int
	n := 0
	var cx, cy float64
	for i := range s.pointers {
		ps := &s.pointers[i]
		if ps.down && ps.target == e {
			ids[n] = i
			n++
			cx += ps.lastX
			cy += ps.lastY
		}
	}

	if n == 0 {
		if t.count > 0 {
			s.endTransformGestures(e)
		}
		*t = newGestureTrack()
		return
	}
	cx /= float64(n)
	cy /= float64(n)

	if n != t.count {
		// Rebase so the translation stays continuous as fingers come and go.
		t.panBase = t.translation
		t.originX, t.originY = cx, cy
		t.count = n
	}
	if n > t.maxCount {
		t.maxCount = n
	}

	t.translation = Vec2{
		X: t.panBase.X + cx - t.originX,
		Y: t.panBase.Y + cy - t.originY,
	}
	s.trackPan(e, cx, cy)
	s.trackPair(e, ids[:n], cx, cy)
	s.trackWheel(e, wheelY, mods, cx, cy)
}

func (s *Stage) trackPan(e *Entity, cx, cy float64) {
	t := &e.track
	r := &e.recognizers[GesturePan]
	if !r.active {
		if math.Hypot(t.translation.X, t.translation.Y) <= s.dragDeadZone {
			return
		}
		if !e.applyGesture(GesturePan, PhaseBegan, GestureParameters{}, cx, cy) {
			return
		}
	}
	if e.live.Translation != t.translation {
		e.applyGesture(GesturePan, PhaseChanged, GestureParameters{Translation: t.translation}, cx, cy)
	}
}

// trackPair drives pinch and rotate from the first two captured touch
// pointers. Both begin when the second touch lands and end when fewer than
// two remain. A change of pair rebases so the values stay continuous.
func (s *Stage) trackPair(e *Entity, ids []int, cx, cy float64) {
	t := &e.track

	var pair [2]int
	k := 0
	for _, id := range ids {
		if s.pointers[id].touch {
			pair[k] = id
			k++
			if k == len(pair) {
				break
			}
		}
	}
	if k < len(pair) {
		if t.hasPair() {
			t.pair = [2]int{}
			s.endGesture(e, GesturePinch, cx, cy)
			s.endGesture(e, GestureRotate, cx, cy)
			t.scale, t.rotation = 1, 0
		}
		return
	}

	p0 := &s.pointers[pair[0]]
	p1 := &s.pointers[pair[1]]
	dx := p1.lastX - p0.lastX
	dy := p1.lastY - p0.lastY
	dist := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)

	if pair != t.pair {
		if !t.hasPair() {
			// A wheel gesture yields to the touch pair.
			s.endWheelGestures(e, cx, cy)
			t.scale, t.rotation = 1, 0
			t.pinchDist = dist
			e.applyGesture(GesturePinch, PhaseBegan, GestureParameters{}, cx, cy)
			e.applyGesture(GestureRotate, PhaseBegan, GestureParameters{}, cx, cy)
		} else if t.scale > 0 {
			t.pinchDist = dist / t.scale
		} else {
			t.pinchDist = dist
		}
		t.prevAngle = angle
		t.pair = pair
	}

	if t.pinchDist > 0 {
		t.scale = dist / t.pinchDist
	} else if dist > 0 {
		t.pinchDist = dist
	}
	t.rotation += wrapAngle(angle - t.prevAngle)
	t.prevAngle = angle

	if e.recognizers[GesturePinch].active && e.live.Scale != t.scale {
		e.applyGesture(GesturePinch, PhaseChanged, GestureParameters{Scale: t.scale}, cx, cy)
	}
	if e.recognizers[GestureRotate].active && e.live.Rotation != t.rotation {
		e.applyGesture(GestureRotate, PhaseChanged, GestureParameters{Rotation: t.rotation}, cx, cy)
	}
}

// trackWheel is the desktop fallback: the wheel, while the mouse is held on
// the entity, scales it (or rotates it with Shift held).
func (s *Stage) trackWheel(e *Entity, wheelY float64, mods KeyModifiers, cx, cy float64) {
	t := &e.track
	mouse := &s.pointers[0]
	if wheelY == 0 || t.hasPair() || !mouse.down || mouse.target != e {
		return
	}

	if mods&ModShift != 0 {
		if !e.recognizers[GestureRotate].active {
			if !e.applyGesture(GestureRotate, PhaseBegan, GestureParameters{}, cx, cy) {
				return
			}
			t.rotation = 0
			t.wheelRotate = true
		}
		t.rotation += s.wheelStep * wheelY
		e.applyGesture(GestureRotate, PhaseChanged, GestureParameters{Rotation: t.rotation}, cx, cy)
		return
	}

	if !e.recognizers[GesturePinch].active {
		if !e.applyGesture(GesturePinch, PhaseBegan, GestureParameters{}, cx, cy) {
			return
		}
		t.scale = 1
		t.wheelPinch = true
	}
	t.scale = math.Max(0, t.scale*(1+s.wheelStep*wheelY))
	e.applyGesture(GesturePinch, PhaseChanged, GestureParameters{Scale: t.scale}, cx, cy)
}

func (s *Stage) endWheelGestures(e *Entity, x, y float64) {
	t := &e.track
	if t.wheelPinch {
		s.endGesture(e, GesturePinch, x, y)
		t.wheelPinch = false
	}
	if t.wheelRotate {
		s.endGesture(e, GestureRotate, x, y)
		t.wheelRotate = false
	}
}

// endTransformGestures ends every active transform gesture on e once its last
// pointer has lifted.
func (s *Stage) endTransformGestures(e *Entity) {
	x, y := e.track.originX, e.track.originY
	for _, k := range [...]GestureKind{GesturePan, GesturePinch, GestureRotate} {
		s.endGesture(e, k, x, y)
	}
}

func (s *Stage) endGesture(e *Entity, kind GestureKind, x, y float64) {
	if e.recognizers[kind].active {
		e.applyGesture(kind, PhaseEnded, GestureParameters{}, x, y)
	}
}

// wrapAngle maps a into (-π, π].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
