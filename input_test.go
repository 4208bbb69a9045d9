package gesturekit

import (
	"math"
	"testing"
)

const frameDT = 1.0 / 60

// newInputStage returns a stage holding one 200x200 entity anchored at
// (100, 100).
func newInputStage() (*Stage, *Entity) {
	s := NewStage()
	e := NewEntity("box", Rect{X: 0, Y: 0, Width: 200, Height: 200}, Identity)
	s.Add(e)
	return s, e
}

func runFrames(t *testing.T, s *Stage, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.update(frameDT); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
}

func drainInput(t *testing.T, s *Stage) {
	t.Helper()
	runFrames(t, s, s.PendingInput())
}

func settleStage(t *testing.T, s *Stage) {
	t.Helper()
	for i := 0; i < 240; i++ {
		busy := false
		for _, e := range s.Entities() {
			busy = busy || e.Animating()
		}
		if !busy {
			return
		}
		runFrames(t, s, 1)
	}
	t.Fatal("stage still animating after 240 frames")
}

func TestInputTap(t *testing.T) {
	s, e := newInputStage()
	var taps []TapContext
	s.OnTap(func(ctx TapContext) { taps = append(taps, ctx) })

	s.InjectTap(120, 80)
	runFrames(t, s, 1)
	if len(taps) != 0 {
		t.Fatal("tap fired on press frame")
	}
	runFrames(t, s, 1)
	if len(taps) != 1 {
		t.Fatalf("expected 1 tap, got %d", len(taps))
	}
	ctx := taps[0]
	if ctx.Entity != e || ctx.PointerID != 0 {
		t.Errorf("tap context = %+v", ctx)
	}
	assertNear(t, "local x", ctx.LocalX, 120)
	assertNear(t, "local y", ctx.LocalY, 80)
	if !e.Animating() {
		t.Error("tap should start the flash")
	}
}

func TestInputTapWithinDeadZone(t *testing.T) {
	s, e := newInputStage()
	tapped := false
	e.OnTap = func(TapContext) { tapped = true }

	s.InjectDrag(100, 100, 102, 101, 3)
	drainInput(t, s)
	if !tapped {
		t.Error("small movement should still tap")
	}
	if e.GestureActive(GesturePan) || e.State() != StateIdle {
		t.Errorf("pan began inside the dead zone: state=%v", e.State())
	}
}

func TestInputTapMissesEmptySpace(t *testing.T) {
	s, _ := newInputStage()
	tapped := false
	s.OnTap(func(TapContext) { tapped = true })
	s.InjectTap(500, 500)
	drainInput(t, s)
	if tapped {
		t.Error("tap on empty space fired")
	}
}

func TestInputDragPans(t *testing.T) {
	s, e := newInputStage()
	var phases []Phase
	s.OnGesture(func(ev GestureEvent) {
		if ev.Kind != GesturePan {
			t.Errorf("unexpected %v report", ev.Kind)
		}
		phases = append(phases, ev.Phase)
	})
	tapped := false
	e.OnTap = func(TapContext) { tapped = true }

	// press, four moves, release
	s.InjectDrag(100, 100, 150, 120, 6)
	runFrames(t, s, 5)

	p := e.Params()
	assertNear(t, "tx", p.Translation.X, 40)
	assertNear(t, "ty", p.Translation.Y, 16)
	assertMatrix(t, "transform", e.Transform(), Translation(40, 16))
	if e.State() != StateInteracting {
		t.Errorf("state = %v, want interacting", e.State())
	}

	runFrames(t, s, 1)
	if tapped {
		t.Error("drag released as a tap")
	}
	if e.State() != StateReturning {
		t.Errorf("state after release = %v, want returning", e.State())
	}
	if len(phases) != 6 || phases[0] != PhaseBegan || phases[5] != PhaseEnded {
		t.Errorf("phases = %v", phases)
	}

	settleStage(t, s)
	if e.Transform() != Identity || e.State() != StateIdle {
		t.Errorf("after spring: transform=%v state=%v", e.Transform(), e.State())
	}
}

func TestInputPinchAndRotate(t *testing.T) {
	s, e := newInputStage()

	// land, three moves, lift
	s.InjectPinch(100, 100, 100, 200, 0, math.Pi/2, 5)
	runFrames(t, s, 1)
	if !e.GestureActive(GesturePinch) || !e.GestureActive(GestureRotate) {
		t.Fatal("pinch and rotate should begin when the second touch lands")
	}

	runFrames(t, s, 3)
	p := e.Params()
	assertNear(t, "scale", p.Scale, 2)
	assertNear(t, "rotation", p.Rotation, math.Pi/2)
	if e.GestureActive(GesturePan) {
		t.Error("symmetric pinch should not pan")
	}

	// The centre stays under the fingers.
	cx, cy := e.LocalToWorld(100, 100)
	assertPoint(t, "centre", cx, cy, 100, 100)

	runFrames(t, s, 1)
	if e.GestureActive(GesturePinch) || e.GestureActive(GestureRotate) {
		t.Error("gestures still active after lift")
	}
	if e.Params() != NeutralParameters {
		t.Errorf("params after lift = %+v", e.Params())
	}
	settleStage(t, s)
	if e.Transform() != Identity {
		t.Errorf("transform after spring = %v, want exactly Identity", e.Transform())
	}
}

func TestInputTwoFingerTapIsNotATap(t *testing.T) {
	s, e := newInputStage()
	tapped := false
	e.OnTap = func(TapContext) { tapped = true }

	s.InjectTouches(
		TouchPoint{ID: 1, X: 90, Y: 100, Pressed: true},
		TouchPoint{ID: 2, X: 110, Y: 100, Pressed: true},
	)
	s.InjectTouches(
		TouchPoint{ID: 1, X: 90, Y: 100},
		TouchPoint{ID: 2, X: 110, Y: 100},
	)
	drainInput(t, s)
	if tapped {
		t.Error("two-finger press fired a tap")
	}
	if e.State() != StateIdle {
		t.Errorf("state = %v, want idle", e.State())
	}
}

func TestInputPinchNeedsBothTouchesOnEntity(t *testing.T) {
	s := NewStage()
	a := NewEntity("a", Rect{X: 0, Y: 0, Width: 100, Height: 100}, Identity)
	b := NewEntity("b", Rect{X: 200, Y: 0, Width: 100, Height: 100}, Identity)
	s.Add(a)
	s.Add(b)

	s.InjectTouches(
		TouchPoint{ID: 1, X: 50, Y: 50, Pressed: true},
		TouchPoint{ID: 2, X: 250, Y: 50, Pressed: true},
	)
	runFrames(t, s, 1)
	if a.GestureActive(GesturePinch) || b.GestureActive(GesturePinch) {
		t.Error("pinch began across two entities")
	}
}

func TestInputWheelPinch(t *testing.T) {
	s, e := newInputStage()
	s.InjectWheel(100, 100, 1, 0)
	s.InjectWheel(100, 100, 1, 0)
	runFrames(t, s, 2)
	assertNear(t, "scale", e.Params().Scale, 1.21)

	s.InjectRelease(100, 100)
	runFrames(t, s, 1)
	if e.GestureActive(GesturePinch) {
		t.Error("wheel pinch still active after release")
	}
	if e.State() != StateReturning {
		t.Errorf("state = %v, want returning", e.State())
	}
}

func TestInputWheelRotateWithShift(t *testing.T) {
	s, e := newInputStage()
	s.SetWheelStep(0.25)
	s.InjectWheel(100, 100, 2, ModShift)
	runFrames(t, s, 1)
	assertNear(t, "rotation", e.Params().Rotation, 0.5)
	if e.GestureActive(GesturePinch) {
		t.Error("shift+wheel should not pinch")
	}
	s.InjectRelease(100, 100)
	drainInput(t, s)
}

func TestInputTopmostEntityWins(t *testing.T) {
	s := NewStage()
	below := NewEntity("below", Rect{Width: 100, Height: 100}, Identity)
	above := NewEntity("above", Rect{X: 50, Y: 50, Width: 100, Height: 100}, Identity)
	s.Add(below)
	s.Add(above)

	var hit *Entity
	s.OnTap(func(ctx TapContext) { hit = ctx.Entity })
	s.InjectTap(75, 75)
	drainInput(t, s)
	if hit != above {
		t.Errorf("tap went to %v, want above", hit)
	}

	above.Interactable = false
	s.InjectTap(75, 75)
	drainInput(t, s)
	if hit != below {
		t.Errorf("tap went to %v, want below when above is not interactable", hit)
	}
}

func TestInputPanIsCapturedOffEntity(t *testing.T) {
	s, e := newInputStage()
	s.InjectPress(190, 100)
	s.InjectMove(400, 100)
	runFrames(t, s, 2)
	assertNear(t, "tx", e.Params().Translation.X, 210)
	s.InjectRelease(400, 100)
	drainInput(t, s)
}

func TestInputSetDragDeadZone(t *testing.T) {
	s, e := newInputStage()
	s.SetDragDeadZone(50)
	s.InjectPress(100, 100)
	s.InjectMove(130, 100)
	runFrames(t, s, 2)
	if e.GestureActive(GesturePan) {
		t.Error("pan began inside a 50px dead zone")
	}
	s.InjectRelease(100, 100)
	drainInput(t, s)
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{7 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		assertNear(t, "wrapAngle", wrapAngle(tt.in), tt.want)
	}
}

func TestHitShapes(t *testing.T) {
	r := HitRect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(10, 30) || r.Contains(9, 10) {
		t.Error("HitRect edge handling")
	}
	c := HitCircle{CenterX: 0, CenterY: 0, Radius: 5}
	if !c.Contains(3, 4) || c.Contains(4, 4) {
		t.Error("HitCircle boundary handling")
	}
}
