package gesturekit

import (
	"math"
	"testing"
)

func TestInjectTapQueuesTwoFrames(t *testing.T) {
	s := NewStage()
	s.InjectTap(50, 50)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued frames, got %d", s.PendingInput())
	}
	f, ok := s.popInjectedFrame()
	if !ok || len(f.events) != 1 || !f.events[0].pressed || f.events[0].pointerID != 0 {
		t.Errorf("press frame = %+v", f)
	}
	f, _ = s.popInjectedFrame()
	if f.events[0].pressed {
		t.Error("second frame should release")
	}
	if _, ok := s.popInjectedFrame(); ok {
		t.Error("queue should be empty")
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	s := NewStage()
	s.InjectDrag(10, 10, 200, 200, 5)
	if s.PendingInput() != 5 {
		t.Fatalf("expected 5 queued frames, got %d", s.PendingInput())
	}
	wantX := []float64{10, 57.5, 105, 152.5, 200}
	for i, want := range wantX {
		f, _ := s.popInjectedFrame()
		assertNear(t, "x", f.events[0].x, want)
		if pressed := f.events[0].pressed; pressed != (i < 4) {
			t.Errorf("frame %d pressed = %v", i, pressed)
		}
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := NewStage()
	s.InjectDrag(0, 0, 10, 10, 0)
	if s.PendingInput() != 2 {
		t.Errorf("expected press and release only, got %d frames", s.PendingInput())
	}
}

func TestInjectPinchGeometry(t *testing.T) {
	s := NewStage()
	s.InjectPinch(100, 100, 100, 200, 0, math.Pi/2, 4)
	if s.PendingInput() != 4 {
		t.Fatalf("expected 4 queued frames, got %d", s.PendingInput())
	}

	first, _ := s.popInjectedFrame()
	if len(first.events) != 2 {
		t.Fatalf("expected two touches, got %d", len(first.events))
	}
	a, b := first.events[0], first.events[1]
	if a.pointerID != 1 || b.pointerID != 2 {
		t.Errorf("touch ids = %d, %d", a.pointerID, b.pointerID)
	}
	assertNear(t, "first distance", math.Hypot(b.x-a.x, b.y-a.y), 100)

	s.popInjectedFrame()
	s.popInjectedFrame()
	last, _ := s.popInjectedFrame()
	a, b = last.events[0], last.events[1]
	if a.pressed || b.pressed {
		t.Error("last frame should lift both touches")
	}
	assertNear(t, "last distance", math.Hypot(b.x-a.x, b.y-a.y), 200)
	assertNear(t, "last angle", math.Atan2(b.y-a.y, b.x-a.x), math.Pi/2)
}

func TestInjectTouchesIgnoresMouseSlot(t *testing.T) {
	s := NewStage()
	s.InjectTouches(TouchPoint{ID: 0, Pressed: true}, TouchPoint{ID: 3, Pressed: true}, TouchPoint{ID: 10})
	f, _ := s.popInjectedFrame()
	if len(f.events) != 1 || f.events[0].pointerID != 3 {
		t.Errorf("events = %+v", f.events)
	}
}

func TestInjectWheelCarriesModifiers(t *testing.T) {
	s := NewStage()
	s.InjectWheel(1, 2, -3, ModShift)
	f, _ := s.popInjectedFrame()
	if f.wheelY != -3 || f.mods != ModShift || !f.events[0].pressed {
		t.Errorf("wheel frame = %+v", f)
	}
}
