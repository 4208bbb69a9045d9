package gesturekit

import "math"

// syntheticPointerEvent is one injected pointer sample. Pointer 0 is the
// mouse; 1-9 are touches.
type syntheticPointerEvent struct {
	pointerID int
	x, y      float64
	pressed   bool
}

// syntheticFrame is everything injected for a single frame. It replaces real
// input for the frame it is consumed in.
type syntheticFrame struct {
	events []syntheticPointerEvent
	wheelY float64
	mods   KeyModifiers
}

// TouchPoint is one finger in an injected multi-touch frame.
type TouchPoint struct {
	ID      int // touch slot 1-9
	X, Y    float64
	Pressed bool
}

func (s *Stage) injectMouse(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticFrame{
		events: []syntheticPointerEvent{{pointerID: 0, x: x, y: y, pressed: pressed}},
	})
}

// InjectPress queues a mouse press at the given stage coordinates. The event
// is consumed on the next frame's processInput call.
func (s *Stage) InjectPress(x, y float64) {
	s.injectMouse(x, y, true)
}

// InjectMove queues a mouse move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (s *Stage) InjectMove(x, y float64) {
	s.injectMouse(x, y, true)
}

// InjectRelease queues a mouse release at the given stage coordinates.
func (s *Stage) InjectRelease(x, y float64) {
	s.injectMouse(x, y, false)
}

// InjectTap is a convenience that queues a press followed by a release at
// the same coordinates. Consumes two frames.
func (s *Stage) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames
// is 2 (press + release).
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues one frame with the mouse held at (x, y) and the wheel
// moved by dy notches. Pass ModShift in mods to rotate instead of scale.
func (s *Stage) InjectWheel(x, y, dy float64, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticFrame{
		events: []syntheticPointerEvent{{pointerID: 0, x: x, y: y, pressed: true}},
		wheelY: dy,
		mods:   mods,
	})
}

// InjectTouches queues one frame of raw touch samples. Touches not listed
// keep their previous state.
func (s *Stage) InjectTouches(points ...TouchPoint) {
	frame := syntheticFrame{events: make([]syntheticPointerEvent, 0, len(points))}
	for _, p := range points {
		if p.ID < 1 || p.ID >= maxPointers {
			continue
		}
		frame.events = append(frame.events, syntheticPointerEvent{
			pointerID: p.ID, x: p.X, y: p.Y, pressed: p.Pressed,
		})
	}
	s.injectQueue = append(s.injectQueue, frame)
}

// InjectPinch queues a two-finger gesture centred on (cx, cy): both touches
// land at fromDist apart along fromAngle, move to toDist along toAngle over
// the intermediate frames, then lift. The sequence consumes `frames` frames;
// minimum 3 (land, one move, lift).
func (s *Stage) InjectPinch(cx, cy, fromDist, toDist, fromAngle, toAngle float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	place := func(dist, angle float64, pressed bool) {
		sin, cos := math.Sincos(angle)
		hx, hy := cos*dist/2, sin*dist/2
		s.InjectTouches(
			TouchPoint{ID: 1, X: cx - hx, Y: cy - hy, Pressed: pressed},
			TouchPoint{ID: 2, X: cx + hx, Y: cy + hy, Pressed: pressed},
		)
	}
	place(fromDist, fromAngle, true)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		place(fromDist+(toDist-fromDist)*t, fromAngle+(toAngle-fromAngle)*t, true)
	}
	place(toDist, toAngle, false)
}

// PendingInput returns the number of injected frames not yet consumed.
func (s *Stage) PendingInput() int {
	return len(s.injectQueue)
}

// popInjectedFrame removes and returns the oldest queued frame.
func (s *Stage) popInjectedFrame() (syntheticFrame, bool) {
	if len(s.injectQueue) == 0 {
		return syntheticFrame{}, false
	}
	frame := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = syntheticFrame{}
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return frame, true
}
