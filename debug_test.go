package gesturekit

import (
	"strings"
	"testing"
)

func TestDebugText(t *testing.T) {
	s := NewStage()
	e := NewEntity("green", Rect{Width: 10, Height: 10}, Identity)
	s.Add(e)
	e.ApplyGesture(GesturePinch, PhaseChanged, GestureParameters{Scale: 1.5})

	out := s.debugText(60, 60)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if lines[0] != "FPS: 60.0  TPS: 60.0" {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"green:", "interacting", "s=1.50", "r=0.00"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("entity line %q missing %q", lines[1], want)
		}
	}
}
