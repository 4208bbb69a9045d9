package gesturekit

import (
	"encoding/json"
	"errors"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action    string  `json:"action"`
	Label     string  `json:"label,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	FromX     float64 `json:"fromX,omitempty"`
	FromY     float64 `json:"fromY,omitempty"`
	ToX       float64 `json:"toX,omitempty"`
	ToY       float64 `json:"toY,omitempty"`
	FromDist  float64 `json:"fromDist,omitempty"`
	ToDist    float64 `json:"toDist,omitempty"`
	FromAngle float64 `json:"fromAngle,omitempty"`
	ToAngle   float64 `json:"toAngle,omitempty"`
	Frames    int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var errNoSteps = errors.New("no steps")

// TestRunner sequences injected gestures across frames for automated
// testing. Attach to a Stage via SetTestRunner.
//
// Supported actions: "tap" (x, y), "drag" (fromX, fromY, toX, toY, frames),
// "pinch" (x, y as centre, fromDist, toDist, fromAngle, toAngle, frames),
// "wait" (frames), "reset" (immediate reset of every entity), "screenshot"
// (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "drag", "pinch", "wait", "reset", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the stage. The runner's step method
// is called from Stage.Update before input is processed each frame.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Stage.Update.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "pinch":
		s.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.FromAngle, st.ToAngle, max(st.Frames, 3))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reset":
		s.ResetAll(false)
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
