package gesturekit

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gesturekit/gesturekit/internal/logging"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Stage, gesture and tap events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries gesture data for the ECS bridge.
type InteractionEvent struct {
	Kind     GestureKind
	Phase    Phase
	EntityID uint32
	GlobalX  float64
	GlobalY  float64
	// Tap fields (valid for GestureTap)
	LocalX float64
	LocalY float64
	// Live parameters after the report (valid for pan, pinch, rotate)
	Scale        float64
	Rotation     float64
	TranslationX float64
	TranslationY float64
}

// --- Handler registry ---

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

type tapHandler struct {
	id uint32
	fn func(TapContext)
}

type stateHandler struct {
	id uint32
	fn func(e *Entity, from, to State)
}

type handlerRegistry struct {
	gesture []gestureHandler
	tap     []tapHandler
	state   []stateHandler
	nextID  uint32
}

type handlerKind uint8

const (
	handlerGesture handlerKind = iota
	handlerTap
	handlerState
)

// CallbackHandle allows removing a registered stage-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerGesture:
		h.reg.gesture = removeHandler(h.reg.gesture, func(g gestureHandler) bool { return g.id == h.id })
	case handlerTap:
		h.reg.tap = removeHandler(h.reg.tap, func(t tapHandler) bool { return t.id == h.id })
	case handlerState:
		h.reg.state = removeHandler(h.reg.state, func(s stateHandler) bool { return s.id == h.id })
	}
}

// removeHandler removes the first entry matching and clears the vacated slot
// so the backing array does not retain the closure.
func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// Stage is the host: it owns the entities, turns pointer input into gesture
// reports, advances animations, and draws. All methods must be called from
// the game's update/draw goroutine.
type Stage struct {
	entities []*Entity
	iterBuf  []*Entity

	// ClearColor fills the screen before entities are drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	store   EntityStore
	metrics *Metrics
	logger  *slog.Logger
	debug   bool

	updateFunc func() error
	testRunner *TestRunner

	// Input state
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	wheelStep    float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticFrame

	spring SpringConfig
	flash  FlashConfig
}

// NewStage creates an empty stage using the process-wide logger.
func NewStage() *Stage {
	return &Stage{
		ScreenshotDir: "screenshots",
		logger:        logging.L(),
		dragDeadZone:  defaultDragDeadZone,
		wheelStep:     defaultWheelStep,
		spring:        DefaultSpring,
		flash:         DefaultFlash,
	}
}

// Add appends e to the stage; later entities draw above earlier ones and win
// hit tests. The stage's spring and flash settings are applied to e.
// Panics if e is nil, disposed, or owned by another stage.
func (s *Stage) Add(e *Entity) {
	if e == nil {
		panic("gesturekit: cannot add nil entity")
	}
	if e.disposed {
		panic("gesturekit: cannot add disposed entity")
	}
	if e.stage == s {
		return
	}
	if e.stage != nil {
		panic("gesturekit: entity already belongs to another stage")
	}
	e.stage = s
	e.springCfg = s.spring
	e.flashCfg = s.flash
	s.entities = append(s.entities, e)
	if e.state == StateInteracting && s.metrics != nil {
		s.metrics.Interacting.Inc()
	}
	if s.debug {
		s.logger.Debug("entity added", "entity", e.Name, "id", e.ID)
	}
}

// Remove detaches e from the stage. Pointers captured by e are released
// without a tap. No-op if e is not on this stage.
func (s *Stage) Remove(e *Entity) {
	if e == nil || e.stage != s {
		return
	}
	for i, c := range s.entities {
		if c == e {
			copy(s.entities[i:], s.entities[i+1:])
			s.entities[len(s.entities)-1] = nil
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
	for i := range s.pointers {
		if s.pointers[i].target == e {
			s.pointers[i].target = nil
		}
	}
	if e.state == StateInteracting && s.metrics != nil {
		s.metrics.Interacting.Dec()
	}
	e.stage = nil
}

// Entities returns the entity list in draw order. The returned slice MUST NOT
// be mutated.
func (s *Stage) Entities() []*Entity {
	return s.entities
}

// Update processes input, then advances every entity's animations, then runs
// the update func set with SetUpdateFunc.
func (s *Stage) Update() error {
	return s.update(float32(1.0 / float64(ebiten.TPS())))
}

func (s *Stage) update(dt float32) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	// Snapshot: state-change callbacks may add or remove entities.
	s.iterBuf = append(s.iterBuf[:0], s.entities...)
	for _, e := range s.iterBuf {
		e.Update(dt)
	}
	clear(s.iterBuf)
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDragDeadZone sets the minimum movement in pixels before a pan starts.
func (s *Stage) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// SetWheelStep sets how much one wheel notch scales (fraction) or rotates
// (radians) an entity.
func (s *Stage) SetWheelStep(step float64) {
	s.wheelStep = step
}

// SetSpring sets the spring for every entity on the stage and for entities
// added later.
func (s *Stage) SetSpring(cfg SpringConfig) {
	s.spring = cfg
	for _, e := range s.entities {
		e.SetSpring(cfg)
	}
}

// SetFlash sets the tap flash for every entity on the stage and for entities
// added later.
func (s *Stage) SetFlash(cfg FlashConfig) {
	s.flash = cfg
	for _, e := range s.entities {
		e.SetFlash(cfg)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetMetrics attaches Prometheus collectors. Nil disables metrics.
func (s *Stage) SetMetrics(m *Metrics) {
	s.metrics = m
}

// SetLogger replaces the stage logger. Nil restores the process-wide logger.
func (s *Stage) SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.L()
	}
	s.logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, every gesture
// report and state change is logged at debug level and Draw overlays
// per-entity state.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// ResetAll returns every entity to rest.
func (s *Stage) ResetAll(animated bool) {
	for _, e := range s.entities {
		e.Reset(animated)
	}
}

// --- Stage-level event registration ---

// OnGesture registers a stage-level callback for every pan, pinch and rotate
// report on any entity.
func (s *Stage) OnGesture(fn func(GestureEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.gesture = append(s.handlers.gesture, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: handlerGesture}
}

// OnTap registers a stage-level callback for taps on any entity.
func (s *Stage) OnTap(fn func(TapContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.tap = append(s.handlers.tap, tapHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: handlerTap}
}

// OnStateChange registers a stage-level callback for entity state changes.
func (s *Stage) OnStateChange(fn func(e *Entity, from, to State)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.state = append(s.handlers.state, stateHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: handlerState}
}

// --- Event dispatch ---

func (s *Stage) fireGesture(ev GestureEvent) {
	if s.debug {
		s.logger.Debug("gesture",
			"entity", ev.Entity.Name, "kind", ev.Kind.String(), "phase", ev.Phase.String(),
			"scale", ev.Params.Scale, "rotation", ev.Params.Rotation,
			"tx", ev.Params.Translation.X, "ty", ev.Params.Translation.Y)
	}
	if s.metrics != nil {
		s.metrics.Gestures.WithLabelValues(ev.Kind.String(), ev.Phase.String()).Inc()
	}
	for _, h := range s.handlers.gesture {
		h.fn(ev)
	}
	s.emitInteractionEvent(InteractionEvent{
		Kind: ev.Kind, Phase: ev.Phase, EntityID: ev.EntityID,
		GlobalX: ev.GlobalX, GlobalY: ev.GlobalY,
		Scale: ev.Params.Scale, Rotation: ev.Params.Rotation,
		TranslationX: ev.Params.Translation.X, TranslationY: ev.Params.Translation.Y,
	})
}

func (s *Stage) fireTap(ctx TapContext) {
	s.logger.Info("tapped", "entity", ctx.Entity.Name, "x", ctx.LocalX, "y", ctx.LocalY)
	if s.metrics != nil {
		s.metrics.Taps.Inc()
	}
	for _, h := range s.handlers.tap {
		h.fn(ctx)
	}
	s.emitInteractionEvent(InteractionEvent{
		Kind: GestureTap, Phase: PhaseEnded, EntityID: ctx.EntityID,
		GlobalX: ctx.GlobalX, GlobalY: ctx.GlobalY,
		LocalX: ctx.LocalX, LocalY: ctx.LocalY,
	})
}

func (s *Stage) stateChanged(e *Entity, from, to State) {
	if s.debug {
		s.logger.Debug("state", "entity", e.Name, "from", from.String(), "to", to.String())
	}
	if s.metrics != nil {
		if to == StateInteracting {
			s.metrics.Interacting.Inc()
		} else if from == StateInteracting {
			s.metrics.Interacting.Dec()
		}
	}
	for _, h := range s.handlers.state {
		h.fn(e, from, to)
	}
}

func (s *Stage) resetStarted(animated bool) {
	if s.metrics != nil {
		s.metrics.observeReset(animated)
	}
}

// --- ECS bridge ---

func (s *Stage) emitInteractionEvent(ev InteractionEvent) {
	if s.store == nil || ev.EntityID == 0 {
		return
	}
	s.store.EmitEvent(ev)
}
