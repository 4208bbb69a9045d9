package gesturekit

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gesturekit/gesturekit/internal/logging"
)

// ErrInvalidConfig is wrapped by every validation error LoadConfig returns.
var ErrInvalidConfig = errors.New("gesturekit: invalid config")

// EnvPrefix prefixes environment overrides. Nested keys use "__", e.g.
// GESTUREKIT_SPRING__DAMPING=0.5.
const EnvPrefix = "GESTUREKIT_"

const schemaVersion = "v1"

// WindowConfig sizes and titles the demo window. Applied at startup only.
type WindowConfig struct {
	Title  string `koanf:"title"`
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
}

// InputConfig tunes pointer recognition on the stage.
type InputConfig struct {
	DragDeadZone float64 `koanf:"drag_dead_zone"` // pixels
	WheelStep    float64 `koanf:"wheel_step"`     // scale fraction / radians per notch
}

// LayoutConfig controls the vertical stacking of demo entities.
type LayoutConfig struct {
	Spacing float64 `koanf:"spacing"`
}

// EntityConfig describes one entity of the demo layout. A zero alpha is
// read as opaque.
type EntityConfig struct {
	Name  string `koanf:"name"`
	Color Color  `koanf:"color"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `koanf:"addr"` // empty disables the /metrics endpoint
}

// Config is the full runtime configuration.
type Config struct {
	SchemaVersion string          `koanf:"schema_version"`
	Window        WindowConfig    `koanf:"window"`
	Spring        SpringConfig    `koanf:"spring"`
	Flash         FlashConfig     `koanf:"flash"`
	Input         InputConfig     `koanf:"input"`
	Layout        LayoutConfig    `koanf:"layout"`
	Entities      []EntityConfig  `koanf:"entities"`
	Log           logging.Options `koanf:"log"`
	Metrics       MetricsConfig   `koanf:"metrics"`
	Debug         bool            `koanf:"debug"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present: three stacked entities (green, yellow, red).
func DefaultConfig() Config {
	c := Config{Spring: SpringConfig{Velocity: DefaultSpring.Velocity}}
	applyDefaults(&c)
	return c
}

// LoadConfig merges the YAML file at path (if present) with environment
// overrides, fills defaults and validates the result. A missing file is not
// an error.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	// schema version check (only when YAML is present)
	if sv := k.String("schema_version"); sv != "" && sv != schemaVersion {
		return Config{}, fmt.Errorf("%w: schema_version %q not supported (want %s)",
			ErrInvalidConfig, sv, schemaVersion)
	}

	if err := k.Load(env.Provider(EnvPrefix, "__", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	// velocity may legitimately be zero, so its default is seeded rather
	// than filled in afterwards
	cfg := Config{Spring: SpringConfig{Velocity: DefaultSpring.Velocity}}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func applyDefaults(c *Config) {
	if c.SchemaVersion == "" {
		c.SchemaVersion = schemaVersion
	}
	if c.Window.Title == "" {
		c.Window.Title = "gesturekit"
	}
	if c.Window.Width == 0 {
		c.Window.Width = 400
	}
	if c.Window.Height == 0 {
		c.Window.Height = 800
	}
	if c.Spring.Damping == 0 {
		c.Spring.Damping = DefaultSpring.Damping
	}
	if c.Spring.Duration == 0 {
		c.Spring.Duration = DefaultSpring.Duration
	}
	if c.Flash.Duration == 0 {
		c.Flash.Duration = DefaultFlash.Duration
	}
	if c.Flash.Color == (Color{}) {
		c.Flash.Color = DefaultFlash.Color
	}
	c.Flash.Color = opaque(c.Flash.Color)
	if c.Input.DragDeadZone == 0 {
		c.Input.DragDeadZone = defaultDragDeadZone
	}
	if c.Input.WheelStep == 0 {
		c.Input.WheelStep = defaultWheelStep
	}
	if c.Layout.Spacing == 0 {
		c.Layout.Spacing = 20
	}
	if len(c.Entities) == 0 {
		c.Entities = []EntityConfig{
			{Name: "green", Color: ColorGreen},
			{Name: "yellow", Color: ColorYellow},
			{Name: "red", Color: ColorRed},
		}
	}
	for i := range c.Entities {
		c.Entities[i].Color = opaque(c.Entities[i].Color)
	}
}

func opaque(c Color) Color {
	if c.A == 0 {
		c.A = 1
	}
	return c
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case !(c.Spring.Damping > 0) || math.IsInf(c.Spring.Damping, 0):
		return invalid("spring.damping must be positive, got %v", c.Spring.Damping)
	case math.IsNaN(c.Spring.Velocity) || math.IsInf(c.Spring.Velocity, 0):
		return invalid("spring.velocity must be finite, got %v", c.Spring.Velocity)
	case !(c.Spring.Duration > 0):
		return invalid("spring.duration must be positive, got %v", c.Spring.Duration)
	case !(c.Flash.Duration > 0):
		return invalid("flash.duration must be positive, got %v", c.Flash.Duration)
	case !validColor(c.Flash.Color):
		return invalid("flash.color components must be in [0, 1], got %+v", c.Flash.Color)
	case !(c.Input.DragDeadZone >= 0):
		return invalid("input.drag_dead_zone must not be negative, got %v", c.Input.DragDeadZone)
	case !(c.Input.WheelStep > 0 && c.Input.WheelStep < 1):
		return invalid("input.wheel_step must be in (0, 1), got %v", c.Input.WheelStep)
	case !(c.Layout.Spacing >= 0):
		return invalid("layout.spacing must not be negative, got %v", c.Layout.Spacing)
	}
	seen := make(map[string]bool, len(c.Entities))
	for i, ec := range c.Entities {
		if ec.Name == "" {
			return invalid("entities[%d].name is empty", i)
		}
		if seen[ec.Name] {
			return invalid("entities[%d].name %q is duplicated", i, ec.Name)
		}
		seen[ec.Name] = true
		if !validColor(ec.Color) {
			return invalid("entities[%d].color components must be in [0, 1], got %+v", i, ec.Color)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

func validColor(c Color) bool {
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// ApplyConfig applies the tunable parts of cfg to the stage: spring, flash,
// input thresholds and debug mode, plus the base color of every entity whose
// name matches an entry in cfg.Entities. Window, layout and metrics settings
// take effect only at startup. Must be called from the update goroutine.
func (s *Stage) ApplyConfig(cfg Config) {
	s.SetSpring(cfg.Spring)
	s.SetFlash(cfg.Flash)
	s.SetDragDeadZone(cfg.Input.DragDeadZone)
	s.SetWheelStep(cfg.Input.WheelStep)
	s.SetDebugMode(cfg.Debug)
	for _, ec := range cfg.Entities {
		for _, e := range s.entities {
			if e.Name == ec.Name {
				e.SetColor(ec.Color)
			}
		}
	}
	s.logger.Info("config applied",
		"damping", cfg.Spring.Damping, "spring_duration", cfg.Spring.Duration,
		"flash_duration", cfg.Flash.Duration, "debug", cfg.Debug)
}
