package gesturekit

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Debug turns on the stage's debug mode (overlay and debug logging).
	Debug bool
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage         *Stage
	width, height int
}

func (g *game) Update() error              { return g.stage.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.stage.Draw(screen) }
func (g *game) Layout(_, _ int) (int, int) { return g.width, g.height }

// Run opens a window and drives stage until the window is closed or the
// stage's update func returns an error.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Debug {
		stage.SetDebugMode(true)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{stage: stage, width: cfg.Width, height: cfg.Height})
}
