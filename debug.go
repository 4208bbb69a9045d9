package gesturekit

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugText builds the overlay text: frame rates followed by one line per
// entity with its state and live gesture values.
func (s *Stage) debugText(fps, tps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", fps, tps)
	for _, e := range s.entities {
		p := e.live
		fmt.Fprintf(&b, "%s: %-11s s=%.2f r=%.2f t=(%.0f,%.0f)\n",
			e.Name, e.state, p.Scale, p.Rotation, p.Translation.X, p.Translation.Y)
	}
	return b.String()
}

// drawDebugOverlay prints debugText in the top-left corner.
func (s *Stage) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, s.debugText(ebiten.ActualFPS(), ebiten.ActualTPS()))
}
