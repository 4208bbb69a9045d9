package gesturekit

import "github.com/hajimehoshi/ebiten/v2"

// whitePixel is a 1x1 white image scaled and tinted to draw entity quads.
// Created on first draw so the package can be imported without a graphics
// context.
var whitePixel *ebiten.Image

func solidPixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Draw renders every visible entity, in order, onto screen. Each entity is a
// quad of its size centred on its anchor, transformed by its current
// transform and tinted by its current color.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	img := solidPixel()
	var op ebiten.DrawImageOptions
	for _, e := range s.entities {
		if !e.Visible || e.disposed {
			continue
		}
		op.GeoM = entityGeoM(e)
		op.ColorScale = e.color.colorScale()
		screen.DrawImage(img, &op)
	}
	if s.debug {
		s.drawDebugOverlay(screen)
	}
	s.flushScreenshots(screen)
}

// entityGeoM maps the unit pixel onto the entity:
// world · Translate(-w/2, -h/2) · Scale(w, h).
func entityGeoM(e *Entity) ebiten.GeoM {
	return e.WorldTransform().
		Translated(-e.Width/2, -e.Height/2).
		Scaled(e.Width, e.Height).
		GeoM()
}
