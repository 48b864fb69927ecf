package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/acuitylab/stimulus-engine/internal/staircase"
	"github.com/acuitylab/stimulus-engine/internal/stimulus"
)

// gapOverlapPx extends the gap cut past the outer edge so no ring pixels
// survive at the rim.
const gapOverlapPx = 5.0

// #region theme
// Theme is a background/foreground color pair for the test window.
type Theme struct {
	Background color.RGBA
	Foreground color.RGBA
}

// Light is the default white-background theme.
var Light = Theme{
	Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground: color.RGBA{R: 0, G: 0, B: 0, A: 255},
}

// Dark inverts the polarity for low-light testing.
var Dark = Theme{
	Background: color.RGBA{R: 16, G: 16, B: 16, A: 255},
	Foreground: color.RGBA{R: 235, G: 235, B: 235, A: 255},
}

// #endregion theme

// #region landolt
// DrawLandoltC draws a ring with a directional gap centered at (cx, cy).
// Outer radius is heightPx/2, inner radius 3·gapPx/2 (the 1:5 optotype
// ratio), and the gap is cut as a background stroke of width strokePx
// from the center past the outer edge. All shapes are anti-aliased so
// sub-pixel sizes keep their fractional intent.
func DrawLandoltC(dst *ebiten.Image, cx, cy float64, spec stimulus.Spec, orientation staircase.Orientation, theme Theme) {
	outer := float32(spec.HeightPx / 2)
	inner := float32(3 * spec.GapPx / 2)

	vector.DrawFilledCircle(dst, float32(cx), float32(cy), outer, theme.Foreground, true)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), inner, theme.Background, true)

	dx, dy := gapDirection(orientation)
	reach := float64(outer) + gapOverlapPx
	vector.StrokeLine(dst,
		float32(cx), float32(cy),
		float32(cx+dx*reach), float32(cy+dy*reach),
		float32(spec.StrokePx), theme.Background, true)
}

// gapDirection maps an orientation to a unit vector in screen
// coordinates (y grows downward).
func gapDirection(o staircase.Orientation) (float64, float64) {
	switch o {
	case staircase.Up:
		return 0, -1
	case staircase.Down:
		return 0, 1
	case staircase.Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// #endregion landolt
