package optics

import (
	"fmt"
	"math"

	"github.com/acuitylab/stimulus-engine/internal/device"
)

// mmPerInch converts between PPI and millimeter pixel pitch.
const mmPerInch = 25.4

// #region angle
// ArcminToRad converts arc-minutes to radians.
func ArcminToRad(arcmin float64) float64 {
	return arcmin * (math.Pi / (180.0 * 60.0))
}

// GapSizeMm converts an angular gap size to a physical size at the given
// viewing distance, using the exact tangent rather than the small-angle
// approximation so results hold at large distances and angles.
func GapSizeMm(gapArcmin, distanceMm float64) (float64, error) {
	if gapArcmin <= 0 {
		return 0, fmt.Errorf("gap angle %v arcmin: %w", gapArcmin, device.ErrInvalidParameter)
	}
	if distanceMm <= 0 {
		return 0, fmt.Errorf("distance %v mm: %w", distanceMm, device.ErrInvalidParameter)
	}
	return distanceMm * math.Tan(ArcminToRad(gapArcmin)), nil
}

// #endregion angle

// #region pixels
// MmToPx converts a physical size to pixels for a display of the given
// linear pixel density.
func MmToPx(mm, ppi float64) (float64, error) {
	if ppi <= 0 {
		return 0, fmt.Errorf("ppi %v: %w", ppi, device.ErrInvalidParameter)
	}
	return mm * ppi / mmPerInch, nil
}

// PxToMm is the inverse of MmToPx.
func PxToMm(px, ppi float64) (float64, error) {
	if ppi <= 0 {
		return 0, fmt.Errorf("ppi %v: %w", ppi, device.ErrInvalidParameter)
	}
	return px * mmPerInch / ppi, nil
}

// #endregion pixels
