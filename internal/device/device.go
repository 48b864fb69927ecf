package device

import (
	"errors"
	"fmt"
)

// #region errors
// ErrInvalidParameter marks a non-positive construction or conversion input.
// These are configuration errors, rejected at construction time, never
// silently coerced.
var ErrInvalidParameter = errors.New("invalid parameter")

// #endregion errors

// #region resolution
// Resolution is a display size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// MinDimension returns the smaller of width and height, the effective
// display bound for a centered stimulus.
func (r Resolution) MinDimension() int {
	if r.Width < r.Height {
		return r.Width
	}
	return r.Height
}

// #endregion resolution

// #region profile
// Profile describes the display and optics a stimulus is computed for.
// Immutable once constructed; shared read-only across the sizing pipeline.
type Profile struct {
	ViewingDistanceMm float64
	PPI               float64
	Resolution        Resolution
}

// NewProfile validates and constructs a display profile. All fields must
// be strictly positive.
func NewProfile(viewingDistanceMm, ppi float64, resolution Resolution) (Profile, error) {
	if viewingDistanceMm <= 0 {
		return Profile{}, fmt.Errorf("viewing distance %v mm: %w", viewingDistanceMm, ErrInvalidParameter)
	}
	if ppi <= 0 {
		return Profile{}, fmt.Errorf("ppi %v: %w", ppi, ErrInvalidParameter)
	}
	if resolution.Width <= 0 || resolution.Height <= 0 {
		return Profile{}, fmt.Errorf("resolution %dx%d: %w", resolution.Width, resolution.Height, ErrInvalidParameter)
	}
	return Profile{
		ViewingDistanceMm: viewingDistanceMm,
		PPI:               ppi,
		Resolution:        resolution,
	}, nil
}

// #endregion profile
