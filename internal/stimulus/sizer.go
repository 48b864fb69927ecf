package stimulus

import (
	"fmt"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/ladder"
	"github.com/acuitylab/stimulus-engine/internal/optics"
)

// heightPerGap is the standard optotype proportion: total letter height is
// five gap widths and the stroke width equals the gap width.
const heightPerGap = 5.0

// #region config
// SizerConfig holds the sizing policy constants.
type SizerConfig struct {
	// MinHeightPx is the minimum visible stimulus height. Outputs below it
	// are raised to this floor with the 1:5 proportion recomputed.
	MinHeightPx float64
}

// DefaultSizerConfig returns the standard policy: a 5 px floor, the
// smallest height that still resolves a 1 px gap and 1 px strokes at the
// 1:5 ratio.
func DefaultSizerConfig() SizerConfig {
	return SizerConfig{MinHeightPx: 5.0}
}

// #endregion config

// #region spec
// Spec is a renderable size for one stimulus presentation. Derived fresh
// per request and handed straight to the renderer; never retained.
type Spec struct {
	GapPx    float64
	StrokePx float64
	HeightPx float64

	WasClamped    bool    // raised to the minimum-height floor
	WasScaledDown bool    // shrunk proportionally to fit the display
	ScaleFactor   float64 // 1.0 if untouched
}

// #endregion spec

// #region advisory
// AdvisoryKind enumerates the non-error sizing outcomes worth surfacing.
type AdvisoryKind string

const (
	AdvisoryClamped    AdvisoryKind = "clamped_to_minimum"
	AdvisoryScaledDown AdvisoryKind = "scaled_down_to_fit"
)

// Advisory is a structured side-channel notification about a sizing
// adjustment. Consumed by logging or UI, never by program logic.
type Advisory struct {
	Kind    AdvisoryKind
	Message string
}

// #endregion advisory

// #region sizer
// Sizer converts acuity levels to pixel size specs for one display profile.
type Sizer struct {
	config SizerConfig
}

// NewSizer creates a sizer with the given policy.
func NewSizer(config SizerConfig) *Sizer {
	return &Sizer{config: config}
}

// Size computes the renderable spec for a level on a profile. Clamp and
// scale-down are expected branches of the contract reported via the
// returned advisory, not failures; the error path covers invalid inputs
// only.
func (s *Sizer) Size(level ladder.Level, profile device.Profile) (Spec, *Advisory, error) {
	gapMm, err := optics.GapSizeMm(level.GapArcmin, profile.ViewingDistanceMm)
	if err != nil {
		return Spec{}, nil, fmt.Errorf("size %q: %w", level.Label, err)
	}
	gapPx, err := optics.MmToPx(gapMm, profile.PPI)
	if err != nil {
		return Spec{}, nil, fmt.Errorf("size %q: %w", level.Label, err)
	}

	spec := Spec{
		GapPx:       gapPx,
		StrokePx:    gapPx,
		HeightPx:    heightPerGap * gapPx,
		ScaleFactor: 1.0,
	}
	var advisory *Advisory

	// Upper clamp: scale down proportionally to the smaller display
	// dimension so the stimulus fits the central region.
	bound := float64(profile.Resolution.MinDimension())
	if spec.HeightPx > bound {
		scale := bound / spec.HeightPx
		spec.HeightPx *= scale
		spec.GapPx *= scale
		spec.StrokePx *= scale
		spec.ScaleFactor = scale
		spec.WasScaledDown = true
		advisory = &Advisory{
			Kind:    AdvisoryScaledDown,
			Message: fmt.Sprintf("%s stimulus exceeds display bound %v px, scaled down by %.4f", level.Label, bound, scale),
		}
	}

	// Lower clamp: raise to the floor and recompute gap and stroke from
	// the same 1:5 ratio rather than leaving them unscaled.
	if spec.HeightPx < s.config.MinHeightPx {
		computed := spec.HeightPx
		spec.HeightPx = s.config.MinHeightPx
		spec.GapPx = s.config.MinHeightPx / heightPerGap
		spec.StrokePx = spec.GapPx
		spec.WasClamped = true
		advisory = &Advisory{
			Kind:    AdvisoryClamped,
			Message: fmt.Sprintf("%s stimulus very small (calculated height %.2f px), clamped to minimum %.1f px", level.Label, computed, s.config.MinHeightPx),
		}
	}

	return spec, advisory, nil
}

// #endregion sizer
