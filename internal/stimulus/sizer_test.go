package stimulus

import (
	"errors"
	"math"
	"testing"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/ladder"
)

func testProfile(t *testing.T) device.Profile {
	t.Helper()
	p, err := device.NewProfile(100.0, 300.0, device.Resolution{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	return p
}

func TestSizeKnownValueMidLadder(t *testing.T) {
	s := NewSizer(DefaultSizerConfig())
	spec, advisory, err := s.Size(ladder.Level{Label: "6/60", GapArcmin: 10.0}, testProfile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(spec.HeightPx-17.18) > 0.01 {
		t.Errorf("expected height ≈17.18 px, got %.4f", spec.HeightPx)
	}
	if math.Abs(spec.GapPx-3.436) > 0.01 {
		t.Errorf("expected gap ≈3.436 px, got %.4f", spec.GapPx)
	}
	if spec.WasClamped || spec.WasScaledDown {
		t.Errorf("expected untouched spec, got %+v", spec)
	}
	if spec.ScaleFactor != 1.0 {
		t.Errorf("expected scale factor 1.0, got %v", spec.ScaleFactor)
	}
	if advisory != nil {
		t.Errorf("expected no advisory, got %+v", advisory)
	}
}

func TestSizeClampsToFloor(t *testing.T) {
	s := NewSizer(DefaultSizerConfig())
	// 1 arcmin at 100 mm / 300 ppi computes ≈1.72 px height, well below
	// the 5 px floor.
	spec, advisory, err := s.Size(ladder.Level{Label: "6/6", GapArcmin: 1.0}, testProfile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spec.WasClamped {
		t.Fatal("expected WasClamped")
	}
	if spec.WasScaledDown {
		t.Fatal("clamp and scale-down are mutually exclusive here")
	}
	if spec.HeightPx != 5.0 {
		t.Errorf("expected floor height 5.0, got %.4f", spec.HeightPx)
	}
	// The 1:5 proportion is recomputed, not left at the raw values.
	if math.Abs(spec.HeightPx-5*spec.GapPx) > 1e-9 {
		t.Errorf("proportion broken: height %.4f vs 5*gap %.4f", spec.HeightPx, 5*spec.GapPx)
	}
	if spec.StrokePx != spec.GapPx {
		t.Errorf("stroke %.4f should equal gap %.4f", spec.StrokePx, spec.GapPx)
	}
	if advisory == nil || advisory.Kind != AdvisoryClamped {
		t.Fatalf("expected clamp advisory, got %+v", advisory)
	}
}

func TestSizeScalesDownToDisplay(t *testing.T) {
	s := NewSizer(DefaultSizerConfig())
	// A very large angle whose unclamped height exceeds min(800, 600).
	spec, advisory, err := s.Size(ladder.Level{Label: "huge", GapArcmin: 600.0}, testProfile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spec.WasScaledDown {
		t.Fatal("expected WasScaledDown")
	}
	if spec.WasClamped {
		t.Fatal("clamp and scale-down are mutually exclusive here")
	}
	if spec.HeightPx > 600.0+1e-9 {
		t.Errorf("height %.4f exceeds display bound 600", spec.HeightPx)
	}
	if spec.ScaleFactor >= 1.0 || spec.ScaleFactor <= 0 {
		t.Errorf("expected scale factor in (0,1), got %v", spec.ScaleFactor)
	}
	// Proportional scaling: gap/height ratio unchanged (1:5).
	if math.Abs(spec.GapPx/spec.HeightPx-0.2) > 1e-9 {
		t.Errorf("gap/height ratio drifted: %.6f", spec.GapPx/spec.HeightPx)
	}
	if advisory == nil || advisory.Kind != AdvisoryScaledDown {
		t.Fatalf("expected scale advisory, got %+v", advisory)
	}
}

func TestSizeProportionHolds(t *testing.T) {
	s := NewSizer(DefaultSizerConfig())
	for _, lv := range ladder.Default().Levels() {
		spec, _, err := s.Size(lv, testProfile(t))
		if err != nil {
			t.Fatalf("%s: %v", lv.Label, err)
		}
		if math.Abs(spec.HeightPx-5*spec.GapPx) > 1e-9 {
			t.Errorf("%s: height %.4f vs 5*gap %.4f", lv.Label, spec.HeightPx, 5*spec.GapPx)
		}
		if math.Abs(spec.StrokePx-spec.GapPx) > 1e-9 {
			t.Errorf("%s: stroke %.4f vs gap %.4f", lv.Label, spec.StrokePx, spec.GapPx)
		}
	}
}

func TestSizeInvalidLevelRejected(t *testing.T) {
	s := NewSizer(DefaultSizerConfig())
	_, _, err := s.Size(ladder.Level{Label: "bad", GapArcmin: 0}, testProfile(t))
	if !errors.Is(err, device.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}
