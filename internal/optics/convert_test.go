package optics

import (
	"errors"
	"math"
	"testing"

	"github.com/acuitylab/stimulus-engine/internal/device"
)

func TestGapSizeMmKnownValue(t *testing.T) {
	// 1 arcmin at 100 mm: 100 * tan(1/60 deg) ≈ 0.029089 mm
	got, err := GapSizeMm(1.0, 100.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.029089) > 1e-5 {
		t.Errorf("expected ≈0.029089 mm, got %.6f", got)
	}
}

func TestMmToPxKnownValue(t *testing.T) {
	// 0.029089 mm at 300 ppi ≈ 0.3436 px
	gapMm, err := GapSizeMm(1.0, 100.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	px, err := MmToPx(gapMm, 300.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(px-0.3436) > 1e-3 {
		t.Errorf("expected ≈0.3436 px, got %.4f", px)
	}
}

func TestGapSizeMmStrictlyIncreasing(t *testing.T) {
	angles := []float64{0.5, 1.0, 2.0, 3.0, 10.0, 30.0}
	var prev float64
	for i, a := range angles {
		mm, err := GapSizeMm(a, 100.0)
		if err != nil {
			t.Fatalf("unexpected error at %v arcmin: %v", a, err)
		}
		if i > 0 && mm <= prev {
			t.Fatalf("not increasing in angle: %v arcmin gave %.6f after %.6f", a, mm, prev)
		}
		prev = mm
	}

	distances := []float64{50, 100, 250, 1000, 5000}
	prev = 0
	for i, d := range distances {
		mm, err := GapSizeMm(1.0, d)
		if err != nil {
			t.Fatalf("unexpected error at %v mm: %v", d, err)
		}
		if i > 0 && mm <= prev {
			t.Fatalf("not increasing in distance: %v mm gave %.6f after %.6f", d, mm, prev)
		}
		prev = mm
	}
}

func TestExactTangentNotLinear(t *testing.T) {
	// At wide angles tan(θ) measurably exceeds θ; the converter must use
	// the tangent.
	const arcmin = 30 * 60.0 // 30 degrees
	mm, err := GapSizeMm(arcmin, 100.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	linear := 100.0 * ArcminToRad(arcmin)
	if mm <= linear {
		t.Errorf("expected tan result %.4f to exceed linear approximation %.4f", mm, linear)
	}
}

func TestPxToMmRoundTrip(t *testing.T) {
	for _, mm := range []float64{0.01, 0.5, 1.0, 25.4, 123.456} {
		px, err := MmToPx(mm, 300.0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		back, err := PxToMm(px, 300.0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(back-mm) > 1e-9 {
			t.Errorf("round trip %.6f -> %.6f -> %.6f", mm, px, back)
		}
	}
}

func TestMmToPxLinearInPPI(t *testing.T) {
	base, _ := MmToPx(1.0, 100.0)
	doubled, _ := MmToPx(1.0, 200.0)
	if math.Abs(doubled-2*base) > 1e-12 {
		t.Errorf("expected linearity in ppi: %.6f vs 2*%.6f", doubled, base)
	}
}

func TestInvalidInputsRejected(t *testing.T) {
	if _, err := GapSizeMm(0, 100); !errors.Is(err, device.ErrInvalidParameter) {
		t.Errorf("zero angle: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := GapSizeMm(-1, 100); !errors.Is(err, device.ErrInvalidParameter) {
		t.Errorf("negative angle: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := GapSizeMm(1, 0); !errors.Is(err, device.ErrInvalidParameter) {
		t.Errorf("zero distance: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := MmToPx(1, 0); !errors.Is(err, device.ErrInvalidParameter) {
		t.Errorf("zero ppi: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := PxToMm(1, -300); !errors.Is(err, device.ErrInvalidParameter) {
		t.Errorf("negative ppi: expected ErrInvalidParameter, got %v", err)
	}
}
