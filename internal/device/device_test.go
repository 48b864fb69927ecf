package device

import (
	"errors"
	"testing"
)

func TestNewProfileValid(t *testing.T) {
	p, err := NewProfile(100.0, 300.0, Resolution{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ViewingDistanceMm != 100.0 || p.PPI != 300.0 {
		t.Fatalf("profile fields not preserved: %+v", p)
	}
}

func TestNewProfileRejectsNonPositive(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		ppi      float64
		res      Resolution
	}{
		{"zero distance", 0, 300, Resolution{800, 600}},
		{"negative distance", -5, 300, Resolution{800, 600}},
		{"zero ppi", 100, 0, Resolution{800, 600}},
		{"negative ppi", 100, -1, Resolution{800, 600}},
		{"zero width", 100, 300, Resolution{0, 600}},
		{"zero height", 100, 300, Resolution{800, 0}},
		{"negative height", 100, 300, Resolution{800, -600}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProfile(tc.distance, tc.ppi, tc.res)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestResolutionMinDimension(t *testing.T) {
	if got := (Resolution{800, 600}).MinDimension(); got != 600 {
		t.Errorf("expected 600, got %d", got)
	}
	if got := (Resolution{600, 800}).MinDimension(); got != 600 {
		t.Errorf("expected 600, got %d", got)
	}
	if got := (Resolution{512, 512}).MinDimension(); got != 512 {
		t.Errorf("expected 512, got %d", got)
	}
}
