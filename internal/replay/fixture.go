package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/ladder"
	"github.com/acuitylab/stimulus-engine/internal/staircase"
	"github.com/acuitylab/stimulus-engine/internal/stimulus"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string            `json:"description"`
	Profile         FixtureProfile    `json:"profile"`
	StartIndex      int               `json:"start_index"`
	MinHeightPx     float64           `json:"min_height_px,omitempty"`
	Levels          []FixtureLevel    `json:"levels,omitempty"`
	Trials          []FixtureTrial    `json:"trials"`
	ExpectedResults []FixtureExpected `json:"expected_results"`
}

// FixtureProfile mirrors device.Profile with JSON tags.
type FixtureProfile struct {
	ViewingDistanceMm float64 `json:"viewing_distance_mm"`
	PPI               float64 `json:"ppi"`
	ResolutionW       int     `json:"resolution_w"`
	ResolutionH       int     `json:"resolution_h"`
}

// FixtureLevel mirrors ladder.Level with JSON tags. When Levels is empty
// the fixture runs against the default catalog.
type FixtureLevel struct {
	Label     string  `json:"label"`
	GapArcmin float64 `json:"gap_arcmin"`
}

// FixtureTrial mirrors Trial with JSON tags.
type FixtureTrial struct {
	Presented string `json:"presented"`
	Reported  string `json:"reported"`
}

// FixtureExpected captures the expected ladder index after each trial.
type FixtureExpected struct {
	TrialNum  int `json:"trial_num"`
	NextIndex int `json:"next_index"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToConfig converts the fixture header to a replay Config.
func (f *Fixture) ToConfig() (Config, error) {
	profile, err := device.NewProfile(
		f.Profile.ViewingDistanceMm,
		f.Profile.PPI,
		device.Resolution{Width: f.Profile.ResolutionW, Height: f.Profile.ResolutionH},
	)
	if err != nil {
		return Config{}, fmt.Errorf("fixture profile: %w", err)
	}

	cfg := Config{
		Profile:    profile,
		StartIndex: f.StartIndex,
		Sizer:      stimulus.DefaultSizerConfig(),
	}
	if f.MinHeightPx > 0 {
		cfg.Sizer = stimulus.SizerConfig{MinHeightPx: f.MinHeightPx}
	}
	if len(f.Levels) > 0 {
		levels := make([]ladder.Level, len(f.Levels))
		for i, lv := range f.Levels {
			levels[i] = ladder.Level{Label: lv.Label, GapArcmin: lv.GapArcmin}
		}
		l, err := ladder.New(levels)
		if err != nil {
			return Config{}, fmt.Errorf("fixture ladder: %w", err)
		}
		cfg.Ladder = l
	}
	return cfg, nil
}

// ToTrials converts the fixture trial list to domain trials.
func (f *Fixture) ToTrials() []Trial {
	trials := make([]Trial, len(f.Trials))
	for i, tr := range f.Trials {
		trials[i] = Trial{
			Presented: staircase.Orientation(tr.Presented),
			Reported:  staircase.Orientation(tr.Reported),
		}
	}
	return trials
}

// #endregion fixture-loader
