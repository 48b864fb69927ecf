package replay

import (
	"fmt"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/ladder"
	"github.com/acuitylab/stimulus-engine/internal/staircase"
	"github.com/acuitylab/stimulus-engine/internal/stimulus"
)

// #region types
// Trial is a single recorded presentation/response pair for replay.
type Trial struct {
	Presented staircase.Orientation
	Reported  staircase.Orientation
}

// Config bundles everything a replay run needs.
type Config struct {
	Profile    device.Profile
	Ladder     *ladder.Ladder
	StartIndex int
	Sizer      stimulus.SizerConfig
}

// Result captures the outcome of replaying one trial through the
// staircase and sizing pipeline.
type Result struct {
	TrialNum   int
	LevelLabel string
	Correct    bool
	PrevIndex  int
	NextIndex  int

	HeightPx      float64
	WasClamped    bool
	WasScaledDown bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalTrials int
	Correct     int
	Incorrect   int
	Saturated   int // steps that hit a ladder boundary without moving
	FinalIndex  int
	FinalLabel  string
}

// #endregion types

// #region replay
// Replay runs recorded trials through a fresh controller and sizer:
// size → outcome → step per trial. Operates entirely in-memory; the
// pipeline is deterministic, so identical inputs always reproduce the
// recorded staircase walk.
func Replay(cfg Config, trials []Trial) ([]Result, error) {
	l := cfg.Ladder
	if l == nil {
		l = ladder.Default()
	}
	controller, err := staircase.NewController(l, cfg.StartIndex, staircase.ModeAdaptive)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	sizerCfg := cfg.Sizer
	if sizerCfg == (stimulus.SizerConfig{}) {
		sizerCfg = stimulus.DefaultSizerConfig()
	}
	sizer := stimulus.NewSizer(sizerCfg)

	results := make([]Result, 0, len(trials))
	for i, tr := range trials {
		level := controller.CurrentLevel()
		spec, _, err := sizer.Size(level, cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("replay trial %d: %w", i+1, err)
		}

		outcome := staircase.NewOutcome(tr.Presented, tr.Reported)
		step := controller.Step(outcome)

		results = append(results, Result{
			TrialNum:      i + 1,
			LevelLabel:    level.Label,
			Correct:       outcome.Correct,
			PrevIndex:     step.PrevIndex,
			NextIndex:     step.NextIndex,
			HeightPx:      spec.HeightPx,
			WasClamped:    spec.WasClamped,
			WasScaledDown: spec.WasScaledDown,
		})
	}
	return results, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(l *ladder.Ladder, results []Result) Summary {
	s := Summary{TotalTrials: len(results)}
	for _, r := range results {
		if r.Correct {
			s.Correct++
		} else {
			s.Incorrect++
		}
		if r.NextIndex == r.PrevIndex {
			s.Saturated++
		}
		s.FinalIndex = r.NextIndex
	}
	if lv, err := l.Get(s.FinalIndex); err == nil {
		s.FinalLabel = lv.Label
	}
	return s
}

// #endregion replay
