package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/ladder"
	"github.com/acuitylab/stimulus-engine/internal/staircase"
	"github.com/acuitylab/stimulus-engine/internal/stimulus"
	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

// ErrNoPresentation marks a response arriving before any stimulus was
// presented.
var ErrNoPresentation = errors.New("no pending presentation")

// #region config
// Config assembles everything a session needs. Store may be nil for an
// unlogged session; Picker defaults to a time-seeded one.
type Config struct {
	Profile    device.Profile
	Ladder     *ladder.Ladder
	StartIndex int
	Mode       staircase.Mode
	Sizer      stimulus.SizerConfig
	Picker     *staircase.Picker
	Store      *triallog.Store
}

// #endregion config

// #region presentation
// Presentation is one trial's stimulus as handed to the renderer.
type Presentation struct {
	TrialNum    int
	Index       int
	Level       ladder.Level
	Orientation staircase.Orientation
	Spec        stimulus.Spec
	Advisory    *stimulus.Advisory
}

// TrialResult is the outcome of one completed trial.
type TrialResult struct {
	Outcome staircase.Outcome
	Step    staircase.StepResult
	Record  triallog.TrialRecord
}

// #endregion presentation

// #region session
// Session drives one subject's test run: it owns the device profile, the
// staircase state, the orientation picker, and the trial log handle. One
// session is one sequential caller; concurrent sessions each get their
// own Session and never share state.
type Session struct {
	id         string
	profile    device.Profile
	ladder     *ladder.Ladder
	controller *staircase.Controller
	sizer      *stimulus.Sizer
	picker     *staircase.Picker
	store      *triallog.Store

	trialNum int
	pending  *Presentation
}

// New validates the config, registers the session in the store (when one
// is attached), and returns a ready session.
func New(cfg Config) (*Session, error) {
	if cfg.Ladder == nil {
		cfg.Ladder = ladder.Default()
	}
	if cfg.Mode == "" {
		cfg.Mode = staircase.ModeAdaptive
	}
	if cfg.Sizer == (stimulus.SizerConfig{}) {
		cfg.Sizer = stimulus.DefaultSizerConfig()
	}
	controller, err := staircase.NewController(cfg.Ladder, cfg.StartIndex, cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	picker := cfg.Picker
	if picker == nil {
		picker = staircase.NewSeededPicker(int64(uuid.New().ID()))
	}

	s := &Session{
		id:         uuid.New().String(),
		profile:    cfg.Profile,
		ladder:     cfg.Ladder,
		controller: controller,
		sizer:      stimulus.NewSizer(cfg.Sizer),
		picker:     picker,
		store:      cfg.Store,
	}

	if s.store != nil {
		err := s.store.CreateSession(triallog.SessionRecord{
			SessionID:         s.id,
			ViewingDistanceMm: cfg.Profile.ViewingDistanceMm,
			PPI:               cfg.Profile.PPI,
			ResolutionW:       cfg.Profile.Resolution.Width,
			ResolutionH:       cfg.Profile.Resolution.Height,
			StartIndex:        cfg.StartIndex,
			Mode:              cfg.Mode,
		})
		if err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Profile returns the display profile the session was created with.
func (s *Session) Profile() device.Profile {
	return s.profile
}

// Mode returns the current stepping mode.
func (s *Session) Mode() staircase.Mode {
	return s.controller.Mode()
}

// SetMode toggles between adaptive and manual stepping.
func (s *Session) SetMode(mode staircase.Mode) {
	s.controller.SetMode(mode)
}

// CurrentIndex returns the active ladder index.
func (s *Session) CurrentIndex() int {
	return s.controller.CurrentIndex()
}

// CurrentLevel returns the active ladder level.
func (s *Session) CurrentLevel() ladder.Level {
	return s.controller.CurrentLevel()
}

// Ladder returns the session's level catalog.
func (s *Session) Ladder() *ladder.Ladder {
	return s.ladder
}

// #endregion session

// #region present
// Present sizes the current level for this session's display and draws a
// fresh random orientation. The returned presentation stays pending until
// Respond consumes it; calling Present again rerolls the trial.
func (s *Session) Present() (Presentation, error) {
	level := s.controller.CurrentLevel()
	spec, advisory, err := s.sizer.Size(level, s.profile)
	if err != nil {
		return Presentation{}, fmt.Errorf("present: %w", err)
	}
	p := Presentation{
		TrialNum:    s.trialNum + 1,
		Index:       s.controller.CurrentIndex(),
		Level:       level,
		Orientation: s.picker.Pick(),
		Spec:        spec,
		Advisory:    advisory,
	}
	s.pending = &p
	return p, nil
}

// #endregion present

// #region respond
// Respond consumes the pending presentation with the subject's reported
// orientation, steps the staircase (adaptive mode only), and logs the
// trial.
func (s *Session) Respond(reported staircase.Orientation) (TrialResult, error) {
	if s.pending == nil {
		return TrialResult{}, fmt.Errorf("respond: %w", ErrNoPresentation)
	}
	if !reported.Valid() {
		return TrialResult{}, fmt.Errorf("respond: orientation %q: %w", reported, device.ErrInvalidParameter)
	}

	p := *s.pending
	s.pending = nil
	s.trialNum++

	outcome := staircase.NewOutcome(p.Orientation, reported)
	mode := s.controller.Mode()

	// Manual mode never steps; level changes come only from explicit
	// operator selection.
	step := staircase.StepResult{PrevIndex: p.Index, NextIndex: p.Index}
	if mode == staircase.ModeAdaptive {
		step = s.controller.Step(outcome)
	}

	rec := triallog.TrialRecord{
		SessionID:   s.id,
		TrialNum:    p.TrialNum,
		LevelLabel:  p.Level.Label,
		GapArcmin:   p.Level.GapArcmin,
		Presented:   outcome.Presented,
		Reported:    outcome.Reported,
		Correct:     outcome.Correct,
		PrevIndex:   step.PrevIndex,
		NextIndex:   step.NextIndex,
		Mode:        mode,
		GapPx:       p.Spec.GapPx,
		StrokePx:    p.Spec.StrokePx,
		HeightPx:    p.Spec.HeightPx,
		ScaleFactor: p.Spec.ScaleFactor,
		WasClamped:  p.Spec.WasClamped,
		WasScaled:   p.Spec.WasScaledDown,
	}
	if p.Advisory != nil {
		rec.Advisory = p.Advisory.Message
	}

	if s.store != nil {
		if err := s.store.LogTrial(rec); err != nil {
			return TrialResult{}, fmt.Errorf("respond: %w", err)
		}
	}

	return TrialResult{Outcome: outcome, Step: step, Record: rec}, nil
}

// #endregion respond

// #region select
// SelectLevel jumps to a ladder index (operator override). Any pending
// presentation is discarded.
func (s *Session) SelectLevel(index int) error {
	if err := s.controller.Select(index); err != nil {
		return fmt.Errorf("select level: %w", err)
	}
	s.pending = nil
	return nil
}

// SelectLabel jumps to the level with the given clinical label.
func (s *Session) SelectLabel(label string) error {
	if err := s.controller.SelectLabel(label); err != nil {
		return fmt.Errorf("select label: %w", err)
	}
	s.pending = nil
	return nil
}

// #endregion select
