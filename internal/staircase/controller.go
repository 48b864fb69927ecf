package staircase

import (
	"fmt"

	"github.com/acuitylab/stimulus-engine/internal/ladder"
)

// #region controller
// Controller is a 1-up/1-down staircase over a ladder: one correct answer
// steps toward the harder end (smaller gap, lower index), one incorrect
// answer steps toward the easier end. Transitions saturate at the ladder
// boundaries; there is no terminal state.
type Controller struct {
	ladder *ladder.Ladder
	state  State
}

// NewController creates a controller starting at startIndex.
func NewController(l *ladder.Ladder, startIndex int, mode Mode) (*Controller, error) {
	if startIndex < 0 || startIndex >= l.Len() {
		return nil, fmt.Errorf("start index %d of %d levels: %w", startIndex, l.Len(), ladder.ErrOutOfRange)
	}
	return &Controller{
		ladder: l,
		state:  State{CurrentIndex: startIndex, Mode: mode},
	}, nil
}

// State returns a copy of the current staircase state.
func (c *Controller) State() State {
	return c.state
}

// CurrentIndex returns the active ladder index.
func (c *Controller) CurrentIndex() int {
	return c.state.CurrentIndex
}

// CurrentLevel returns the active ladder level.
func (c *Controller) CurrentLevel() ladder.Level {
	lv, _ := c.ladder.Get(c.state.CurrentIndex)
	return lv
}

// Mode returns the controller mode. The controller itself is agnostic to
// mode; the session driver must not call Step on a Manual session.
func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// SetMode switches between adaptive and manual stepping.
func (c *Controller) SetMode(mode Mode) {
	c.state.Mode = mode
}

// #endregion controller

// #region step
// Step applies one staircase transition for a trial outcome. A single
// ladder move per trial, saturating at index 0 (hardest) and Len-1
// (easiest); both boundary outcomes are defined, non-error results.
func (c *Controller) Step(outcome Outcome) StepResult {
	prev := c.state.CurrentIndex
	next := prev

	if outcome.Correct {
		// Harder: smaller gap, lower index.
		if next > 0 {
			next--
		}
	} else {
		// Easier: larger gap, higher index.
		if next < c.ladder.Len()-1 {
			next++
		}
	}

	c.state.CurrentIndex = next
	return StepResult{
		PrevIndex:  prev,
		NextIndex:  next,
		Moved:      next != prev,
		AtBoundary: next == 0 || next == c.ladder.Len()-1,
	}
}

// #endregion step

// #region select
// Select jumps directly to a ladder index (explicit operator selection).
// Out-of-range indices are rejected, not clamped: a direct request past
// the ladder is a caller bug, unlike staircase saturation.
func (c *Controller) Select(index int) error {
	if index < 0 || index >= c.ladder.Len() {
		return fmt.Errorf("select index %d of %d levels: %w", index, c.ladder.Len(), ladder.ErrOutOfRange)
	}
	c.state.CurrentIndex = index
	return nil
}

// SelectLabel jumps to the level with the given clinical label.
func (c *Controller) SelectLabel(label string) error {
	i, ok := c.ladder.IndexOf(label)
	if !ok {
		return fmt.Errorf("select label %q: %w", label, ladder.ErrOutOfRange)
	}
	c.state.CurrentIndex = i
	return nil
}

// #endregion select
