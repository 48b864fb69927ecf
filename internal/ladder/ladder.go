package ladder

import (
	"errors"
	"fmt"
)

// #region errors
// ErrOutOfRange marks a direct ladder index outside [0, Len-1]. This is a
// caller bug, distinct from the natural floor/ceiling saturation of
// adaptive stepping, so it is rejected rather than clamped.
var ErrOutOfRange = errors.New("ladder index out of range")

// #endregion errors

// #region level
// Level is one discrete acuity step: a clinical label and the angular gap
// size of its optotype in arc-minutes.
type Level struct {
	Label     string
	GapArcmin float64
}

// #endregion level

// #region ladder
// Ladder is a fixed ordered catalog of acuity levels, hardest (smallest
// gap) first. Order defines adjacency for adaptive stepping.
type Ladder struct {
	levels []Level
	byName map[string]int
}

// New validates and constructs a ladder. Gap angles must be strictly
// positive and strictly increasing in ladder order; labels must be unique.
func New(levels []Level) (*Ladder, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("ladder needs at least one level")
	}
	byName := make(map[string]int, len(levels))
	for i, lv := range levels {
		if lv.GapArcmin <= 0 {
			return nil, fmt.Errorf("level %q: gap %v arcmin must be positive", lv.Label, lv.GapArcmin)
		}
		if i > 0 && lv.GapArcmin <= levels[i-1].GapArcmin {
			return nil, fmt.Errorf("level %q: gap %v arcmin not greater than previous %v", lv.Label, lv.GapArcmin, levels[i-1].GapArcmin)
		}
		if _, dup := byName[lv.Label]; dup {
			return nil, fmt.Errorf("duplicate level label %q", lv.Label)
		}
		byName[lv.Label] = i
	}
	ls := make([]Level, len(levels))
	copy(ls, levels)
	return &Ladder{levels: ls, byName: byName}, nil
}

// Default returns the standard four-level catalog.
func Default() *Ladder {
	l, err := New([]Level{
		{Label: "6/6", GapArcmin: 1.0},
		{Label: "6/12", GapArcmin: 2.0},
		{Label: "6/18", GapArcmin: 3.0},
		{Label: "6/60", GapArcmin: 10.0},
	})
	if err != nil {
		panic(err) // static catalog, cannot fail
	}
	return l
}

// Len returns the number of levels.
func (l *Ladder) Len() int {
	return len(l.levels)
}

// Get returns the level at index i, or ErrOutOfRange.
func (l *Ladder) Get(i int) (Level, error) {
	if i < 0 || i >= len(l.levels) {
		return Level{}, fmt.Errorf("index %d of %d levels: %w", i, len(l.levels), ErrOutOfRange)
	}
	return l.levels[i], nil
}

// IndexOf returns the index of the level with the given label.
func (l *Ladder) IndexOf(label string) (int, bool) {
	i, ok := l.byName[label]
	return i, ok
}

// Levels returns a copy of the catalog in ladder order.
func (l *Ladder) Levels() []Level {
	out := make([]Level, len(l.levels))
	copy(out, l.levels)
	return out
}

// #endregion ladder
