package staircase

import "math/rand"

// #region picker
// Picker draws presentation orientations. Each draw is uniform over the
// four gap directions and independent of previous draws; the staircase
// relies on that for unbiased psychophysical behavior. The random source
// is injected so tests can seed it deterministically.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker creates a picker over the given source.
func NewPicker(rnd *rand.Rand) *Picker {
	return &Picker{rnd: rnd}
}

// NewSeededPicker creates a picker with its own source from seed.
func NewSeededPicker(seed int64) *Picker {
	return NewPicker(rand.New(rand.NewSource(seed)))
}

// Pick draws one orientation.
func (p *Picker) Pick() Orientation {
	return Orientations[p.rnd.Intn(len(Orientations))]
}

// #endregion picker
