package staircase

// #region orientation
// Orientation is the direction of the optotype gap.
type Orientation string

const (
	Up    Orientation = "Up"
	Down  Orientation = "Down"
	Left  Orientation = "Left"
	Right Orientation = "Right"
)

// Orientations lists all gap directions in a fixed order.
var Orientations = []Orientation{Up, Down, Left, Right}

// Valid reports whether o is one of the four gap directions.
func (o Orientation) Valid() bool {
	switch o {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// #endregion orientation

// #region mode
// Mode selects how the session moves through the ladder.
type Mode string

const (
	ModeAdaptive Mode = "Adaptive"
	ModeManual   Mode = "Manual"
)

// #endregion mode

// #region outcome
// Outcome is one trial's presented/reported orientation pair. Correct is
// derived from equality of the two and never set independently.
type Outcome struct {
	Presented Orientation
	Reported  Orientation
	Correct   bool
}

// NewOutcome builds an outcome with Correct derived.
func NewOutcome(presented, reported Orientation) Outcome {
	return Outcome{
		Presented: presented,
		Reported:  reported,
		Correct:   presented == reported,
	}
}

// #endregion outcome

// #region state
// State is the mutable per-session staircase state. Owned by exactly one
// session and mutated only through the controller.
type State struct {
	CurrentIndex int
	Mode         Mode
}

// #endregion state

// #region step-result
// StepResult records what one staircase transition did.
type StepResult struct {
	PrevIndex  int
	NextIndex  int
	Moved      bool // false when saturated at a boundary
	AtBoundary bool // next index is the floor or the ceiling
}

// #endregion step-result
