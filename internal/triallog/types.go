package triallog

import (
	"time"

	"github.com/acuitylab/stimulus-engine/internal/staircase"
)

// #region session-record
// SessionRecord describes one testing session and the display profile it
// was configured with.
type SessionRecord struct {
	SessionID         string
	ViewingDistanceMm float64
	PPI               float64
	ResolutionW       int
	ResolutionH       int
	StartIndex        int
	Mode              staircase.Mode
	CreatedAt         time.Time
}

// #endregion session-record

// #region trial-record
// TrialRecord is one row of the trial log: the presentation, the response,
// the staircase move it caused, and the sizing advisories in effect.
type TrialRecord struct {
	SessionID   string
	TrialNum    int
	LevelLabel  string
	GapArcmin   float64
	Presented   staircase.Orientation
	Reported    staircase.Orientation
	Correct     bool
	PrevIndex   int
	NextIndex   int
	Mode        staircase.Mode
	GapPx       float64
	StrokePx    float64
	HeightPx    float64
	ScaleFactor float64
	WasClamped  bool
	WasScaled   bool
	Advisory    string
	CreatedAt   time.Time
}

// Result renders the correctness as the log's Correct/Incorrect wording.
func (r TrialRecord) Result() string {
	if r.Correct {
		return "Correct"
	}
	return "Incorrect"
}

// #endregion trial-record
