package httpapi

// #region requests
// CreateSessionRequest carries the device profile and staircase start for
// a new testing session.
type CreateSessionRequest struct {
	ViewingDistanceMm float64 `json:"viewing_distance_mm"`
	PPI               float64 `json:"ppi"`
	ResolutionW       int     `json:"resolution_w"`
	ResolutionH       int     `json:"resolution_h"`
	StartIndex        int     `json:"start_index"`
	Mode              string  `json:"mode,omitempty"` // "Adaptive" (default) | "Manual"
}

// RespondRequest carries the subject's reported gap direction.
type RespondRequest struct {
	Reported string `json:"reported"`
}

// SelectLevelRequest jumps the session to an explicit level, by index or
// by clinical label.
type SelectLevelRequest struct {
	Index *int   `json:"index,omitempty"`
	Label string `json:"label,omitempty"`
}

// #endregion requests

// #region responses
// SessionResponse describes a session's current staircase position.
type SessionResponse struct {
	SessionID    string `json:"session_id"`
	CurrentIndex int    `json:"current_index"`
	CurrentLabel string `json:"current_label"`
	Mode         string `json:"mode"`
}

// SpecResponse mirrors the computed stimulus size.
type SpecResponse struct {
	GapPx         float64 `json:"gap_px"`
	StrokePx      float64 `json:"stroke_px"`
	HeightPx      float64 `json:"height_px"`
	ScaleFactor   float64 `json:"scale_factor"`
	WasClamped    bool    `json:"was_clamped"`
	WasScaledDown bool    `json:"was_scaled_down"`
}

// PresentResponse is one trial presentation for the device to render.
type PresentResponse struct {
	TrialNum    int          `json:"trial_num"`
	LevelLabel  string       `json:"level_label"`
	GapArcmin   float64      `json:"gap_arcmin"`
	Orientation string       `json:"orientation"`
	Spec        SpecResponse `json:"spec"`
	Advisory    string       `json:"advisory,omitempty"`
}

// RespondResponse reports the trial outcome and the staircase move.
type RespondResponse struct {
	Correct      bool   `json:"correct"`
	PrevIndex    int    `json:"prev_index"`
	NextIndex    int    `json:"next_index"`
	CurrentLabel string `json:"current_label"`
}

// TrialResponse is one logged trial row.
type TrialResponse struct {
	TrialNum   int     `json:"trial_num"`
	LevelLabel string  `json:"level_label"`
	Presented  string  `json:"presented"`
	Reported   string  `json:"reported"`
	Correct    bool    `json:"correct"`
	PrevIndex  int     `json:"prev_index"`
	NextIndex  int     `json:"next_index"`
	HeightPx   float64 `json:"height_px"`
	Mode       string  `json:"mode"`
}

// ErrorResponse carries a client-facing diagnostic.
type ErrorResponse struct {
	Error string `json:"error"`
}

// #endregion responses
