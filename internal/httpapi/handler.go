package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/ladder"
	"github.com/acuitylab/stimulus-engine/internal/session"
	"github.com/acuitylab/stimulus-engine/internal/staircase"
	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

// #region handler
// Handler serves the multi-session HTTP API. Each device gets its own
// session with its own profile and staircase state; the per-session lock
// keeps the one-sequential-caller contract when requests arrive
// concurrently.
type Handler struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	store    *triallog.Store
}

type sessionEntry struct {
	mu   sync.Mutex
	sess *session.Session
}

// NewHandler creates a handler. store may be nil to disable persistence.
func NewHandler(store *triallog.Store) *Handler {
	return &Handler{
		sessions: make(map[string]*sessionEntry),
		store:    store,
	}
}

// Routes registers the API on a router under /api/v1.
func (h *Handler) Routes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/present", h.Present).Methods("POST")
	api.HandleFunc("/sessions/{id}/respond", h.Respond).Methods("POST")
	api.HandleFunc("/sessions/{id}/level", h.SelectLevel).Methods("POST")
	api.HandleFunc("/sessions/{id}/trials", h.ListTrials).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
}

func (h *Handler) entry(id string) (*sessionEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.sessions[id]
	return e, ok
}

// #endregion handler

// #region create
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	profile, err := device.NewProfile(req.ViewingDistanceMm, req.PPI,
		device.Resolution{Width: req.ResolutionW, Height: req.ResolutionH})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	mode := staircase.ModeAdaptive
	switch req.Mode {
	case "", string(staircase.ModeAdaptive):
	case string(staircase.ModeManual):
		mode = staircase.ModeManual
	default:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "mode must be 'Adaptive' or 'Manual'"})
		return
	}

	sess, err := session.New(session.Config{
		Profile:    profile,
		StartIndex: req.StartIndex,
		Mode:       mode,
		Store:      h.store,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ladder.ErrOutOfRange) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}

	h.mu.Lock()
	h.sessions[sess.ID()] = &sessionEntry{sess: sess}
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

// #endregion create

// #region get
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entry(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}
	e.mu.Lock()
	resp := sessionResponse(e.sess)
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// #endregion get

// #region present
func (h *Handler) Present(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entry(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	e.mu.Lock()
	p, err := e.sess.Present()
	e.mu.Unlock()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := PresentResponse{
		TrialNum:    p.TrialNum,
		LevelLabel:  p.Level.Label,
		GapArcmin:   p.Level.GapArcmin,
		Orientation: string(p.Orientation),
		Spec: SpecResponse{
			GapPx:         p.Spec.GapPx,
			StrokePx:      p.Spec.StrokePx,
			HeightPx:      p.Spec.HeightPx,
			ScaleFactor:   p.Spec.ScaleFactor,
			WasClamped:    p.Spec.WasClamped,
			WasScaledDown: p.Spec.WasScaledDown,
		},
	}
	if p.Advisory != nil {
		resp.Advisory = p.Advisory.Message
	}
	writeJSON(w, http.StatusOK, resp)
}

// #endregion present

// #region respond
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entry(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	e.mu.Lock()
	res, err := e.sess.Respond(staircase.Orientation(req.Reported))
	label := e.sess.CurrentLevel().Label
	e.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoPresentation):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, device.ErrInvalidParameter):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, RespondResponse{
		Correct:      res.Outcome.Correct,
		PrevIndex:    res.Step.PrevIndex,
		NextIndex:    res.Step.NextIndex,
		CurrentLabel: label,
	})
}

// #endregion respond

// #region select
func (h *Handler) SelectLevel(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entry(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	var req SelectLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Index == nil && req.Label == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "index or label required"})
		return
	}

	e.mu.Lock()
	var err error
	if req.Index != nil {
		err = e.sess.SelectLevel(*req.Index)
	} else {
		err = e.sess.SelectLabel(req.Label)
	}
	resp := sessionResponse(e.sess)
	e.mu.Unlock()

	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// #endregion select

// #region trials
func (h *Handler) ListTrials(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.entry(id); !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}
	if h.store == nil {
		writeJSON(w, http.StatusOK, []TrialResponse{})
		return
	}

	trials, err := h.store.ListTrials(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := make([]TrialResponse, len(trials))
	for i, tr := range trials {
		resp[i] = TrialResponse{
			TrialNum:   tr.TrialNum,
			LevelLabel: tr.LevelLabel,
			Presented:  string(tr.Presented),
			Reported:   string(tr.Reported),
			Correct:    tr.Correct,
			PrevIndex:  tr.PrevIndex,
			NextIndex:  tr.NextIndex,
			HeightPx:   tr.HeightPx,
			Mode:       string(tr.Mode),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// #endregion trials

// #region helpers
func sessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		SessionID:    s.ID(),
		CurrentIndex: s.CurrentIndex(),
		CurrentLabel: s.CurrentLevel().Label,
		Mode:         string(s.Mode()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// #endregion helpers
