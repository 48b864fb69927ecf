package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := triallog.NewStore(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	r := mux.NewRouter()
	NewHandler(store).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func createSession(t *testing.T, srv *httptest.Server) SessionResponse {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/v1/sessions", CreateSessionRequest{
		ViewingDistanceMm: 100,
		PPI:               300,
		ResolutionW:       800,
		ResolutionH:       600,
		StartIndex:        1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session: status %d", resp.StatusCode)
	}
	var s SessionResponse
	decode(t, resp, &s)
	return s
}

func TestCreateSessionAndGet(t *testing.T) {
	srv := testServer(t)
	s := createSession(t, srv)

	if s.SessionID == "" || s.CurrentLabel != "6/12" || s.Mode != "Adaptive" {
		t.Fatalf("unexpected session: %+v", s)
	}

	resp, err := http.Get(srv.URL + "/api/v1/sessions/" + s.SessionID)
	if err != nil {
		t.Fatalf("GET session: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get session: status %d", resp.StatusCode)
	}
	var got SessionResponse
	decode(t, resp, &got)
	if got.SessionID != s.SessionID {
		t.Fatalf("expected %s, got %s", s.SessionID, got.SessionID)
	}
}

func TestCreateSessionRejectsBadProfile(t *testing.T) {
	srv := testServer(t)
	resp := postJSON(t, srv.URL+"/api/v1/sessions", CreateSessionRequest{
		ViewingDistanceMm: 0, PPI: 300, ResolutionW: 800, ResolutionH: 600,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPresentRespondFlow(t *testing.T) {
	srv := testServer(t)
	s := createSession(t, srv)
	base := srv.URL + "/api/v1/sessions/" + s.SessionID

	resp := postJSON(t, base+"/present", struct{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("present: status %d", resp.StatusCode)
	}
	var p PresentResponse
	decode(t, resp, &p)
	if p.TrialNum != 1 || p.LevelLabel != "6/12" || p.Orientation == "" {
		t.Fatalf("unexpected presentation: %+v", p)
	}
	if p.Spec.HeightPx <= 0 {
		t.Fatalf("missing spec: %+v", p.Spec)
	}

	resp = postJSON(t, base+"/respond", RespondRequest{Reported: p.Orientation})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("respond: status %d", resp.StatusCode)
	}
	var r RespondResponse
	decode(t, resp, &r)
	if !r.Correct || r.PrevIndex != 1 || r.NextIndex != 0 {
		t.Fatalf("unexpected respond result: %+v", r)
	}
	if r.CurrentLabel != "6/6" {
		t.Fatalf("expected 6/6 after correct answer, got %s", r.CurrentLabel)
	}
}

func TestRespondWithoutPresentConflicts(t *testing.T) {
	srv := testServer(t)
	s := createSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/sessions/"+s.SessionID+"/respond", RespondRequest{Reported: "Up"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestSelectLevel(t *testing.T) {
	srv := testServer(t)
	s := createSession(t, srv)
	base := srv.URL + "/api/v1/sessions/" + s.SessionID

	resp := postJSON(t, base+"/level", SelectLevelRequest{Label: "6/60"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select: status %d", resp.StatusCode)
	}
	var got SessionResponse
	decode(t, resp, &got)
	if got.CurrentLabel != "6/60" || got.CurrentIndex != 3 {
		t.Fatalf("select did not apply: %+v", got)
	}

	idx := 9
	resp = postJSON(t, base+"/level", SelectLevelRequest{Index: &idx})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range index, got %d", resp.StatusCode)
	}
}

func TestListTrials(t *testing.T) {
	srv := testServer(t)
	s := createSession(t, srv)
	base := srv.URL + "/api/v1/sessions/" + s.SessionID

	for i := 0; i < 2; i++ {
		var p PresentResponse
		decode(t, postJSON(t, base+"/present", struct{}{}), &p)
		resp := postJSON(t, base+"/respond", RespondRequest{Reported: p.Orientation})
		resp.Body.Close()
	}

	resp, err := http.Get(base + "/trials")
	if err != nil {
		t.Fatalf("GET trials: %v", err)
	}
	var trials []TrialResponse
	decode(t, resp, &trials)
	if len(trials) != 2 {
		t.Fatalf("expected 2 trials, got %d", len(trials))
	}
	if trials[0].TrialNum != 1 || !trials[0].Correct {
		t.Fatalf("unexpected first trial: %+v", trials[0])
	}
}

func TestUnknownSession404(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/sessions/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
