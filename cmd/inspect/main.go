package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to acuity_trials.db")
	last := flag.Int("last", 20, "show N most recent sessions")
	sessionID := flag.String("session", "", "show trial detail for one session")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/acuity_trials.db [--last N] [--session id] [--json]")
		os.Exit(2)
	}

	store, err := triallog.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *sessionID != "" {
		if err := runDetailMode(store, *sessionID, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(store, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	SessionID         string  `json:"session_id"`
	ViewingDistanceMm float64 `json:"viewing_distance_mm"`
	PPI               float64 `json:"ppi"`
	Resolution        string  `json:"resolution"`
	Mode              string  `json:"mode"`
	Trials            int     `json:"trials"`
	CreatedAt         string  `json:"created_at"`
}

func runListMode(store *triallog.Store, last int, jsonOut bool) error {
	sessions, err := store.ListSessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]listRow, len(sessions))
	for i, s := range sessions {
		trials, err := store.ListTrials(s.SessionID)
		if err != nil {
			return err
		}
		rows[i] = listRow{
			SessionID:         s.SessionID,
			ViewingDistanceMm: s.ViewingDistanceMm,
			PPI:               s.PPI,
			Resolution:        fmt.Sprintf("%dx%d", s.ResolutionW, s.ResolutionH),
			Mode:              string(s.Mode),
			Trials:            len(trials),
			CreatedAt:         s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %8s  %6s  %-11s  %-8s  %6s  %s\n",
		"Session", "Dist mm", "PPI", "Resolution", "Mode", "Trials", "Created")
	fmt.Printf("%-12s+-%8s+-%6s+-%-11s+-%-8s+-%6s+-%s\n",
		"------------", "--------", "------", "-----------", "--------", "------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-12s  %8.0f  %6.1f  %-11s  %-8s  %6d  %s\n",
			shortID(r.SessionID), r.ViewingDistanceMm, r.PPI, r.Resolution, r.Mode, r.Trials, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type trialRow struct {
	TrialNum   int     `json:"trial_num"`
	LevelLabel string  `json:"level_label"`
	Presented  string  `json:"presented"`
	Reported   string  `json:"reported"`
	Result     string  `json:"result"`
	PrevIndex  int     `json:"prev_index"`
	NextIndex  int     `json:"next_index"`
	HeightPx   float64 `json:"height_px"`
	Advisory   string  `json:"advisory,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func runDetailMode(store *triallog.Store, sessionID string, jsonOut bool) error {
	sess, err := store.GetSession(sessionID)
	if err != nil {
		return err
	}
	trials, err := store.ListTrials(sessionID)
	if err != nil {
		return err
	}

	rows := make([]trialRow, len(trials))
	for i, tr := range trials {
		rows[i] = trialRow{
			TrialNum:   tr.TrialNum,
			LevelLabel: tr.LevelLabel,
			Presented:  string(tr.Presented),
			Reported:   string(tr.Reported),
			Result:     tr.Result(),
			PrevIndex:  tr.PrevIndex,
			NextIndex:  tr.NextIndex,
			HeightPx:   tr.HeightPx,
			Advisory:   tr.Advisory,
			CreatedAt:  tr.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("Session:  %s\n", sess.SessionID)
	fmt.Printf("Profile:  %.0f mm @ %.1f ppi, %dx%d\n",
		sess.ViewingDistanceMm, sess.PPI, sess.ResolutionW, sess.ResolutionH)
	fmt.Printf("Mode:     %s (start index %d)\n", sess.Mode, sess.StartIndex)
	fmt.Printf("Created:  %s\n\n", sess.CreatedAt.Format("2006-01-02T15:04:05Z"))

	if len(rows) == 0 {
		fmt.Println("no trials logged")
		return nil
	}

	fmt.Printf("%-6s  %-6s  %-6s  %-6s  %-10s  %5s  %8s  %s\n",
		"Trial", "Level", "Shown", "Said", "Result", "Next", "Height", "Advisory")
	fmt.Printf("%-6s+-%-6s+-%-6s+-%-6s+-%-10s+-%5s+-%8s+-%s\n",
		"------", "------", "------", "------", "----------", "-----", "--------", "--------")
	for _, r := range rows {
		advisory := r.Advisory
		if advisory == "" {
			advisory = "—"
		}
		fmt.Printf("%-6d  %-6s  %-6s  %-6s  %-10s  %5d  %8.2f  %s\n",
			r.TrialNum, r.LevelLabel, r.Presented, r.Reported, r.Result, r.NextIndex, r.HeightPx, advisory)
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
