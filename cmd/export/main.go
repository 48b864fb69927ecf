package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/acuitylab/stimulus-engine/internal/replay"
	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

// #region main

func main() {
	dbPath := flag.String("db", envOr("ACUITY_DB", "acuity_trials.db"), "path to trial log database")
	sessionID := flag.String("session", "", "session ID to export (required)")
	csvPath := flag.String("csv", "", "write trial log CSV to this path")
	fixturePath := flag.String("fixture", "", "write replay fixture JSON to this path")
	flag.Parse()

	if *sessionID == "" || (*csvPath == "" && *fixturePath == "") {
		fmt.Fprintln(os.Stderr, "usage: export --db acuity_trials.db --session <id> [--csv out.csv] [--fixture out.json]")
		os.Exit(2)
	}

	store, err := triallog.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(2)
	}
	defer store.Close()

	if *csvPath != "" {
		if err := exportCSV(store, *sessionID, *csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "export csv: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *csvPath)
	}
	if *fixturePath != "" {
		if err := exportFixture(store, *sessionID, *fixturePath); err != nil {
			fmt.Fprintf(os.Stderr, "export fixture: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *fixturePath)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion main

// #region csv

func exportCSV(store *triallog.Store, sessionID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return store.ExportCSV(f, sessionID)
}

// #endregion csv

// #region fixture

// exportFixture rebuilds a replay fixture from a logged session so the
// recorded staircase walk can be re-verified offline.
func exportFixture(store *triallog.Store, sessionID, path string) error {
	sess, err := store.GetSession(sessionID)
	if err != nil {
		return err
	}
	trials, err := store.ListTrials(sessionID)
	if err != nil {
		return err
	}
	if len(trials) == 0 {
		return fmt.Errorf("no trials logged for session %s", sessionID)
	}

	fix := replay.Fixture{
		Description: fmt.Sprintf("session %s exported %s", sessionID, sess.CreatedAt.Format("2006-01-02")),
		Profile: replay.FixtureProfile{
			ViewingDistanceMm: sess.ViewingDistanceMm,
			PPI:               sess.PPI,
			ResolutionW:       sess.ResolutionW,
			ResolutionH:       sess.ResolutionH,
		},
		StartIndex:      sess.StartIndex,
		Trials:          make([]replay.FixtureTrial, len(trials)),
		ExpectedResults: make([]replay.FixtureExpected, len(trials)),
	}
	for i, tr := range trials {
		fix.Trials[i] = replay.FixtureTrial{
			Presented: string(tr.Presented),
			Reported:  string(tr.Reported),
		}
		fix.ExpectedResults[i] = replay.FixtureExpected{
			TrialNum:  tr.TrialNum,
			NextIndex: tr.NextIndex,
		}
	}

	data, err := json.MarshalIndent(&fix, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// #endregion fixture
