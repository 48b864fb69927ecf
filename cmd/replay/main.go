package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/replay"
	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to trial log database (DB mode)")
	sessionID := flag.String("session", "", "session ID to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	fixtureMode := *fixturePath != ""
	dbMode := *dbPath != "" && *sessionID != ""
	if fixtureMode == dbMode {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/acuity_trials.db --session <id>")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if fixtureMode {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *sessionID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region db-mode

func runDBMode(dbPath, sessionID string) int {
	store, err := triallog.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	sess, err := store.GetSession(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get session: %v\n", err)
		return 2
	}
	logged, err := store.ListTrials(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list trials: %v\n", err)
		return 2
	}
	if len(logged) == 0 {
		fmt.Fprintf(os.Stderr, "no trials logged for session %s\n", sessionID)
		return 2
	}

	profile, err := device.NewProfile(sess.ViewingDistanceMm, sess.PPI,
		device.Resolution{Width: sess.ResolutionW, Height: sess.ResolutionH})
	if err != nil {
		fmt.Fprintf(os.Stderr, "session profile: %v\n", err)
		return 2
	}

	trials := make([]replay.Trial, len(logged))
	expected := make([]int, len(logged))
	for i, tr := range logged {
		trials[i] = replay.Trial{Presented: tr.Presented, Reported: tr.Reported}
		expected[i] = tr.NextIndex
	}

	results, err := replay.Replay(replay.Config{Profile: profile, StartIndex: sess.StartIndex}, trials)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	return printComparison(results, expected)
}

// #endregion db-mode

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	cfg, err := f.ToConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixture config: %v\n", err)
		return 2
	}

	results, err := replay.Replay(cfg, f.ToTrials())
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	expected := make([]int, len(f.ExpectedResults))
	for i, e := range f.ExpectedResults {
		expected[i] = e.NextIndex
	}
	return printComparison(results, expected)
}

// #endregion fixture-mode

// #region output

// printComparison outputs a per-trial comparison table and returns the
// exit code: 0 when the replayed walk matches, 1 on divergence.
func printComparison(results []replay.Result, expected []int) int {
	fmt.Printf("%-7s| %-8s| %-8s| %-10s| %-10s| %s\n", "Trial", "Level", "Result", "Expected", "Replayed", "Match")
	fmt.Printf("%-7s+%-9s+%-9s+%-11s+%-11s+%s\n",
		"-------", "---------", "---------", "-----------", "-----------", "------")

	matches := 0
	total := len(results)
	if len(expected) < total {
		total = len(expected)
	}

	for i := 0; i < total; i++ {
		r := results[i]
		outcome := "wrong"
		if r.Correct {
			outcome = "right"
		}
		match := "DIFF"
		if r.NextIndex == expected[i] {
			match = "OK"
			matches++
		}
		fmt.Printf("%-7d| %-8s| %-8s| %-10d| %-10d| %s\n",
			r.TrialNum, r.LevelLabel, outcome, expected[i], r.NextIndex, match)
	}

	diverge := total - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", total, matches, diverge)
	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion output
