package triallog

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// csvHeader matches the historical acuity log layout.
var csvHeader = []string{"Timestamp", "Acuity Level", "True Orientation", "User Response", "Result", "Mode"}

// #region export-csv
// ExportCSV writes a session's trials to w in the acuity log CSV layout.
func (s *Store) ExportCSV(w io.Writer, sessionID string) error {
	trials, err := s.ListTrials(sessionID)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, tr := range trials {
		row := []string{
			tr.CreatedAt.Format(time.DateTime),
			tr.LevelLabel,
			string(tr.Presented),
			string(tr.Reported),
			tr.Result(),
			string(tr.Mode),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write trial %d: %w", tr.TrialNum, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// #endregion export-csv
