package triallog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/acuitylab/stimulus-engine/internal/staircase"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id          TEXT PRIMARY KEY,
	viewing_distance_mm REAL NOT NULL,
	ppi                 REAL NOT NULL,
	resolution_w        INTEGER NOT NULL,
	resolution_h        INTEGER NOT NULL,
	start_index         INTEGER NOT NULL,
	mode                TEXT NOT NULL,
	created_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trials (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	trial_num     INTEGER NOT NULL,
	level_label   TEXT NOT NULL,
	gap_arcmin    REAL NOT NULL,
	presented     TEXT NOT NULL,
	reported      TEXT NOT NULL,
	correct       INTEGER NOT NULL,
	prev_index    INTEGER NOT NULL,
	next_index    INTEGER NOT NULL,
	mode          TEXT NOT NULL,
	gap_px        REAL NOT NULL,
	stroke_px     REAL NOT NULL,
	height_px     REAL NOT NULL,
	scale_factor  REAL NOT NULL,
	was_clamped   INTEGER NOT NULL,
	was_scaled    INTEGER NOT NULL,
	advisory      TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_trials_session ON trials(session_id, trial_num);
`

// #endregion schema

// #region store-struct
// Store persists sessions and their trial logs in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region create-session
// CreateSession inserts a session row.
func (s *Store) CreateSession(rec SessionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, viewing_distance_mm, ppi, resolution_w, resolution_h, start_index, mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.ViewingDistanceMm, rec.PPI, rec.ResolutionW, rec.ResolutionH,
		rec.StartIndex, string(rec.Mode), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// #endregion create-session

// #region get-session
// GetSession retrieves a session row by ID.
func (s *Store) GetSession(sessionID string) (SessionRecord, error) {
	var rec SessionRecord
	var mode string
	var createdStr string
	err := s.db.QueryRow(
		`SELECT session_id, viewing_distance_mm, ppi, resolution_w, resolution_h, start_index, mode, created_at
		 FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&rec.SessionID, &rec.ViewingDistanceMm, &rec.PPI, &rec.ResolutionW, &rec.ResolutionH,
		&rec.StartIndex, &mode, &createdStr)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	rec.Mode = staircase.Mode(mode)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// #endregion get-session

// #region log-trial
// LogTrial appends one trial row.
func (s *Store) LogTrial(rec TrialRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO trials (session_id, trial_num, level_label, gap_arcmin, presented, reported, correct,
		                     prev_index, next_index, mode, gap_px, stroke_px, height_px, scale_factor,
		                     was_clamped, was_scaled, advisory, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.TrialNum, rec.LevelLabel, rec.GapArcmin,
		string(rec.Presented), string(rec.Reported), boolInt(rec.Correct),
		rec.PrevIndex, rec.NextIndex, string(rec.Mode),
		rec.GapPx, rec.StrokePx, rec.HeightPx, rec.ScaleFactor,
		boolInt(rec.WasClamped), boolInt(rec.WasScaled),
		nullIfEmpty(rec.Advisory), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log trial: %w", err)
	}
	return nil
}

// #endregion log-trial

// #region list-trials
// ListTrials returns a session's trials in presentation order.
func (s *Store) ListTrials(sessionID string) ([]TrialRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, trial_num, level_label, gap_arcmin, presented, reported, correct,
		        prev_index, next_index, mode, gap_px, stroke_px, height_px, scale_factor,
		        was_clamped, was_scaled, advisory, created_at
		 FROM trials WHERE session_id = ? ORDER BY trial_num ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	defer rows.Close()

	var records []TrialRecord
	for rows.Next() {
		var rec TrialRecord
		var presented, reported, mode string
		var correct, clamped, scaled int
		var advisory sql.NullString
		var createdStr string

		if err := rows.Scan(&rec.SessionID, &rec.TrialNum, &rec.LevelLabel, &rec.GapArcmin,
			&presented, &reported, &correct, &rec.PrevIndex, &rec.NextIndex, &mode,
			&rec.GapPx, &rec.StrokePx, &rec.HeightPx, &rec.ScaleFactor,
			&clamped, &scaled, &advisory, &createdStr); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		rec.Presented = staircase.Orientation(presented)
		rec.Reported = staircase.Orientation(reported)
		rec.Mode = staircase.Mode(mode)
		rec.Correct = correct != 0
		rec.WasClamped = clamped != 0
		rec.WasScaled = scaled != 0
		if advisory.Valid {
			rec.Advisory = advisory.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-trials

// #region list-sessions
// ListSessions returns the most recent sessions.
func (s *Store) ListSessions(limit int) ([]SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, viewing_distance_mm, ppi, resolution_w, resolution_h, start_index, mode, created_at
		 FROM sessions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var mode string
		var createdStr string
		if err := rows.Scan(&rec.SessionID, &rec.ViewingDistanceMm, &rec.PPI,
			&rec.ResolutionW, &rec.ResolutionH, &rec.StartIndex, &mode, &createdStr); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Mode = staircase.Mode(mode)
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-sessions

// #region helpers
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
