package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SpinLedger/internal/model"
)

// SQLiteRecorder appends journal rows to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite journal opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS operations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT NOT NULL,
			kind        TEXT NOT NULL,
			entry_index INTEGER,
			raw         TEXT,
			value       TEXT,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operations_session ON operations(session_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS summaries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT NOT NULL,
			entries     INTEGER,
			checkpoints INTEGER,
			mean        REAL,
			high        REAL,
			low         REAL,
			last_value  REAL,
			longest_run INTEGER,
			current_run INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_session ON summaries(session_id, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordOperation(evt *OperationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var value sql.NullString
	if evt.Err == "" && evt.Kind != model.OpToggle {
		value = sql.NullString{String: evt.Value.String(), Valid: true}
	}
	_, err := r.db.Exec(`INSERT INTO operations
		(timestamp, session_id, kind, entry_index, raw, value, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, string(evt.Kind), evt.Index,
		evt.Raw, value, evt.Err,
	)
	return err
}

func (r *SQLiteRecorder) RecordSummary(evt *SummaryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := evt.Summary
	_, err := r.db.Exec(`INSERT INTO summaries
		(timestamp, session_id, entries, checkpoints, mean, high, low, last_value, longest_run, current_run)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, s.Entries, s.Checkpoints,
		s.Mean.InexactFloat64(), s.High.InexactFloat64(), s.Low.InexactFloat64(),
		s.LastValue.InexactFloat64(), s.LongestRun, s.CurrentRun,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite journal")
	return r.db.Close()
}
