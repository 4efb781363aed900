package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iksnae/gemini-session/internal"
)

// SQLiteExporter writes sessions into a queryable database file. Unlike the
// stream exporters it owns its destination, since sqlite needs a real path.
type SQLiteExporter struct {
	Path string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	message_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	session_id TEXT NOT NULL REFERENCES sessions(id),
	seq        INTEGER NOT NULL,
	date       TEXT NOT NULL,
	prompt     TEXT NOT NULL,
	response   TEXT,
	PRIMARY KEY (session_id, seq)
);`

// Export replaces the database contents with the given sessions, so reruns
// over the same archive leave the same rows behind.
func (e *SQLiteExporter) Export(sessions []*internal.Session) error {
	db, err := sql.Open("sqlite", e.Path)
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Path: e.Path, Err: err}
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return &internal.ExportError{Format: "sqlite", Path: e.Path, Err: fmt.Errorf("failed to create schema: %w", err)}
	}

	tx, err := db.Begin()
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Path: e.Path, Err: err}
	}
	if err := e.fill(tx, sessions); err != nil {
		_ = tx.Rollback()
		return &internal.ExportError{Format: "sqlite", Path: e.Path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &internal.ExportError{Format: "sqlite", Path: e.Path, Err: err}
	}
	return nil
}

func (e *SQLiteExporter) fill(tx *sql.Tx, sessions []*internal.Session) error {
	if _, err := tx.Exec(`DELETE FROM messages`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return err
	}

	for _, s := range sessions {
		_, err := tx.Exec(
			`INSERT INTO sessions (id, started_at, message_count) VALUES (?, ?, ?)`,
			s.ID, s.StartedAt.UTC().Format(time.RFC3339Nano), len(s.Messages),
		)
		if err != nil {
			return fmt.Errorf("failed to insert session %s: %w", s.ID, err)
		}
		for i, m := range s.Messages {
			var response any
			if m.Response != nil {
				response = *m.Response
			}
			_, err := tx.Exec(
				`INSERT INTO messages (session_id, seq, date, prompt, response) VALUES (?, ?, ?, ?, ?)`,
				s.ID, i, m.Date, m.Prompt, response,
			)
			if err != nil {
				return fmt.Errorf("failed to insert message %d of %s: %w", i, s.ID, err)
			}
		}
	}
	return nil
}
