package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"photobooth/internal/modules/booth/domain"
	boothout "photobooth/internal/modules/booth/port/out"

	_ "modernc.org/sqlite"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(dbPath string) (boothout.Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	journal := &SQLiteJournal{db: db}
	if err := journal.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return journal, nil
}

func (s *SQLiteJournal) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  template_id TEXT NOT NULL,
  slots INTEGER NOT NULL,
  taken INTEGER NOT NULL,
  selected INTEGER NOT NULL,
  filter TEXT NOT NULL,
  artifact TEXT,
  outcome TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS prints (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  artifact TEXT NOT NULL,
  printer TEXT,
  ok INTEGER NOT NULL,
  message TEXT,
  submitted_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create journal tables: %w", err)
	}
	return nil
}

func (s *SQLiteJournal) RecordSession(ctx context.Context, record domain.SessionRecord) error {
	const stmt = `
INSERT INTO sessions (id, template_id, slots, taken, selected, filter, artifact, outcome, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  taken=excluded.taken,
  selected=excluded.selected,
  filter=excluded.filter,
  artifact=excluded.artifact,
  outcome=excluded.outcome,
  ended_at=excluded.ended_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.TemplateID,
		record.Slots,
		record.Taken,
		record.Selected,
		record.Filter,
		record.Artifact,
		string(record.Outcome),
		record.StartedAt.Format(timeFormat),
		record.EndedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

func (s *SQLiteJournal) RecordPrint(ctx context.Context, record domain.PrintRecord) error {
	const stmt = `
INSERT INTO prints (id, session_id, artifact, printer, ok, message, submitted_at)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	ok := 0
	if record.OK {
		ok = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.SessionID,
		record.Artifact,
		record.Printer,
		ok,
		record.Message,
		record.SubmittedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("record print: %w", err)
	}
	return nil
}

func (s *SQLiteJournal) RecentSessions(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	const query = `
SELECT id, template_id, slots, taken, selected, filter, artifact, outcome, started_at, ended_at
FROM sessions ORDER BY ended_at DESC LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.SessionRecord{}
	for rows.Next() {
		var record domain.SessionRecord
		var outcome, startedAt, endedAt string
		var artifact sql.NullString
		if err := rows.Scan(&record.ID, &record.TemplateID, &record.Slots, &record.Taken, &record.Selected, &record.Filter, &artifact, &outcome, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		record.Artifact = artifact.String
		record.Outcome = domain.SessionOutcome(outcome)
		record.StartedAt = parseTime(startedAt)
		record.EndedAt = parseTime(endedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}
	return records, nil
}

func (s *SQLiteJournal) RecentPrints(ctx context.Context, limit int) ([]domain.PrintRecord, error) {
	const query = `
SELECT id, session_id, artifact, printer, ok, message, submitted_at
FROM prints ORDER BY submitted_at DESC LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query prints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.PrintRecord{}
	for rows.Next() {
		var record domain.PrintRecord
		var ok int
		var printer, message sql.NullString
		var submittedAt string
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Artifact, &printer, &ok, &message, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan print row: %w", err)
		}
		record.Printer = printer.String
		record.Message = message.String
		record.OK = ok != 0
		record.SubmittedAt = parseTime(submittedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate print rows: %w", err)
	}
	return records, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
