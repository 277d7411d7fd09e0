package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tableflip.dev/timebox/pkg/session"
)

// SQLiteFile is the database file name under the base path.
const SQLiteFile = "timebox.db"

// OpenSQLite opens (creating if needed) the day database under basePath.
func OpenSQLite(basePath string, log *zap.Logger) (*SQLite, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	path := filepath.Join(basePath, SQLiteFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect %s: %w", path, err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create tables: %w", err)
	}
	return &SQLite{db: db, basePath: basePath, log: log}, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS day_sessions (
        date TEXT PRIMARY KEY,
        data TEXT NOT NULL,
        saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := db.Exec(schema)
	return err
}

// SQLite stores each day as one row.
type SQLite struct {
	db       *sql.DB
	basePath string
	log      *zap.Logger
}

var _ Persistence = (*SQLite)(nil)

// Load implements session.Persistence.
func (s *SQLite) Load(ctx context.Context, date string) (*session.DaySession, error) {
	if _, err := session.ParseDateKey(date); err != nil {
		return nil, err
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM day_sessions WHERE date = ?`, date).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: query %s: %w", date, err)
	}
	d, err := session.Unmarshal([]byte(data))
	if err != nil {
		s.log.Warn("skipping malformed day", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	d.Date = date
	return d, nil
}

// Save implements session.Persistence.
func (s *SQLite) Save(ctx context.Context, date string, d *session.DaySession) error {
	if _, err := session.ParseDateKey(date); err != nil {
		return err
	}
	data, err := session.Marshal(d)
	if err != nil {
		return err
	}
	savedAt := d.SavedAt.Time
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	query := `
		INSERT INTO day_sessions (date, data, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at
	`
	if _, err := s.db.ExecContext(ctx, query, date, string(data), savedAt.UTC()); err != nil {
		return fmt.Errorf("store: save %s: %w", date, err)
	}
	return nil
}

// Dates implements Persistence.
func (s *SQLite) Dates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM day_sessions ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("store: list dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// Watch reports any write to the database files as EventDaysInvalidated.
func (s *SQLite) Watch(ctx context.Context) (<-chan Event, error) {
	return watchTree(ctx, s.basePath, false, func(path string) (Event, bool) {
		if !strings.HasPrefix(filepath.Base(path), SQLiteFile) {
			return Event{}, false
		}
		return Event{Type: EventDaysInvalidated}, true
	}, s.log)
}

// Close implements Persistence.
func (s *SQLite) Close() error {
	return s.db.Close()
}
