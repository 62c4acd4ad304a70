// Package history records evaluated source code and its results in a sqlite
// database so that sessions can be reviewed after they end.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT NOT NULL,
	source     TEXT NOT NULL,
	result     TEXT NOT NULL DEFAULT '',
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_session ON entries (session, id);
`

// Entry is one evaluated input.
type Entry struct {
	ID        int64
	Session   string
	Source    string
	Result    string
	Error     string
	CreatedAt time.Time
}

// Query selects entries from a Store.
type Query struct {
	// Session restricts results to a single session when non-empty.
	Session string
	// Limit is the maximum number of entries returned.  A Limit less than one
	// returns all matching entries.
	Limit int
}

// Store is a sqlite backed history of evaluations.  A Store is safe for
// concurrent use.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger makes the Store log writes to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens (creating if necessary) the history database at path.  The path
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	s := &Store{
		db:     db,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Record inserts e into the store.  The ID and CreatedAt fields of e are
// ignored.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (session, source, result, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Session, e.Source, e.Result, e.Error, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	s.logger.Debug("history recorded", "session", e.Session, "error", e.Error != "")
	return nil
}

// List returns the entries matching q, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	stmt := `SELECT id, session, source, result, error, created_at FROM entries`
	var args []interface{}
	if q.Session != "" {
		stmt += ` WHERE session = ?`
		args = append(args, q.Session)
	}
	stmt += ` ORDER BY id DESC`
	if q.Limit > 0 {
		stmt += ` LIMIT ?`
		args = append(args, q.Limit)
	}
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(&e.ID, &e.Session, &e.Source, &e.Result, &e.Error, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Sessions returns the distinct session names in the store, most recently
// active first.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session FROM entries GROUP BY session ORDER BY MAX(id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var sessions []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		sessions = append(sessions, name)
	}
	return sessions, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewSession returns a session name derived from the current time.
func NewSession() string {
	return time.Now().UTC().Format("20060102T150405.000000000")
}
