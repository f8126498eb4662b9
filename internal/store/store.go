package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/log"
	"github.com/footprint-tools/verb/internal/store/migrations"
)

// Store keeps dispatch history in SQLite. It implements domain.HistoryStore.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// New opens the database at path, creating its directory, and runs pending
// migrations. ":memory:" opens a private in-memory database.
func New(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Debug("store: database ready at %s", path)
	return &Store{db: db, path: path, now: time.Now}, nil
}

// NewWithDB wraps an already migrated connection.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, or "" for NewWithDB stores.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Record inserts entry, assigning a time-ordered UUID and the current time
// when they are missing.
func (s *Store) Record(entry domain.HistoryEntry) (domain.HistoryEntry, error) {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return entry, fmt.Errorf("generate id: %w", err)
		}
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if entry.Outcome == "" {
		entry.Outcome = domain.OutcomeOK
	}

	_, err := s.db.Exec(
		`INSERT INTO history
		 (id, actor, input, command, outcome, error_kind, duration_us, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Actor,
		entry.Input,
		entry.Command,
		string(entry.Outcome),
		entry.ErrorKind,
		entry.Duration.Microseconds(),
		entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return entry, fmt.Errorf("insert history: %w", err)
	}
	return entry, nil
}

// List returns matching entries, newest first.
func (s *Store) List(filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, actor, input, command, outcome, error_kind, duration_us, created_at
		FROM history
	`

	var (
		clauses []string
		args    []any
	)

	if filter.Actor != "" {
		clauses = append(clauses, "actor = ?")
		args = append(args, filter.Actor)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UnixNano())
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune deletes entries created before cutoff.
func (s *Store) Prune(before time.Time) (int64, error) {
	result, err := s.db.Exec("DELETE FROM history WHERE created_at < ?", before.UnixNano())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Count returns the number of stored entries.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&n)
	return n, err
}

func scanEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		e        domain.HistoryEntry
		outcome  string
		duration int64
		created  int64
	)

	if err := rows.Scan(&e.ID, &e.Actor, &e.Input, &e.Command, &outcome, &e.ErrorKind, &duration, &created); err != nil {
		return domain.HistoryEntry{}, err
	}

	e.Outcome = domain.Outcome(outcome)
	e.Duration = time.Duration(duration) * time.Microsecond
	e.CreatedAt = time.Unix(0, created)
	return e, nil
}

var _ domain.HistoryStore = (*Store)(nil)
