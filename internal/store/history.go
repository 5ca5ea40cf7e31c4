// Package store persists the analysis history in SQLite
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
)

// Entry is one stored analysis
type Entry struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Input        string          `json:"input"`
	Normalized   string          `json:"normalized"`
	Valid        bool            `json:"valid"`
	Verdict      string          `json:"verdict,omitempty"`
	SentenceType string          `json:"sentence_type,omitempty"`
	Correction   string          `json:"correction,omitempty"`
	Error        string          `json:"error,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
}

// SyntaxError reports whether the entry records a sentence that did not parse
func (e *Entry) SyntaxError() bool {
	return e.Error != ""
}

// Filter defines criteria for listing entries
type Filter struct {
	// Valid restricts to valid (true) or invalid (false) analyses when set
	Valid *bool
	// SyntaxErrors restricts to entries that failed to parse
	SyntaxErrors bool
	Since        time.Time
	Limit        int
	Offset       int
}

// Stats summarizes the history
type Stats struct {
	Total        int            `json:"total"`
	Valid        int            `json:"valid"`
	Invalid      int            `json:"invalid"`
	SyntaxErrors int            `json:"syntax_errors"`
	ByVerdict    map[string]int `json:"by_verdict"`
	Oldest       *time.Time     `json:"oldest,omitempty"`
	Newest       *time.Time     `json:"newest,omitempty"`
}

// HistoryStore defines the interface for history persistence
type HistoryStore interface {
	Save(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// SQLiteStore implements HistoryStore using SQLite
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Config holds configuration for the SQLite store
type Config struct {
	// Path of the database file; ":memory:" keeps the history in memory
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore opens (and creates if needed) the history database
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	if cfg.Path != ":memory:" {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, apperror.Wrap(err, "failed to create history directory").
				WithCode(apperror.CodeDatabaseError)
		}
		dsn = cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to open history database").
			WithCode(apperror.CodeDatabaseError)
	}
	s := &SQLiteStore{db: db, now: time.Now}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, apperror.Wrap(err, "failed to initialize history schema").
			WithCode(apperror.CodeDatabaseError)
	}

	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		input TEXT NOT NULL,
		normalized TEXT NOT NULL,
		valid INTEGER NOT NULL,
		verdict TEXT,
		sentence_type TEXT,
		correction TEXT,
		error TEXT,
		result TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_analyses_valid ON analyses(valid);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save stores an entry, assigning an ID and timestamp when missing
func (s *SQLiteStore) Save(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	var result sql.NullString
	if len(entry.Result) > 0 {
		result = sql.NullString{String: string(entry.Result), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, created_at, input, normalized, valid, verdict, sentence_type, correction, error, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.CreatedAt.UnixNano(), entry.Input, entry.Normalized, entry.Valid,
		entry.Verdict, entry.SentenceType, entry.Correction, entry.Error, result)
	if err != nil {
		return apperror.Wrap(err, "failed to insert history entry").
			WithCode(apperror.CodeDatabaseError).
			WithOperation("store.Save")
	}

	return nil
}

const selectColumns = `SELECT id, created_at, input, normalized, valid, verdict, sentence_type, correction, error, result FROM analyses`

// Get returns the entry with the given ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.Newf("history entry %s not found", id).
			WithCode(apperror.CodeNotFound).
			WithOperation("store.Get")
	}
	if err != nil {
		return nil, apperror.Wrap(err, "failed to read history entry").
			WithCode(apperror.CodeDatabaseError).
			WithOperation("store.Get")
	}
	return entry, nil
}

// List retrieves entries matching filter, newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectColumns + ` WHERE 1=1`
	var args []interface{}

	if filter.Valid != nil {
		query += " AND valid = ?"
		args = append(args, *filter.Valid)
	}
	if filter.SyntaxErrors {
		query += " AND error != ''"
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UnixNano())
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to query history").
			WithCode(apperror.CodeDatabaseError).
			WithOperation("store.List")
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperror.Wrap(err, "failed to scan history entry").
				WithCode(apperror.CodeDatabaseError).
				WithOperation("store.List")
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Stats counts the stored analyses
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByVerdict: make(map[string]int)}

	var oldest, newest sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN valid = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN valid = 0 AND error = '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0),
			MIN(created_at),
			MAX(created_at)
		FROM analyses
	`).Scan(&stats.Total, &stats.Valid, &stats.Invalid, &stats.SyntaxErrors, &oldest, &newest)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to compute history stats").
			WithCode(apperror.CodeDatabaseError).
			WithOperation("store.Stats")
	}
	if oldest.Valid {
		t := time.Unix(0, oldest.Int64).UTC()
		stats.Oldest = &t
	}
	if newest.Valid {
		t := time.Unix(0, newest.Int64).UTC()
		stats.Newest = &t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT verdict, COUNT(*) FROM analyses WHERE verdict != '' GROUP BY verdict
	`)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to count verdicts").
			WithCode(apperror.CodeDatabaseError).
			WithOperation("store.Stats")
	}
	defer rows.Close()

	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, apperror.Wrap(err, "failed to scan verdict count").
				WithCode(apperror.CodeDatabaseError)
		}
		stats.ByVerdict[verdict] = count
	}

	return stats, rows.Err()
}

// Prune deletes entries older than the given duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-olderThan).UTC().UnixNano()

	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, apperror.Wrap(err, "failed to prune history").
			WithCode(apperror.CodeDatabaseError).
			WithOperation("store.Prune")
	}

	return result.RowsAffected()
}

// Ping checks that the database is reachable
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entry Entry
	var createdAt int64
	var verdict, sentenceType, correction, errMsg, result sql.NullString

	if err := row.Scan(&entry.ID, &createdAt, &entry.Input, &entry.Normalized, &entry.Valid,
		&verdict, &sentenceType, &correction, &errMsg, &result); err != nil {
		return nil, err
	}

	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	entry.Verdict = verdict.String
	entry.SentenceType = sentenceType.String
	entry.Correction = correction.String
	entry.Error = errMsg.String
	if result.Valid {
		entry.Result = json.RawMessage(result.String)
	}
	return &entry, nil
}
