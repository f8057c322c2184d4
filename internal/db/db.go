package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"study-buddy/internal/study"
)

// Entry is one logged request-layer call.
type Entry struct {
	ID        int64
	Feature   string
	Input     string
	Status    string
	Error     string
	LatencyMS int64
	CreatedAt time.Time
}

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// InitDB opens (creating if needed) the SQLite database at path and creates
// tables if they don't exist.
func InitDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY under the
	// concurrent controllers.
	db.SetMaxOpenConns(1)

	if err = createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS requests (
		id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		feature TEXT NOT NULL,
		input TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);`

	_, err := db.Exec(createTableSQL)
	return err
}

// SaveEntry inserts e and returns its id.
func SaveEntry(ctx context.Context, db *sql.DB, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO requests (feature, input, status, error, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Feature, e.Input, e.Status, e.Error, e.LatencyMS, e.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("could not insert request: %w", err)
	}
	return res.LastInsertId()
}

// RecentEntries returns the newest entries first. limit <= 0 means all.
func RecentEntries(ctx context.Context, db *sql.DB, limit int) ([]Entry, error) {
	query := `SELECT id, feature, input, status, COALESCE(error, ''), latency_ms, created_at
		FROM requests ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return queryEntries(ctx, db, query, args...)
}

// SearchEntries performs a substring search on the logged inputs.
func SearchEntries(ctx context.Context, db *sql.DB, text string, limit int) ([]Entry, error) {
	query := `SELECT id, feature, input, status, COALESCE(error, ''), latency_ms, created_at
		FROM requests WHERE input LIKE ? ESCAPE '\' OR feature = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{"%" + likeEscaper.Replace(text) + "%", text}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return queryEntries(ctx, db, query, args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func queryEntries(ctx context.Context, db *sql.DB, query string, args ...any) ([]Entry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query requests: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Feature, &e.Input, &e.Status, &e.Error, &e.LatencyMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan request: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Recorder writes study.Records into the requests table.
type Recorder struct {
	db *sql.DB
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(ctx context.Context, rec study.Record) error {
	e := Entry{
		Feature:   string(rec.Feature),
		Input:     rec.Input,
		Status:    StatusSuccess,
		LatencyMS: rec.Latency.Milliseconds(),
		CreatedAt: rec.Finished,
	}
	if rec.Err != nil {
		e.Status = StatusFailure
		e.Error = technicalDetail(rec.Err)
	}
	_, err := SaveEntry(ctx, r.db, e)
	return err
}

// technicalDetail prefers the wrapped cause over the user-facing message.
func technicalDetail(err error) string {
	var pe *study.ProviderError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
