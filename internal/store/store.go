// Package store persists complaints in a SQLite database and implements
// complaint.Service.
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

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/session"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS complaints (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL,
	category        TEXT NOT NULL,
	status          TEXT NOT NULL,
	created_at      INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL,
	author_id       INTEGER NOT NULL,
	author_username TEXT NOT NULL,
	author_role     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS complaints_author ON complaints(author_id, created_at);
CREATE INDEX IF NOT EXISTS complaints_status ON complaints(status);
`

const selectColumns = `id, title, description, category, status, created_at, updated_at, author_id, author_username, author_role`

// Store is a SQLite-backed complaint.Service.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ complaint.Service = (*Store)(nil)

// Open creates the database file when missing and applies the schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("database path required")
	}
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases shared and serialises
	// writes from the UI and the watcher.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create assigns an id and stores a new pending complaint.
func (s *Store) Create(ctx context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	if err := complaint.Validate(c.Title, c.Description, c.Category); err != nil {
		return complaint.Complaint{}, err
	}
	if c.Author.ID == 0 {
		return complaint.Complaint{}, fmt.Errorf("create complaint: %w", session.ErrNotAuthenticated)
	}
	if c.Status == "" {
		c.Status = complaint.StatusPending
	}
	if c.Status != complaint.StatusPending {
		return complaint.Complaint{}, fmt.Errorf("create complaint: status must be %s, got %s", complaint.StatusPending, c.Status)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return complaint.Complaint{}, fmt.Errorf("generate id: %w", err)
	}
	c.ID = id.String()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.CreatedAt

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO complaints (`+selectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, string(c.Category), string(c.Status),
		c.CreatedAt.UnixNano(), c.UpdatedAt.UnixNano(),
		c.Author.ID, c.Author.Username, string(c.Author.Role),
	)
	if err != nil {
		return complaint.Complaint{}, fmt.Errorf("insert complaint: %w", err)
	}
	return c, nil
}

// Get loads a single complaint.
func (s *Store) Get(ctx context.Context, id string) (complaint.Complaint, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM complaints WHERE id = ?`, id)
	c, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return complaint.Complaint{}, fmt.Errorf("%w: %s", complaint.ErrNotFound, id)
	}
	if err != nil {
		return complaint.Complaint{}, fmt.Errorf("load complaint: %w", err)
	}
	return c, nil
}

// List returns complaints newest first.
func (s *Store) List(ctx context.Context, q complaint.Query) ([]complaint.Complaint, error) {
	var (
		where []string
		args  []any
	)
	if q.AuthorID != 0 {
		where = append(where, "author_id = ?")
		args = append(args, q.AuthorID)
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(q.Status))
	}
	query := `SELECT ` + selectColumns + ` FROM complaints`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var out []complaint.Complaint
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return out, nil
}

// UpdateStatus moves a complaint along its lifecycle.
func (s *Store) UpdateStatus(ctx context.Context, id string, next complaint.Status) (complaint.Complaint, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return complaint.Complaint{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	c, err := scan(tx.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM complaints WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return complaint.Complaint{}, fmt.Errorf("%w: %s", complaint.ErrNotFound, id)
	}
	if err != nil {
		return complaint.Complaint{}, fmt.Errorf("load complaint: %w", err)
	}
	if !c.Status.CanTransition(next) {
		return complaint.Complaint{}, complaint.TransitionError(c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = s.now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE complaints SET status = ?, updated_at = ? WHERE id = ?`,
		string(c.Status), c.UpdatedAt.UnixNano(), c.ID,
	); err != nil {
		return complaint.Complaint{}, fmt.Errorf("update status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return complaint.Complaint{}, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

// Stats counts complaints per status and per category.
func (s *Store) Stats(ctx context.Context) (complaint.Stats, error) {
	stats := complaint.Stats{
		ByStatus:   make(map[complaint.Status]int),
		ByCategory: make(map[complaint.Category]int),
	}
	if err := s.countBy(ctx, "status", func(key string, n int) {
		stats.ByStatus[complaint.Status(key)] = n
		stats.Total += n
	}); err != nil {
		return complaint.Stats{}, err
	}
	if err := s.countBy(ctx, "category", func(key string, n int) {
		stats.ByCategory[complaint.Category(key)] = n
	}); err != nil {
		return complaint.Stats{}, err
	}
	return stats, nil
}

func (s *Store) countBy(ctx context.Context, column string, fn func(string, int)) error {
	rows, err := s.db.QueryContext(ctx, `SELECT `+column+`, COUNT(*) FROM complaints GROUP BY `+column)
	if err != nil {
		return fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("count by %s: %w", column, err)
		}
		fn(key, n)
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (complaint.Complaint, error) {
	var (
		c                complaint.Complaint
		category, status string
		created, updated int64
		authorRole       string
	)
	if err := row.Scan(
		&c.ID, &c.Title, &c.Description, &category, &status,
		&created, &updated,
		&c.Author.ID, &c.Author.Username, &authorRole,
	); err != nil {
		return complaint.Complaint{}, err
	}
	c.Category = complaint.Category(category)
	c.Status = complaint.Status(status)
	c.CreatedAt = time.Unix(0, created).UTC()
	c.UpdatedAt = time.Unix(0, updated).UTC()
	c.Author.Role = session.Role(authorRole)
	return c, nil
}
