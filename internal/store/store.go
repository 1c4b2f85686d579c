// Package store caches the last-fetched companies and messages in a local
// SQLite database so the dashboard can render immediately on startup and
// the CLI can list entities while the API server is unreachable. Rows hold
// the wire JSON verbatim; the server remains the source of truth and the
// cache is replaced wholesale after each successful list call.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slinkp/outreach/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id   INTEGER PRIMARY KEY,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id   INTEGER PRIMARY KEY,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);
`

// Store is a local snapshot cache.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and runs migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps reads cheap while a refresh is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceCompanies swaps the cached company snapshot for the given list.
func (s *Store) ReplaceCompanies(ctx context.Context, companies []model.Company) error {
	return s.replace(ctx, "companies", len(companies), func(i int) (int64, any) {
		return companies[i].ID, companies[i]
	})
}

// ReplaceMessages swaps the cached message snapshot for the given list.
func (s *Store) ReplaceMessages(ctx context.Context, msgs []model.Message) error {
	return s.replace(ctx, "messages", len(msgs), func(i int) (int64, any) {
		return msgs[i].ID, msgs[i]
	})
}

func (s *Store) replace(ctx context.Context, table string, n int, row func(int) (int64, any)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+table+" (id, data) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		id, v := row(i)
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s row %d: %w", table, id, err)
		}
		if _, err := stmt.ExecContext(ctx, id, string(data)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, table+"_refreshed_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// Companies returns the cached company snapshot.
func (s *Store) Companies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM companies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var c model.Company
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("decode cached company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Messages returns the cached message snapshot.
func (s *Store) Messages(ctx context.Context) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM messages ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var m model.Message
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, fmt.Errorf("decode cached message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// RefreshedAt returns when the given snapshot ("companies" or "messages")
// was last replaced. The zero time means never.
func (s *Store) RefreshedAt(ctx context.Context, table string) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM metadata WHERE key = ?", table+"_refreshed_at").Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}
