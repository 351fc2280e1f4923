package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a durable store for long-lived watch-mode processes.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates or opens a SQLite-backed module cache.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS modules (
			path TEXT PRIMARY KEY,
			markup TEXT NOT NULL,
			source_file TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS compiled (
			path TEXT PRIMARY KEY,
			code TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_modules_source ON modules(source_file);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) PutModule(ctx context.Context, path, markup, sourceFile string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO modules (path, markup, source_file)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			markup=excluded.markup,
			source_file=excluded.source_file
	`, path, markup, sourceFile)
	return err
}

func (s *SQLite) GetModule(ctx context.Context, path string) (string, bool, error) {
	var markup string
	err := s.db.QueryRowContext(ctx, "SELECT markup FROM modules WHERE path = ?", path).Scan(&markup)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query module %s: %w", path, err)
	}
	return markup, true, nil
}

func (s *SQLite) DeleteBySource(ctx context.Context, sourceFile string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM compiled WHERE path IN
			(SELECT path FROM modules WHERE source_file = ?)
	`, sourceFile); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM modules WHERE source_file = ?", sourceFile); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLite) PutCompiled(ctx context.Context, path, code string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compiled (path, code) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET code=excluded.code
	`, path, code)
	return err
}

func (s *SQLite) GetCompiled(ctx context.Context, path string) (string, bool, error) {
	var code string
	err := s.db.QueryRowContext(ctx, "SELECT code FROM compiled WHERE path = ?", path).Scan(&code)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query compiled %s: %w", path, err)
	}
	return code, true, nil
}
