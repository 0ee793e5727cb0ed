package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/talentsphere/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	company_name  TEXT NOT NULL DEFAULT '',
	company_type  TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS scans (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL,
	job_role   TEXT NOT NULL DEFAULT '',
	score      REAL NOT NULL,
	filename   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS scans_username_created_idx ON scans (username, created_at DESC);`

// liteTime is fixed width so stored timestamps sort as text.
const liteTime = "2006-01-02T15:04:05.000000000Z"

// LiteDB is a single file store for local use.
type LiteDB struct {
	db *sql.DB
}

// OpenLite opens (or creates) the SQLite database at path.
func OpenLite(path string) (*LiteDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1) // single writer

	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &LiteDB{db: sqlDB}, nil
}

// Close closes the database.
func (l *LiteDB) Close() {
	_ = l.db.Close()
}

// CreateAccount inserts an account unless the username is taken.
func (l *LiteDB) CreateAccount(ctx context.Context, acc *AccountRecord) (bool, error) {
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO accounts (id, username, password_hash, role, company_name, company_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		acc.ID.String(), acc.Username, acc.PasswordHash, acc.Role, acc.CompanyName, acc.CompanyType,
		acc.CreatedAt.UTC().Format(liteTime),
	)
	if err != nil {
		return false, fmt.Errorf("failed to create account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to create account: %w", err)
	}
	return n == 1, nil
}

// GetAccountByUsername retrieves an account by username
func (l *LiteDB) GetAccountByUsername(ctx context.Context, username string) (*AccountRecord, error) {
	var (
		acc       AccountRecord
		id        string
		createdAt string
	)
	err := l.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, company_name, company_type, created_at
		 FROM accounts WHERE username = ?`,
		username,
	).Scan(&id, &acc.Username, &acc.PasswordHash, &acc.Role, &acc.CompanyName, &acc.CompanyType, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if acc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("corrupt account id %q: %w", id, err)
	}
	if acc.CreatedAt, err = time.Parse(liteTime, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt account timestamp %q: %w", createdAt, err)
	}
	return &acc, nil
}

// SaveScan records one analysis in the user's history.
func (l *LiteDB) SaveScan(ctx context.Context, scan *types.Scan) error {
	prepareScan(scan)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO scans (id, username, job_role, score, filename, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		scan.ID.String(), scan.Username, scan.JobRole, scan.Score, scan.Filename,
		scan.CreatedAt.UTC().Format(liteTime),
	)
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	return nil
}

// ListScans returns the user's most recent scans, newest first.
func (l *LiteDB) ListScans(ctx context.Context, username string, limit int) ([]types.Scan, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, username, job_role, score, filename, created_at
		 FROM scans WHERE username = ? ORDER BY created_at DESC LIMIT ?`,
		username, scanLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	scans := []types.Scan{}
	for rows.Next() {
		var (
			s         types.Scan
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &s.Username, &s.JobRole, &s.Score, &s.Filename, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt scan id %q: %w", id, err)
		}
		if s.CreatedAt, err = time.Parse(liteTime, createdAt); err != nil {
			return nil, fmt.Errorf("corrupt scan timestamp %q: %w", createdAt, err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return scans, nil
}

// Open returns the PostgreSQL store when databaseURL is set and the SQLite
// store at sqlitePath otherwise.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	if databaseURL != "" {
		pg, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	lite, err := OpenLite(sqlitePath)
	if err != nil {
		return nil, err
	}
	return lite, nil
}
