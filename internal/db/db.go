// Package db persists accounts and scan history in PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/talentsphere/internal/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            UUID PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	company_name  TEXT NOT NULL DEFAULT '',
	company_type  TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS scans (
	id         UUID PRIMARY KEY,
	username   TEXT NOT NULL REFERENCES accounts(username) ON DELETE CASCADE,
	job_role   TEXT NOT NULL DEFAULT '',
	score      DOUBLE PRECISION NOT NULL,
	filename   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS scans_username_created_idx ON scans (username, created_at DESC);`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and creates missing tables.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateAccount inserts an account unless the username is taken.
func (db *DB) CreateAccount(ctx context.Context, acc *AccountRecord) (bool, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO accounts (id, username, password_hash, role, company_name, company_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (username) DO NOTHING
		 RETURNING created_at`,
		acc.ID, acc.Username, acc.PasswordHash, acc.Role, acc.CompanyName, acc.CompanyType,
	).Scan(&acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create account: %w", err)
	}
	return true, nil
}

// GetAccountByUsername retrieves an account by username
func (db *DB) GetAccountByUsername(ctx context.Context, username string) (*AccountRecord, error) {
	var acc AccountRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, company_name, company_type, created_at
		 FROM accounts WHERE username = $1`,
		username,
	).Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.Role, &acc.CompanyName, &acc.CompanyType, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// SaveScan records one analysis in the user's history.
func (db *DB) SaveScan(ctx context.Context, scan *types.Scan) error {
	prepareScan(scan)
	_, err := db.pool.Exec(ctx,
		`INSERT INTO scans (id, username, job_role, score, filename, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		scan.ID, scan.Username, scan.JobRole, scan.Score, scan.Filename, scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	return nil
}

// ListScans returns the user's most recent scans, newest first.
func (db *DB) ListScans(ctx context.Context, username string, limit int) ([]types.Scan, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, username, job_role, score, filename, created_at
		 FROM scans WHERE username = $1 ORDER BY created_at DESC LIMIT $2`,
		username, scanLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	scans := []types.Scan{}
	for rows.Next() {
		var s types.Scan
		if err := rows.Scan(&s.ID, &s.Username, &s.JobRole, &s.Score, &s.Filename, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return scans, nil
}
