package store

import (
	"database/sql"
	"errors"
	"fmt"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS rentcore_snapshots (
	key text PRIMARY KEY,
	value jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// PgBackend stores each collection blob as a row in a key/value table.
type PgBackend struct {
	conn *sql.DB
}

func NewPgBackend(dsn string) (*PgBackend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if _, err := db.Exec(createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return &PgBackend{conn: db}, nil
}

func (p *PgBackend) Read(key string) ([]byte, error) {
	var value []byte
	err := p.conn.QueryRow("SELECT value FROM rentcore_snapshots WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return value, nil
}

func (p *PgBackend) WriteBatch(batch map[string][]byte) error {
	tx, err := p.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO rentcore_snapshots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for key, value := range batch {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("upsert %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (p *PgBackend) Delete(key string) error {
	_, err := p.conn.Exec("DELETE FROM rentcore_snapshots WHERE key = $1", key)
	return err
}

func (p *PgBackend) Ping() error {
	return p.conn.Ping()
}

func (p *PgBackend) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
