package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Facts struct {
	db *sql.DB
}

func NewFacts(db *sql.DB) *Facts {
	return &Facts{db: db}
}

// Set upserts a fact. The single-statement upsert is atomic, so concurrent
// writers to the same key leave exactly one winning value.
func (f *Facts) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO facts (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := f.db.ExecContext(ctx, query, key, value); err != nil {
		return storageErr(fmt.Errorf("failed to upsert fact %q: %w", key, err))
	}
	return nil
}

func (f *Facts) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := f.db.QueryRowContext(ctx, `SELECT value FROM facts WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageErr(fmt.Errorf("failed to read fact %q: %w", key, err))
	}
	return value, true, nil
}

func (f *Facts) All(ctx context.Context) (map[string]string, error) {
	rows, err := f.db.QueryContext(ctx, `SELECT key, value FROM facts`)
	if err != nil {
		return nil, storageErr(fmt.Errorf("failed to query facts: %w", err))
	}
	defer rows.Close()

	facts := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, storageErr(fmt.Errorf("failed to scan fact: %w", err))
		}
		facts[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return facts, nil
}

// Delete removes a fact. Deleting an absent key is not an error.
func (f *Facts) Delete(ctx context.Context, key string) error {
	if _, err := f.db.ExecContext(ctx, `DELETE FROM facts WHERE key = ?`, key); err != nil {
		return storageErr(fmt.Errorf("failed to delete fact %q: %w", key, err))
	}
	return nil
}
