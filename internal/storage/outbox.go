package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an outbox entry does not exist.
var ErrNotFound = errors.New("outbox entry not found")

// OutboxEntry is a contact submission waiting to be delivered.
type OutboxEntry struct {
	ID string
	Contact
	CreatedAt time.Time
	Attempts  int
	LastError string
}

// AppendOutbox stores a new entry. Entries are keyed by ID, so appending
// never overwrites an earlier submission; a duplicate ID is an error.
func (d *DB) AppendOutbox(ctx context.Context, e OutboxEntry) error {
	if e.ID == "" {
		return fmt.Errorf("append outbox: id required")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO outbox (id, name, email, service, message, created_at, attempts, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Name, e.Email, e.Service, e.Message, e.CreatedAt.UnixMilli(), e.Attempts, nullString(e.LastError))
	if err != nil {
		return fmt.Errorf("append outbox: %w", err)
	}
	return nil
}

// Outbox lists every pending entry, oldest first.
func (d *DB) Outbox(ctx context.Context) ([]OutboxEntry, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, email, service, message, created_at, attempts, last_error
		FROM outbox ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list outbox: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var e OutboxEntry
		var createdAt int64
		var lastErr sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Service, &e.Message, &createdAt, &e.Attempts, &lastErr); err != nil {
			return nil, fmt.Errorf("scan outbox: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		if lastErr.Valid {
			e.LastError = lastErr.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list outbox: %w", err)
	}
	return entries, nil
}

// CountOutbox returns the number of pending entries.
func (d *DB) CountOutbox(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count outbox: %w", err)
	}
	return n, nil
}

// MarkAttempt records a failed delivery attempt.
func (d *DB) MarkAttempt(ctx context.Context, id, lastError string) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE outbox SET attempts = attempts + 1, last_error = ? WHERE id = ?
	`, nullString(lastError), id)
	if err != nil {
		return fmt.Errorf("mark attempt: %w", err)
	}
	return expectOne(res, id)
}

// DeleteOutbox removes a delivered entry.
func (d *DB) DeleteOutbox(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM outbox WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete outbox: %w", err)
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
