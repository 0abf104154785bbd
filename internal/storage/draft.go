package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Draft is the single most recently saved contact form.
type Draft struct {
	Contact
	SavedAt time.Time
}

// SaveDraft replaces the stored draft.
func (d *DB) SaveDraft(ctx context.Context, draft Draft) error {
	if draft.SavedAt.IsZero() {
		draft.SavedAt = time.Now()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO drafts (id, name, email, service, message, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			service = excluded.service,
			message = excluded.message,
			saved_at = excluded.saved_at
	`, draft.Name, draft.Email, draft.Service, draft.Message, draft.SavedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Draft returns the stored draft. ok is false when none has been saved.
func (d *DB) Draft(ctx context.Context) (draft Draft, ok bool, err error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT name, email, service, message, saved_at FROM drafts WHERE id = 1
	`)
	var savedAt int64
	err = row.Scan(&draft.Name, &draft.Email, &draft.Service, &draft.Message, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("load draft: %w", err)
	}
	draft.SavedAt = time.UnixMilli(savedAt)
	return draft, true, nil
}

// ClearDraft removes the stored draft. Clearing when none exists is fine.
func (d *DB) ClearDraft(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = 1`); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
