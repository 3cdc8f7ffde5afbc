package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
)

// notificationStore implements driven.NotificationStore.
type notificationStore struct {
	store *Store
}

var _ driven.NotificationStore = (*notificationStore)(nil)

// querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// List returns records newest first; equal timestamps keep write order.
func (s *notificationStore) List(ctx context.Context) ([]domain.NotificationRecord, error) {
	return listNotifications(ctx, s.store.db)
}

// ReplaceAll swaps the whole set in one transaction.
func (s *notificationStore) ReplaceAll(ctx context.Context, records []domain.NotificationRecord) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := writeNotifications(ctx, tx, records); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing notifications: %w", err)
	}
	return nil
}

// Update holds SQLite's write lock from the read until the write, so a
// MarkRead from another process either lands before the read or waits
// for the commit. BEGIN IMMEDIATE takes the lock up front; a deferred
// transaction would only take it at the first write.
func (s *notificationStore) Update(ctx context.Context, fn driven.NotificationUpdateFunc) error {
	conn, err := s.store.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("beginning write transaction: %w", err)
	}
	done := false
	defer func() {
		if !done {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	current, err := listNotifications(ctx, conn)
	if err != nil {
		return err
	}
	next, write, err := fn(current)
	if err != nil {
		return err
	}
	if write {
		if err := writeNotifications(ctx, conn, next); err != nil {
			return err
		}
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("committing notifications: %w", err)
	}
	done = true
	return nil
}

// MarkRead acknowledges a record.
func (s *notificationStore) MarkRead(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func listNotifications(ctx context.Context, q querier) ([]domain.NotificationRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, stable_key, obligation_type, entity_id, message, severity, is_read, created_at, link_target
		FROM notifications
		ORDER BY created_at DESC, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var records []domain.NotificationRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}
	return records, nil
}

// writeNotifications replaces the table contents. The caller owns the
// transaction.
func writeNotifications(ctx context.Context, q querier, records []domain.NotificationRecord) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}

	stmt, err := q.PrepareContext(ctx, `
		INSERT INTO notifications
			(id, position, stable_key, obligation_type, entity_id, message, severity, is_read, created_at, link_target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("%w: notification at position %d has no id", domain.ErrInvalidInput, i)
		}
		_, err := stmt.ExecContext(ctx,
			rec.ID, i, rec.StableKey, nullString(rec.ObligationType), nullString(rec.EntityID),
			rec.Message, string(rec.Severity), boolToInt(rec.IsRead),
			formatTime(rec.CreatedAt), nullString(rec.LinkTarget))
		if err != nil {
			return fmt.Errorf("inserting notification %s: %w", rec.ID, err)
		}
	}
	return nil
}

func scanNotification(rows *sql.Rows) (domain.NotificationRecord, error) {
	var rec domain.NotificationRecord
	var obligationType, entityID, linkTarget sql.NullString
	var severity, createdAt string
	var isRead int

	if err := rows.Scan(&rec.ID, &rec.StableKey, &obligationType, &entityID,
		&rec.Message, &severity, &isRead, &createdAt, &linkTarget); err != nil {
		return domain.NotificationRecord{}, fmt.Errorf("scanning notification: %w", err)
	}

	rec.ObligationType = obligationType.String
	rec.EntityID = entityID.String
	rec.LinkTarget = linkTarget.String
	rec.Severity = domain.Severity(severity)
	rec.IsRead = isRead == 1
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}
