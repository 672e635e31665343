package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/translog"
	id "inkwell/pkg/domain"
	txcontext "inkwell/pkg/platform/tx"
)

// Store persists log entries in PostgreSQL. Writes issued inside a
// coordinator transaction pick the *sql.Tx up from context so the entry
// commits or rolls back with the post mutation it describes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append inserts one entry. Never fails except on storage errors.
func (s *Store) Append(ctx context.Context, entry translog.Entry) error {
	var userID, postID *uuid.UUID
	if entry.UserID != nil {
		u := uuid.UUID(*entry.UserID)
		userID = &u
	}
	if entry.PostID != nil {
		p := uuid.UUID(*entry.PostID)
		postID = &p
	}

	query := `
		INSERT INTO post_transactions (id, user_id, post_id, action, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(entry.ID),
		userID,
		postID,
		string(entry.Action),
		entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// DetachUser nils the user reference on entries for a deleted user.
// The schema's ON DELETE SET NULL would do the same; the explicit call
// keeps the Postgres and memory backends behaviorally identical.
func (s *Store) DetachUser(ctx context.Context, userID id.UserID) error {
	query := `UPDATE post_transactions SET user_id = NULL WHERE user_id = $1`
	if _, err := s.execer(ctx).ExecContext(ctx, query, uuid.UUID(userID)); err != nil {
		return fmt.Errorf("detach user from log entries: %w", err)
	}
	return nil
}

// DetachPost nils the post reference on entries for a deleted post.
func (s *Store) DetachPost(ctx context.Context, postID id.PostID) error {
	query := `UPDATE post_transactions SET post_id = NULL WHERE post_id = $1`
	if _, err := s.execer(ctx).ExecContext(ctx, query, uuid.UUID(postID)); err != nil {
		return fmt.Errorf("detach post from log entries: %w", err)
	}
	return nil
}

// List returns every entry ordered by timestamp ascending.
func (s *Store) List(ctx context.Context) ([]translog.Entry, error) {
	query := `
		SELECT id, user_id, post_id, action, occurred_at
		FROM post_transactions
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query log entries: %w", err)
	}
	defer rows.Close()

	var entries []translog.Entry
	for rows.Next() {
		var (
			entry          translog.Entry
			entryID        uuid.UUID
			userIDNullable *uuid.UUID
			postIDNullable *uuid.UUID
			action         string
		)
		err := rows.Scan(&entryID, &userIDNullable, &postIDNullable, &action, &entry.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entry.ID = id.EntryID(entryID)
		entry.Action = translog.Action(action)
		if userIDNullable != nil {
			u := id.UserID(*userIDNullable)
			entry.UserID = &u
		}
		if postIDNullable != nil {
			p := id.PostID(*postIDNullable)
			entry.PostID = &p
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log entries: %w", err)
	}
	return entries, nil
}
