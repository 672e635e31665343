package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"inkwell/internal/post/models"
	id "inkwell/pkg/domain"
	"inkwell/pkg/platform/sentinel"
	txcontext "inkwell/pkg/platform/tx"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore persists posts in PostgreSQL. Mutations issued inside a
// coordinator transaction pick the *sql.Tx up from context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, title, content, draft, publish, archive, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(post.ID),
		uuid.UUID(post.OwnerID),
		post.Title,
		post.Content,
		post.Draft,
		post.Publish,
		post.Archive,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, postID id.PostID) (*models.Post, error) {
	query := `
		SELECT id, user_id, title, content, draft, publish, archive, created_at, updated_at
		FROM posts
		WHERE id = $1
	`
	row := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(postID))
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (s *PostgresStore) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, draft = $4, publish = $5, archive = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(post.ID),
		post.Title,
		post.Content,
		post.Draft,
		post.Publish,
		post.Archive,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, postID id.PostID) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, uuid.UUID(postID))
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireRow(res)
}

// DeleteByOwner removes every post owned by the user and returns the
// deleted ids. Used by the user-deletion cascade.
func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID id.UserID) ([]id.PostID, error) {
	query := `DELETE FROM posts WHERE user_id = $1 RETURNING id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(ownerID))
	if err != nil {
		return nil, fmt.Errorf("delete posts by owner: %w", err)
	}
	defer rows.Close()

	var deleted []id.PostID
	for rows.Next() {
		var pid uuid.UUID
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("scan deleted post id: %w", err)
		}
		deleted = append(deleted, id.PostID(pid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted post ids: %w", err)
	}
	return deleted, nil
}

// List returns posts matching the scope, ordered by creation time.
// Scope constraints map onto fixed columns; caller input never reaches
// the query text.
func (s *PostgresStore) List(ctx context.Context, scope models.ListScope) ([]*models.Post, error) {
	query := `
		SELECT id, user_id, title, content, draft, publish, archive, created_at, updated_at
		FROM posts
		WHERE 1=1
	`
	args := []any{}

	if scope.OwnerID != nil {
		args = append(args, uuid.UUID(*scope.OwnerID))
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if scope.Published {
		query += " AND publish = TRUE"
	}
	if scope.Category != nil {
		switch *scope.Category {
		case models.CategoryPublish:
			query += " AND publish = TRUE"
		case models.CategoryArchive:
			query += " AND archive = TRUE"
		case models.CategoryDraft:
			query += " AND draft = TRUE"
		}
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*models.Post, error) {
	var (
		post    models.Post
		postID  uuid.UUID
		ownerID uuid.UUID
	)
	err := row.Scan(
		&postID,
		&ownerID,
		&post.Title,
		&post.Content,
		&post.Draft,
		&post.Publish,
		&post.Archive,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	post.ID = id.PostID(postID)
	post.OwnerID = id.UserID(ownerID)
	return &post, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
