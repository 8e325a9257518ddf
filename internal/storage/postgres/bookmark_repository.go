package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type BookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepository(pool *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{pool: pool}
}

func (r *BookmarkRepository) DeleteByUserAndBook(ctx context.Context, userID, bookID int64) (bool, error) {
	const stmt = `DELETE FROM bookmarks WHERE user_id = $1 AND book_id = $2`

	tag, err := r.pool.Exec(ctx, stmt, userID, bookID)
	if err != nil {
		return false, wrapError("delete bookmark", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Insert adds a bookmark. ON CONFLICT DO NOTHING makes a lost race with a
// concurrent insert harmless; inserted=false then means the row already
// exists.
func (r *BookmarkRepository) Insert(ctx context.Context, bm domain.Bookmark) (int64, bool, error) {
	const stmt = `
INSERT INTO bookmarks (user_id, book_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, book_id) DO NOTHING
RETURNING bookmark_id`

	var id int64
	err := r.pool.QueryRow(ctx, stmt, bm.UserID, bm.BookID, bm.CreatedAt).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		if isForeignKeyViolation(err) {
			return 0, false, referencedRowError(err)
		}
		return 0, false, wrapError("insert bookmark", err)
	}
	return id, true, nil
}

func (r *BookmarkRepository) ListForUser(ctx context.Context, userID int64) ([]domain.BookmarkedBook, error) {
	const query = `
SELECT bm.bookmark_id, bk.book_id, bk.title, bk.author, bk.genre
FROM bookmarks bm
JOIN books bk ON bm.book_id = bk.book_id
WHERE bm.user_id = $1
ORDER BY bm.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapError("list bookmarks", err)
	}
	defer rows.Close()

	var out []domain.BookmarkedBook
	for rows.Next() {
		var b domain.BookmarkedBook
		if err := rows.Scan(&b.BookmarkID, &b.BookID, &b.Title, &b.Author, &b.Genre); err != nil {
			return nil, wrapError("scan bookmark", err)
		}
		out = append(out, b)
	}
	if rows.Err() != nil {
		return nil, wrapError("iterate bookmarks", rows.Err())
	}
	return out, nil
}

func (r *BookmarkRepository) DeleteByID(ctx context.Context, bookmarkID, userID int64) (bool, error) {
	const stmt = `DELETE FROM bookmarks WHERE bookmark_id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, stmt, bookmarkID, userID)
	if err != nil {
		return false, wrapError("delete bookmark by id", err)
	}
	return tag.RowsAffected() > 0, nil
}

// referencedRowError tells apart which side of the bookmark FK failed.
func referencedRowError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "user") {
		return domain.ErrUserNotFound
	}
	return domain.ErrBookNotFound
}
