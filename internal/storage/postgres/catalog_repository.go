package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CatalogRepository) CreateBook(ctx context.Context, book domain.Book) (int64, error) {
	const stmt = `
INSERT INTO books (title, author, genre, publication_year, quantity, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING book_id`

	var id int64
	err := r.queryRow(ctx, stmt,
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationYear,
		book.Quantity,
		book.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, wrapError("create book", err)
	}
	return id, nil
}

func (r *CatalogRepository) GetBook(ctx context.Context, bookID int64) (domain.Book, error) {
	const query = `
SELECT book_id, title, author, genre, publication_year, quantity, created_at
FROM books
WHERE book_id = $1`

	var b domain.Book
	err := r.queryRow(ctx, query, bookID).
		Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.PublicationYear, &b.Quantity, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Book{}, domain.ErrBookNotFound
		}
		return domain.Book{}, wrapError("get book", err)
	}
	return b, nil
}

// GetBookForUpdate locks the book row for the rest of the transaction.
// The borrow workflow locks the same row, so holding it here serializes
// catalog deletion against in-flight borrows.
func (r *CatalogRepository) GetBookForUpdate(ctx context.Context, bookID int64) (domain.Book, error) {
	const query = `
SELECT book_id, title, author, genre, publication_year, quantity, created_at
FROM books
WHERE book_id = $1
FOR UPDATE`

	var b domain.Book
	err := r.queryRow(ctx, query, bookID).
		Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.PublicationYear, &b.Quantity, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Book{}, domain.ErrBookNotFound
		}
		return domain.Book{}, wrapError("get book for update", err)
	}
	return b, nil
}

func (r *CatalogRepository) CountActiveLoans(ctx context.Context, bookID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM borrowed_books WHERE book_id = $1`

	var count int
	if err := r.queryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, wrapError("count active loans", err)
	}
	return count, nil
}

func (r *CatalogRepository) DeleteBook(ctx context.Context, bookID int64) (bool, error) {
	const stmt = `DELETE FROM books WHERE book_id = $1`

	tag, err := r.exec(ctx, stmt, bookID)
	if err != nil {
		return false, wrapError("delete book", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CatalogRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CatalogRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
