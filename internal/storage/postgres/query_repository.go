package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

const dialectPostgres = "postgres"

type QueryRepository struct {
	pool *pgxpool.Pool
}

func NewQueryRepository(pool *pgxpool.Pool) *QueryRepository {
	return &QueryRepository{pool: pool}
}

// SearchBooks builds the catalog query dynamically from the filter. The
// borrow count subquery counts active loans only; returned books no longer
// hold a copy.
func (r *QueryRepository) SearchBooks(ctx context.Context, filter domain.BookSearch) ([]domain.BookWithBorrowCount, error) {
	ds := goqu.Dialect(dialectPostgres).
		From(goqu.T("books").As("b")).
		Select(
			goqu.I("b.book_id"),
			goqu.I("b.title"),
			goqu.I("b.author"),
			goqu.I("b.genre"),
			goqu.I("b.publication_year"),
			goqu.I("b.quantity"),
			goqu.I("b.created_at"),
			goqu.L("(SELECT COUNT(*) FROM borrowed_books WHERE book_id = b.book_id)").As("borrowed_count"),
		)

	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("b.title").ILike(pattern),
			goqu.I("b.author").ILike(pattern),
		))
	}
	if filter.Genre != "" {
		ds = ds.Where(goqu.I("b.genre").Eq(filter.Genre))
	}
	if filter.YearFrom != nil {
		ds = ds.Where(goqu.I("b.publication_year").Gte(*filter.YearFrom))
	}
	if filter.YearTo != nil {
		ds = ds.Where(goqu.I("b.publication_year").Lte(*filter.YearTo))
	}

	switch filter.Sort {
	case domain.BookSortTitle:
		ds = ds.Order(goqu.I("b.title").Asc())
	case domain.BookSortAuthor:
		ds = ds.Order(goqu.I("b.author").Asc())
	case domain.BookSortMostBorrowed:
		ds = ds.Order(goqu.C("borrowed_count").Desc())
	case domain.BookSortNewestFirst:
		ds = ds.Order(goqu.I("b.publication_year").Desc())
	case domain.BookSortOldestFirst:
		ds = ds.Order(goqu.I("b.publication_year").Asc())
	default:
		ds = ds.Order(goqu.I("b.book_id").Asc())
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, wrapError("build search query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("search books", err)
	}
	defer rows.Close()

	var out []domain.BookWithBorrowCount
	for rows.Next() {
		var b domain.BookWithBorrowCount
		err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.PublicationYear, &b.Quantity, &b.CreatedAt, &b.BorrowCount)
		if err != nil {
			return nil, wrapError("scan book", err)
		}
		out = append(out, b)
	}
	if rows.Err() != nil {
		return nil, wrapError("iterate books", rows.Err())
	}
	return out, nil
}

func (r *QueryRepository) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	const query = `
SELECT borrow_id, book_id, book_title, author, genre, student_id, librarian_name, status, borrow_date, due_date
FROM borrowed_books
ORDER BY borrow_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapError("list loans", err)
	}
	defer rows.Close()

	var out []domain.Loan
	for rows.Next() {
		var l domain.Loan
		var status string
		err := rows.Scan(&l.ID, &l.BookID, &l.BookTitle, &l.Author, &l.Genre, &l.BorrowerID, &l.LibrarianName, &status, &l.BorrowDate, &l.DueDate)
		if err != nil {
			return nil, wrapError("scan loan", err)
		}
		l.Status = domain.LoanStatus(status)
		out = append(out, l)
	}
	if rows.Err() != nil {
		return nil, wrapError("iterate loans", rows.Err())
	}
	return out, nil
}

func (r *QueryRepository) ListReturns(ctx context.Context) ([]domain.Return, error) {
	const query = `
SELECT return_id, book_id, book_title, author, genre, student_id, borrow_date, return_date
FROM returned_books
ORDER BY return_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapError("list returns", err)
	}
	defer rows.Close()

	var out []domain.Return
	for rows.Next() {
		var ret domain.Return
		err := rows.Scan(&ret.ID, &ret.BookID, &ret.BookTitle, &ret.Author, &ret.Genre, &ret.BorrowerID, &ret.BorrowDate, &ret.ReturnDate)
		if err != nil {
			return nil, wrapError("scan return", err)
		}
		out = append(out, ret)
	}
	if rows.Err() != nil {
		return nil, wrapError("iterate returns", rows.Err())
	}
	return out, nil
}

// UserHistory merges active loans and completed returns for one borrower,
// most recent borrow first.
func (r *QueryRepository) UserHistory(ctx context.Context, borrowerID string) ([]domain.HistoryEntry, error) {
	const query = `
SELECT book_title, author, borrow_date, NULL::timestamptz AS return_date, 'Borrowed' AS status
FROM borrowed_books
WHERE student_id = $1
UNION ALL
SELECT book_title, author, borrow_date, return_date, 'Returned' AS status
FROM returned_books
WHERE student_id = $1
ORDER BY borrow_date DESC`

	rows, err := r.pool.Query(ctx, query, borrowerID)
	if err != nil {
		return nil, wrapError("user history", err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.BookTitle, &e.Author, &e.BorrowDate, &e.ReturnDate, &e.Status); err != nil {
			return nil, wrapError("scan history entry", err)
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, wrapError("iterate history", rows.Err())
	}
	return out, nil
}
