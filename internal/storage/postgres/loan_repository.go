package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type LoanRepository struct {
	pool *pgxpool.Pool
}

func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

func (r *LoanRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetBookForUpdate locks the book row for the rest of the transaction, so
// a concurrent borrow cannot read the quantity until this one commits.
func (r *LoanRepository) GetBookForUpdate(ctx context.Context, bookID int64) (domain.Book, error) {
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

func (r *LoanRepository) DecrementBookQuantity(ctx context.Context, bookID int64) error {
	const stmt = `UPDATE books SET quantity = quantity - 1 WHERE book_id = $1`

	tag, err := r.exec(ctx, stmt, bookID)
	if err != nil {
		// The quantity >= 0 check fires if the row changed underneath us.
		if isCheckViolation(err) {
			return domain.ErrNoCopiesAvailable
		}
		return wrapError("decrement quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *LoanRepository) CreateLoan(ctx context.Context, loan domain.Loan) (int64, error) {
	const stmt = `
INSERT INTO borrowed_books (book_id, book_title, author, genre, student_id, librarian_name, status, borrow_date, due_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING borrow_id`

	var id int64
	err := r.queryRow(ctx, stmt,
		loan.BookID,
		loan.BookTitle,
		loan.Author,
		loan.Genre,
		loan.BorrowerID,
		loan.LibrarianName,
		loan.Status,
		loan.BorrowDate,
		loan.DueDate,
	).Scan(&id)
	if err != nil {
		return 0, wrapError("create loan", err)
	}
	return id, nil
}

func (r *LoanRepository) GetLoanForUpdate(ctx context.Context, loanID int64) (domain.Loan, error) {
	const query = `
SELECT borrow_id, book_id, book_title, author, genre, student_id, librarian_name, status, borrow_date, due_date
FROM borrowed_books
WHERE borrow_id = $1
FOR UPDATE`

	var l domain.Loan
	var status string
	err := r.queryRow(ctx, query, loanID).
		Scan(&l.ID, &l.BookID, &l.BookTitle, &l.Author, &l.Genre, &l.BorrowerID, &l.LibrarianName, &status, &l.BorrowDate, &l.DueDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Loan{}, domain.ErrLoanNotFound
		}
		return domain.Loan{}, wrapError("get loan for update", err)
	}
	l.Status = domain.LoanStatus(status)
	return l, nil
}

func (r *LoanRepository) CreateReturn(ctx context.Context, ret domain.Return) (int64, error) {
	const stmt = `
INSERT INTO returned_books (book_id, book_title, author, genre, student_id, borrow_date, return_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING return_id`

	var id int64
	err := r.queryRow(ctx, stmt,
		ret.BookID,
		ret.BookTitle,
		ret.Author,
		ret.Genre,
		ret.BorrowerID,
		ret.BorrowDate,
		ret.ReturnDate,
	).Scan(&id)
	if err != nil {
		return 0, wrapError("create return", err)
	}
	return id, nil
}

func (r *LoanRepository) DeleteLoan(ctx context.Context, loanID int64) error {
	const stmt = `DELETE FROM borrowed_books WHERE borrow_id = $1`

	tag, err := r.exec(ctx, stmt, loanID)
	if err != nil {
		return wrapError("delete loan", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

// IncrementBookQuantity gives a copy back to the catalog. It reports
// whether the book row still exists; a missing row is not an error because
// the ledger outlives deleted books.
func (r *LoanRepository) IncrementBookQuantity(ctx context.Context, bookID int64) (bool, error) {
	const stmt = `UPDATE books SET quantity = quantity + 1 WHERE book_id = $1`

	tag, err := r.exec(ctx, stmt, bookID)
	if err != nil {
		return false, wrapError("increment quantity", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *LoanRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LoanRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
