package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lealknar/Group-1-Library-Website/internal/clock"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

func TestLoanService_BorrowBook(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	due := time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC)
	year := 1999

	makeSvc := func(books []domain.Book) (*LoanService, *fakeLoanRepo) {
		repo := newFakeLoanRepo(books, nil)
		svc := NewLoanService(repo, clock.NewFixed(now))
		return svc, repo
	}

	t.Run("borrows a copy and snapshots the book", func(t *testing.T) {
		svc, repo := makeSvc([]domain.Book{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", PublicationYear: &year, Quantity: 3},
		})

		loan, err := svc.BorrowBook(context.Background(), BorrowBookInput{
			BookID:        1,
			BorrowerID:    "S100",
			DueDate:       due,
			LibrarianName: "Ms. Reyes",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if loan.ID == 0 {
			t.Fatalf("expected loan ID to be set")
		}
		if loan.BookTitle != "Dune" || loan.Author != "Frank Herbert" || loan.Genre != "Sci-Fi" {
			t.Fatalf("expected book snapshot on loan, got %+v", loan)
		}
		if loan.Status != domain.LoanStatusBorrowed {
			t.Fatalf("expected status %s, got %s", domain.LoanStatusBorrowed, loan.Status)
		}
		if !loan.BorrowDate.Equal(now) {
			t.Fatalf("expected borrow date %v, got %v", now, loan.BorrowDate)
		}
		if repo.books[1].Quantity != 2 {
			t.Fatalf("expected quantity 2 after borrow, got %d", repo.books[1].Quantity)
		}
		if len(repo.loans) != 1 {
			t.Fatalf("expected 1 loan in repo, got %d", len(repo.loans))
		}
	})

	t.Run("last copy can be borrowed exactly once", func(t *testing.T) {
		svc, repo := makeSvc([]domain.Book{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 1},
		})

		_, err := svc.BorrowBook(context.Background(), BorrowBookInput{
			BookID: 1, BorrowerID: "S100", DueDate: due, LibrarianName: "Ms. Reyes",
		})
		if err != nil {
			t.Fatalf("expected first borrow to succeed, got %v", err)
		}

		_, err = svc.BorrowBook(context.Background(), BorrowBookInput{
			BookID: 1, BorrowerID: "S200", DueDate: due, LibrarianName: "Ms. Reyes",
		})
		if err != domain.ErrNoCopiesAvailable {
			t.Fatalf("expected ErrNoCopiesAvailable, got %v", err)
		}
		if repo.books[1].Quantity != 0 {
			t.Fatalf("expected quantity 0, got %d", repo.books[1].Quantity)
		}
		if len(repo.loans) != 1 {
			t.Fatalf("expected 1 loan, got %d", len(repo.loans))
		}
	})

	t.Run("unknown book", func(t *testing.T) {
		svc, _ := makeSvc(nil)

		_, err := svc.BorrowBook(context.Background(), BorrowBookInput{
			BookID: 42, BorrowerID: "S100", DueDate: due, LibrarianName: "Ms. Reyes",
		})
		if err != domain.ErrBookNotFound {
			t.Fatalf("expected ErrBookNotFound, got %v", err)
		}
	})

	t.Run("due date before today rejected", func(t *testing.T) {
		svc, _ := makeSvc([]domain.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 1}})

		_, err := svc.BorrowBook(context.Background(), BorrowBookInput{
			BookID:        1,
			BorrowerID:    "S100",
			DueDate:       now.AddDate(0, 0, -1),
			LibrarianName: "Ms. Reyes",
		})
		if err != domain.ErrInvalidDueDate {
			t.Fatalf("expected ErrInvalidDueDate, got %v", err)
		}
	})

	t.Run("due date of today accepted", func(t *testing.T) {
		svc, _ := makeSvc([]domain.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 1}})

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		_, err := svc.BorrowBook(context.Background(), BorrowBookInput{
			BookID: 1, BorrowerID: "S100", DueDate: today, LibrarianName: "Ms. Reyes",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := makeSvc([]domain.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 1}})

		tests := []struct {
			name string
			in   BorrowBookInput
			want error
		}{
			{"zero book id", BorrowBookInput{BorrowerID: "S100", DueDate: due, LibrarianName: "L"}, domain.ErrInvalidID},
			{"missing borrower", BorrowBookInput{BookID: 1, DueDate: due, LibrarianName: "L"}, domain.ErrBorrowerRequired},
			{"missing librarian", BorrowBookInput{BookID: 1, BorrowerID: "S100", DueDate: due}, domain.ErrLibrarianRequired},
			{"missing due date", BorrowBookInput{BookID: 1, BorrowerID: "S100", LibrarianName: "L"}, domain.ErrDueDateRequired},
		}
		for _, tt := range tests {
			if _, err := svc.BorrowBook(context.Background(), tt.in); err != tt.want {
				t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
			}
		}
	})

	t.Run("rolls back the decrement when the loan insert fails", func(t *testing.T) {
		svc, repo := makeSvc([]domain.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 2}})
		repo.createLoanErr = errors.New("boom")

		_, err := svc.BorrowBook(context.Background(), BorrowBookInput{
			BookID: 1, BorrowerID: "S100", DueDate: due, LibrarianName: "Ms. Reyes",
		})
		if err == nil {
			t.Fatalf("expected error")
		}
		if repo.books[1].Quantity != 2 {
			t.Fatalf("expected quantity restored to 2, got %d", repo.books[1].Quantity)
		}
		if len(repo.loans) != 0 {
			t.Fatalf("expected no loans after rollback, got %d", len(repo.loans))
		}
	})
}

func TestLoanService_ReturnBook(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 20, 14, 0, 0, 0, time.UTC)
	borrowed := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	activeLoan := domain.Loan{
		ID:            7,
		BookID:        1,
		BookTitle:     "Dune",
		Author:        "Frank Herbert",
		Genre:         "Sci-Fi",
		BorrowerID:    "S100",
		LibrarianName: "Ms. Reyes",
		Status:        domain.LoanStatusBorrowed,
		BorrowDate:    borrowed,
		DueDate:       borrowed.AddDate(0, 0, 14),
	}

	t.Run("closes the loan and restores the copy", func(t *testing.T) {
		repo := newFakeLoanRepo(
			[]domain.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 0}},
			[]domain.Loan{activeLoan},
		)
		svc := NewLoanService(repo, clock.NewFixed(now))

		ret, err := svc.ReturnBook(context.Background(), ReturnBookInput{LoanID: 7})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if ret.ID == 0 {
			t.Fatalf("expected return ID to be set")
		}
		if ret.BookTitle != "Dune" || ret.BorrowerID != "S100" {
			t.Fatalf("expected loan snapshot on return, got %+v", ret)
		}
		if !ret.BorrowDate.Equal(borrowed) {
			t.Fatalf("expected original borrow date %v, got %v", borrowed, ret.BorrowDate)
		}
		if !ret.ReturnDate.Equal(now) {
			t.Fatalf("expected return date %v, got %v", now, ret.ReturnDate)
		}
		if len(repo.loans) != 0 {
			t.Fatalf("expected loan deleted, got %d loans", len(repo.loans))
		}
		if repo.books[1].Quantity != 1 {
			t.Fatalf("expected quantity 1 after return, got %d", repo.books[1].Quantity)
		}
	})

	t.Run("unknown loan", func(t *testing.T) {
		repo := newFakeLoanRepo(nil, nil)
		svc := NewLoanService(repo, clock.NewFixed(now))

		_, err := svc.ReturnBook(context.Background(), ReturnBookInput{LoanID: 99})
		if err != domain.ErrLoanNotFound {
			t.Fatalf("expected ErrLoanNotFound, got %v", err)
		}
	})

	t.Run("completes when the book row is gone", func(t *testing.T) {
		repo := newFakeLoanRepo(nil, []domain.Loan{activeLoan})
		svc := NewLoanService(repo, clock.NewFixed(now))

		ret, err := svc.ReturnBook(context.Background(), ReturnBookInput{LoanID: 7})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ret.ID == 0 {
			t.Fatalf("expected return ID to be set")
		}
		if len(repo.loans) != 0 {
			t.Fatalf("expected loan deleted, got %d loans", len(repo.loans))
		}
	})

	t.Run("invalid loan id", func(t *testing.T) {
		repo := newFakeLoanRepo(nil, nil)
		svc := NewLoanService(repo, clock.NewFixed(now))

		if _, err := svc.ReturnBook(context.Background(), ReturnBookInput{LoanID: 0}); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("keeps the loan when the return insert fails", func(t *testing.T) {
		repo := newFakeLoanRepo(
			[]domain.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 0}},
			[]domain.Loan{activeLoan},
		)
		repo.createReturnErr = errors.New("boom")
		svc := NewLoanService(repo, clock.NewFixed(now))

		_, err := svc.ReturnBook(context.Background(), ReturnBookInput{LoanID: 7})
		if err == nil {
			t.Fatalf("expected error")
		}
		if len(repo.loans) != 1 {
			t.Fatalf("expected loan kept after rollback, got %d loans", len(repo.loans))
		}
		if len(repo.returns) != 0 {
			t.Fatalf("expected no return records, got %d", len(repo.returns))
		}
		if repo.books[1].Quantity != 0 {
			t.Fatalf("expected quantity unchanged, got %d", repo.books[1].Quantity)
		}
	})
}

// fakeLoanRepo keeps everything in maps and emulates transaction rollback
// by restoring a snapshot when the closure fails.
type fakeLoanRepo struct {
	books   map[int64]domain.Book
	loans   map[int64]domain.Loan
	returns map[int64]domain.Return

	nextLoanID   int64
	nextReturnID int64

	createLoanErr   error
	createReturnErr error
}

func newFakeLoanRepo(books []domain.Book, loans []domain.Loan) *fakeLoanRepo {
	f := &fakeLoanRepo{
		books:        make(map[int64]domain.Book),
		loans:        make(map[int64]domain.Loan),
		returns:      make(map[int64]domain.Return),
		nextLoanID:   100,
		nextReturnID: 500,
	}
	for _, b := range books {
		f.books[b.ID] = b
	}
	for _, l := range loans {
		f.loans[l.ID] = l
	}
	return f
}

func (f *fakeLoanRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	books := copyMap(f.books)
	loans := copyMap(f.loans)
	returns := copyMap(f.returns)

	if err := fn(ctx); err != nil {
		f.books = books
		f.loans = loans
		f.returns = returns
		return err
	}
	return nil
}

func (f *fakeLoanRepo) GetBookForUpdate(_ context.Context, bookID int64) (domain.Book, error) {
	book, ok := f.books[bookID]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return book, nil
}

func (f *fakeLoanRepo) DecrementBookQuantity(_ context.Context, bookID int64) error {
	book, ok := f.books[bookID]
	if !ok {
		return domain.ErrBookNotFound
	}
	if book.Quantity <= 0 {
		return domain.ErrNoCopiesAvailable
	}
	book.Quantity--
	f.books[bookID] = book
	return nil
}

func (f *fakeLoanRepo) CreateLoan(_ context.Context, loan domain.Loan) (int64, error) {
	if f.createLoanErr != nil {
		return 0, f.createLoanErr
	}
	f.nextLoanID++
	loan.ID = f.nextLoanID
	f.loans[loan.ID] = loan
	return loan.ID, nil
}

func (f *fakeLoanRepo) GetLoanForUpdate(_ context.Context, loanID int64) (domain.Loan, error) {
	loan, ok := f.loans[loanID]
	if !ok {
		return domain.Loan{}, domain.ErrLoanNotFound
	}
	return loan, nil
}

func (f *fakeLoanRepo) CreateReturn(_ context.Context, ret domain.Return) (int64, error) {
	if f.createReturnErr != nil {
		return 0, f.createReturnErr
	}
	f.nextReturnID++
	ret.ID = f.nextReturnID
	f.returns[ret.ID] = ret
	return ret.ID, nil
}

func (f *fakeLoanRepo) DeleteLoan(_ context.Context, loanID int64) error {
	if _, ok := f.loans[loanID]; !ok {
		return domain.ErrLoanNotFound
	}
	delete(f.loans, loanID)
	return nil
}

func (f *fakeLoanRepo) IncrementBookQuantity(_ context.Context, bookID int64) (bool, error) {
	book, ok := f.books[bookID]
	if !ok {
		return false, nil
	}
	book.Quantity++
	f.books[bookID] = book
	return true, nil
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
