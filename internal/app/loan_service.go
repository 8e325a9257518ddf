package app

import (
	"context"
	"time"

	"github.com/lealknar/Group-1-Library-Website/internal/clock"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type LoanRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBookForUpdate(ctx context.Context, bookID int64) (domain.Book, error)
	DecrementBookQuantity(ctx context.Context, bookID int64) error
	CreateLoan(ctx context.Context, loan domain.Loan) (int64, error)
	GetLoanForUpdate(ctx context.Context, loanID int64) (domain.Loan, error)
	CreateReturn(ctx context.Context, ret domain.Return) (int64, error)
	DeleteLoan(ctx context.Context, loanID int64) error
	IncrementBookQuantity(ctx context.Context, bookID int64) (bool, error)
}

// LoanService owns the borrow/return workflow. It is the only writer of
// book quantities and the only creator and destroyer of loan and return
// records; every mutation runs inside one transaction with the book row
// locked so concurrent borrows of the last copy serialize.
type LoanService struct {
	repo  LoanRepository
	clock clock.Clock
}

func NewLoanService(repo LoanRepository, clk clock.Clock) *LoanService {
	return &LoanService{
		repo:  repo,
		clock: clk,
	}
}

type BorrowBookInput struct {
	BookID        int64
	BorrowerID    string
	DueDate       time.Time
	LibrarianName string
}

func (s *LoanService) BorrowBook(ctx context.Context, in BorrowBookInput) (domain.Loan, error) {
	if in.BookID <= 0 {
		return domain.Loan{}, domain.ErrInvalidID
	}
	if in.BorrowerID == "" {
		return domain.Loan{}, domain.ErrBorrowerRequired
	}
	if in.LibrarianName == "" {
		return domain.Loan{}, domain.ErrLibrarianRequired
	}
	if in.DueDate.IsZero() {
		return domain.Loan{}, domain.ErrDueDateRequired
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.DueDate.Before(today) {
		return domain.Loan{}, domain.ErrInvalidDueDate
	}

	var result domain.Loan

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		book, err := s.repo.GetBookForUpdate(txCtx, in.BookID)
		if err != nil {
			return err
		}
		if book.Quantity <= 0 {
			return domain.ErrNoCopiesAvailable
		}

		if err := s.repo.DecrementBookQuantity(txCtx, in.BookID); err != nil {
			return err
		}

		loan := domain.Loan{
			BookID:        book.ID,
			BookTitle:     book.Title,
			Author:        book.Author,
			Genre:         book.Genre,
			BorrowerID:    in.BorrowerID,
			LibrarianName: in.LibrarianName,
			Status:        domain.LoanStatusBorrowed,
			BorrowDate:    now,
			DueDate:       in.DueDate,
		}

		id, err := s.repo.CreateLoan(txCtx, loan)
		if err != nil {
			return err
		}
		loan.ID = id

		result = loan
		return nil
	})
	if err != nil {
		return domain.Loan{}, err
	}

	return result, nil
}

type ReturnBookInput struct {
	LoanID int64
}

// ReturnBook closes a loan: it writes the return record, deletes the loan
// and gives the copy back to the catalog, all in one transaction. A loan
// is never lost — it either still exists or has a matching return record.
func (s *LoanService) ReturnBook(ctx context.Context, in ReturnBookInput) (domain.Return, error) {
	if in.LoanID <= 0 {
		return domain.Return{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Return

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		loan, err := s.repo.GetLoanForUpdate(txCtx, in.LoanID)
		if err != nil {
			return err
		}

		ret := domain.Return{
			BookID:     loan.BookID,
			BookTitle:  loan.BookTitle,
			Author:     loan.Author,
			Genre:      loan.Genre,
			BorrowerID: loan.BorrowerID,
			BorrowDate: loan.BorrowDate,
			ReturnDate: now,
		}

		id, err := s.repo.CreateReturn(txCtx, ret)
		if err != nil {
			return err
		}
		ret.ID = id

		if err := s.repo.DeleteLoan(txCtx, loan.ID); err != nil {
			return err
		}

		// The book row may be gone if it was removed before the deletion
		// guard existed; the return still completes without it.
		if _, err := s.repo.IncrementBookQuantity(txCtx, loan.BookID); err != nil {
			return err
		}

		result = ret
		return nil
	})
	if err != nil {
		return domain.Return{}, err
	}

	return result, nil
}
