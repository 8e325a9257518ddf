package app

import (
	"context"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type QueryRepository interface {
	SearchBooks(ctx context.Context, filter domain.BookSearch) ([]domain.BookWithBorrowCount, error)
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)
	ListReturns(ctx context.Context) ([]domain.Return, error)
	UserHistory(ctx context.Context, borrowerID string) ([]domain.HistoryEntry, error)
}

// QueryService serves the read-only catalog and ledger views. It holds no
// core logic; consistency comes from the workflow's transactions.
type QueryService struct {
	repo QueryRepository
}

func NewQueryService(repo QueryRepository) *QueryService {
	return &QueryService{repo: repo}
}

func (s *QueryService) SearchBooks(ctx context.Context, filter domain.BookSearch) ([]domain.BookWithBorrowCount, error) {
	// The frontend sends "All" for the unfiltered genre dropdown.
	if filter.Genre == "All" {
		filter.Genre = ""
	}
	return s.repo.SearchBooks(ctx, filter)
}

func (s *QueryService) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.repo.ListActiveLoans(ctx)
}

func (s *QueryService) ListReturns(ctx context.Context) ([]domain.Return, error) {
	return s.repo.ListReturns(ctx)
}

// UserHistory returns the borrower's active loans and completed returns as
// one list, most recent borrow first.
func (s *QueryService) UserHistory(ctx context.Context, borrowerID string) ([]domain.HistoryEntry, error) {
	if borrowerID == "" {
		return nil, domain.ErrBorrowerRequired
	}
	return s.repo.UserHistory(ctx, borrowerID)
}
