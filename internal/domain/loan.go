package domain

import "time"

type LoanStatus string

const (
	// LoanStatusBorrowed is the only status an active loan carries; a loan
	// stops existing when it is returned.
	LoanStatusBorrowed LoanStatus = "borrowed"
)

// Loan is an active borrow record. BookTitle, Author and Genre are
// snapshots taken at borrow time so the ledger stays accurate even if the
// book is later edited or removed. BorrowerID is an external identity
// (a student id) and is not validated against the users table.
type Loan struct {
	ID            int64
	BookID        int64
	BookTitle     string
	Author        string
	Genre         string
	BorrowerID    string
	LibrarianName string
	Status        LoanStatus
	BorrowDate    time.Time
	DueDate       time.Time
}

// Return is the immutable record created when a loan is closed. It carries
// the loan's snapshot fields and original borrow date.
type Return struct {
	ID         int64
	BookID     int64
	BookTitle  string
	Author     string
	Genre      string
	BorrowerID string
	BorrowDate time.Time
	ReturnDate time.Time
}

// HistoryEntry is one row of a borrower's combined history. ReturnDate is
// nil while the loan is still active.
type HistoryEntry struct {
	BookTitle  string
	Author     string
	BorrowDate time.Time
	ReturnDate *time.Time
	Status     string
}

const (
	HistoryStatusBorrowed = "Borrowed"
	HistoryStatusReturned = "Returned"
)
