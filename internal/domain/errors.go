package domain

import "errors"

var (
	ErrInvalidID         = errors.New("invalid id")
	ErrTitleRequired     = errors.New("book title required")
	ErrAuthorRequired    = errors.New("book author required")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidYear       = errors.New("invalid publication year")
	ErrBorrowerRequired  = errors.New("borrower id required")
	ErrLibrarianRequired = errors.New("librarian name required")
	ErrDueDateRequired   = errors.New("due date required")
	ErrInvalidSort       = errors.New("unknown sort option")
	ErrInvalidDueDate    = errors.New("due date is in the past")

	ErrBookNotFound     = errors.New("book not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrNoCopiesAvailable  = errors.New("no copies available")
	ErrBookHasActiveLoans = errors.New("book has active loans")

	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 12 characters")
	ErrEmailTaken         = errors.New("email or mobile already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTransient marks store failures (lock timeouts, serialization
	// conflicts, lost connections) where retrying the whole operation is
	// safe.
	ErrTransient = errors.New("temporary storage failure")
)
