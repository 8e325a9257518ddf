package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lealknar/Group-1-Library-Website/internal/app"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

const dueDateLayout = "2006-01-02"

// BookBorrower is the minimal interface needed to borrow a book.
type BookBorrower interface {
	BorrowBook(ctx context.Context, in app.BorrowBookInput) (domain.Loan, error)
}

// LoanLister lists the active loans across all borrowers.
type LoanLister interface {
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)
}

// HandleLoans serves POST /loans (borrow) and GET /loans (active loans).
func HandleLoans(borrower BookBorrower, lister LoanLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			loans, err := lister.ListActiveLoans(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]loanResponse, 0, len(loans))
			for _, l := range loans {
				resp = append(resp, newLoanResponse(l))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req borrowRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			in, err := req.toInput()
			if err != nil {
				writeServiceError(w, err)
				return
			}

			loan, err := borrower.BorrowBook(r.Context(), in)
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(borrowResponse{
				LoanID:  loan.ID,
				Message: "Book borrowed successfully!",
			})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// LoanReturner is the minimal interface needed to close a loan.
type LoanReturner interface {
	ReturnBook(ctx context.Context, in app.ReturnBookInput) (domain.Return, error)
}

// HandleReturnLoan serves POST /loans/{id}/return.
func HandleReturnLoan(svc LoanReturner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		loanID, ok := parseReturnLoanPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		ret, err := svc.ReturnBook(r.Context(), app.ReturnBookInput{LoanID: loanID})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(returnResponse{
			ReturnID: ret.ID,
			Message:  "Book returned successfully.",
		})
	}
}

// ReturnLister lists the completed-loan history across all borrowers.
type ReturnLister interface {
	ListReturns(ctx context.Context) ([]domain.Return, error)
}

// HandleListReturns serves GET /returns.
func HandleListReturns(lister ReturnLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		returns, err := lister.ListReturns(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := make([]returnRecordResponse, 0, len(returns))
		for _, ret := range returns {
			resp = append(resp, returnRecordResponse{
				ReturnID:   ret.ID,
				BookID:     ret.BookID,
				BookTitle:  ret.BookTitle,
				Author:     ret.Author,
				Genre:      ret.Genre,
				BorrowerID: ret.BorrowerID,
				BorrowDate: ret.BorrowDate,
				ReturnDate: ret.ReturnDate,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func parseReturnLoanPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return 0, false
	}
	if parts[0] != "loans" || parts[2] != "return" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type borrowRequest struct {
	BookID        int64  `json:"book_id"`
	BorrowerID    string `json:"borrower_id"`
	DueDate       string `json:"due_date"`
	LibrarianName string `json:"librarian_name"`
}

func (r borrowRequest) toInput() (app.BorrowBookInput, error) {
	if r.DueDate == "" {
		return app.BorrowBookInput{}, domain.ErrDueDateRequired
	}
	due, err := time.Parse(dueDateLayout, r.DueDate)
	if err != nil {
		return app.BorrowBookInput{}, domain.ErrInvalidDueDate
	}
	return app.BorrowBookInput{
		BookID:        r.BookID,
		BorrowerID:    r.BorrowerID,
		DueDate:       due,
		LibrarianName: r.LibrarianName,
	}, nil
}

type borrowResponse struct {
	LoanID  int64  `json:"loan_id"`
	Message string `json:"message"`
}

type returnResponse struct {
	ReturnID int64  `json:"return_id"`
	Message  string `json:"message"`
}

type loanResponse struct {
	LoanID        int64     `json:"loan_id"`
	BookID        int64     `json:"book_id"`
	BookTitle     string    `json:"book_title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	BorrowerID    string    `json:"borrower_id"`
	LibrarianName string    `json:"librarian_name"`
	Status        string    `json:"status"`
	BorrowDate    time.Time `json:"borrow_date"`
	DueDate       string    `json:"due_date"`
}

func newLoanResponse(l domain.Loan) loanResponse {
	return loanResponse{
		LoanID:        l.ID,
		BookID:        l.BookID,
		BookTitle:     l.BookTitle,
		Author:        l.Author,
		Genre:         l.Genre,
		BorrowerID:    l.BorrowerID,
		LibrarianName: l.LibrarianName,
		Status:        string(l.Status),
		BorrowDate:    l.BorrowDate,
		DueDate:       l.DueDate.Format(dueDateLayout),
	}
}

type returnRecordResponse struct {
	ReturnID   int64     `json:"return_id"`
	BookID     int64     `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	Author     string    `json:"author"`
	Genre      string    `json:"genre"`
	BorrowerID string    `json:"borrower_id"`
	BorrowDate time.Time `json:"borrow_date"`
	ReturnDate time.Time `json:"return_date"`
}
