package http

import (
	"context"
	"net/http"
	"time"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

// HistoryProvider is the minimal interface for the history endpoint.
type HistoryProvider interface {
	UserHistory(ctx context.Context, borrowerID string) ([]domain.HistoryEntry, error)
}

// HandleUserHistory serves GET /history?borrower_id=. The borrower
// identity is always explicit; nothing is read from ambient session state.
func HandleUserHistory(svc HistoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		borrowerID := r.URL.Query().Get("borrower_id")
		entries, err := svc.UserHistory(r.Context(), borrowerID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]historyEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, historyEntryResponse{
				BookTitle:  e.BookTitle,
				Author:     e.Author,
				BorrowDate: e.BorrowDate,
				ReturnDate: e.ReturnDate,
				Status:     e.Status,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type historyEntryResponse struct {
	BookTitle  string     `json:"book_title"`
	Author     string     `json:"author"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`
}
