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

// BookSearcher is the minimal interface needed to query the catalog.
type BookSearcher interface {
	SearchBooks(ctx context.Context, filter domain.BookSearch) ([]domain.BookWithBorrowCount, error)
}

// CatalogManager is the minimal interface for librarian inventory actions.
type CatalogManager interface {
	AddBook(ctx context.Context, in app.AddBookInput) (domain.Book, error)
	RemoveBook(ctx context.Context, bookID int64) error
}

// HandleBooks serves GET /books (search) and POST /books (librarian add).
func HandleBooks(search BookSearcher, catalog CatalogManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			filter, err := parseSearchQuery(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeValidation, err.Error())
				return
			}
			books, err := search.SearchBooks(r.Context(), filter)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]bookResponse, 0, len(books))
			for _, b := range books {
				resp = append(resp, newBookResponse(b))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req addBookRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			book, err := catalog.AddBook(r.Context(), app.AddBookInput{
				Title:           req.Title,
				Author:          req.Author,
				Genre:           req.Genre,
				PublicationYear: req.PublicationYear,
				Quantity:        req.Quantity,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(addBookResponse{
				BookID:  book.ID,
				Message: "Book added successfully!",
			})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleBookByID serves DELETE /books/{id} (librarian remove).
func HandleBookByID(catalog CatalogManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, ok := parseBookPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		if err := catalog.RemoveBook(r.Context(), bookID); err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageResponse{Message: "Book removed successfully."})
	}
}

var sortParams = map[string]domain.BookSort{
	"":              domain.BookSortRelevance,
	"relevance":     domain.BookSortRelevance,
	"title":         domain.BookSortTitle,
	"author":        domain.BookSortAuthor,
	"most_borrowed": domain.BookSortMostBorrowed,
	"newest":        domain.BookSortNewestFirst,
	"oldest":        domain.BookSortOldestFirst,
}

func parseSearchQuery(r *http.Request) (domain.BookSearch, error) {
	q := r.URL.Query()

	filter := domain.BookSearch{
		Text:  q.Get("q"),
		Genre: q.Get("genre"),
	}

	if v := q.Get("year_from"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return domain.BookSearch{}, domain.ErrInvalidYear
		}
		filter.YearFrom = &year
	}
	if v := q.Get("year_to"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return domain.BookSearch{}, domain.ErrInvalidYear
		}
		filter.YearTo = &year
	}

	sort, ok := sortParams[q.Get("sort")]
	if !ok {
		return domain.BookSearch{}, domain.ErrInvalidSort
	}
	filter.Sort = sort

	return filter, nil
}

func parseBookPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "books" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type addBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre,omitempty"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	Quantity        int    `json:"quantity"`
}

type addBookResponse struct {
	BookID  int64  `json:"book_id"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type bookResponse struct {
	BookID          int64     `json:"book_id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre"`
	PublicationYear *int      `json:"publication_year"`
	Quantity        int       `json:"quantity"`
	BorrowCount     int       `json:"borrowed_count"`
	CreatedAt       time.Time `json:"created_at"`
}

func newBookResponse(b domain.BookWithBorrowCount) bookResponse {
	return bookResponse{
		BookID:          b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationYear: b.PublicationYear,
		Quantity:        b.Quantity,
		BorrowCount:     b.BorrowCount,
		CreatedAt:       b.CreatedAt,
	}
}
