package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lealknar/Group-1-Library-Website/internal/app"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

func TestHandleBooks_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedFilter domain.BookSearch
	}{
		{
			name:           "no filters",
			query:          "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "text and genre",
			query:          "?q=dune&genre=Sci-Fi",
			expectedStatus: http.StatusOK,
			expectedFilter: domain.BookSearch{Text: "dune", Genre: "Sci-Fi"},
		},
		{
			name:           "sort by title",
			query:          "?sort=title",
			expectedStatus: http.StatusOK,
			expectedFilter: domain.BookSearch{Sort: domain.BookSortTitle},
		},
		{
			name:           "sort by most borrowed",
			query:          "?sort=most_borrowed",
			expectedStatus: http.StatusOK,
			expectedFilter: domain.BookSearch{Sort: domain.BookSortMostBorrowed},
		},
		{
			name:           "unknown sort",
			query:          "?sort=fanciness",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad year_from",
			query:          "?year_from=MMXX",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad year_to",
			query:          "?year_to=later",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCatalogService{}
			req := httptest.NewRequest(http.MethodGet, "/books"+tt.query, nil)
			rec := httptest.NewRecorder()

			HandleBooks(svc, svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedStatus == http.StatusOK && svc.lastFilter != tt.expectedFilter {
				t.Fatalf("expected filter %+v, got %+v", tt.expectedFilter, svc.lastFilter)
			}
		})
	}
}

func TestHandleBooks_SearchYearRange(t *testing.T) {
	t.Parallel()

	svc := &stubCatalogService{}
	req := httptest.NewRequest(http.MethodGet, "/books?year_from=1990&year_to=2000", nil)
	rec := httptest.NewRecorder()

	HandleBooks(svc, svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastFilter.YearFrom == nil || *svc.lastFilter.YearFrom != 1990 {
		t.Fatalf("expected year_from 1990, got %v", svc.lastFilter.YearFrom)
	}
	if svc.lastFilter.YearTo == nil || *svc.lastFilter.YearTo != 2000 {
		t.Fatalf("expected year_to 2000, got %v", svc.lastFilter.YearTo)
	}
}

func TestHandleBooks_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","quantity":3}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"book_id":11`,
		},
		{
			name:           "invalid json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing title",
			body:           `{"author":"Frank Herbert","quantity":3}`,
			serviceErr:     domain.ErrTitleRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero quantity",
			body:           `{"title":"Dune","author":"Frank Herbert","quantity":0}`,
			serviceErr:     domain.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCatalogService{book: domain.Book{ID: 11}, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleBooks(svc, svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleBookByID_Remove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		method         string
		serviceErr     error
		expectedStatus int
	}{
		{"success", "/books/11", http.MethodDelete, nil, http.StatusOK},
		{"not found", "/books/11", http.MethodDelete, domain.ErrBookNotFound, http.StatusNotFound},
		{"active loans", "/books/11", http.MethodDelete, domain.ErrBookHasActiveLoans, http.StatusConflict},
		{"bad id", "/books/zero", http.MethodDelete, nil, http.StatusNotFound},
		{"method not allowed", "/books/11", http.MethodPost, nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCatalogService{err: tt.serviceErr}
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			HandleBookByID(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

type stubCatalogService struct {
	book       domain.Book
	books      []domain.BookWithBorrowCount
	err        error
	lastFilter domain.BookSearch
}

func (s *stubCatalogService) SearchBooks(_ context.Context, filter domain.BookSearch) ([]domain.BookWithBorrowCount, error) {
	s.lastFilter = filter
	return s.books, s.err
}

func (s *stubCatalogService) AddBook(_ context.Context, _ app.AddBookInput) (domain.Book, error) {
	return s.book, s.err
}

func (s *stubCatalogService) RemoveBook(_ context.Context, _ int64) error {
	return s.err
}
