package domain

import "time"

// Book is a catalog entry. Quantity is the number of copies currently
// available for borrowing, not a historical total; it is decremented on
// borrow and incremented on return and never goes below zero.
type Book struct {
	ID              int64
	Title           string
	Author          string
	Genre           string
	PublicationYear *int
	Quantity        int
	CreatedAt       time.Time
}

// BookSort selects the ordering of catalog search results.
type BookSort string

const (
	BookSortRelevance    BookSort = ""
	BookSortTitle        BookSort = "title"
	BookSortAuthor       BookSort = "author"
	BookSortMostBorrowed BookSort = "most_borrowed"
	BookSortNewestFirst  BookSort = "newest"
	BookSortOldestFirst  BookSort = "oldest"
)

// BookSearch describes a catalog query. Zero-valued fields are
// unconstrained; Text matches title or author as a case-insensitive
// substring.
type BookSearch struct {
	Text     string
	Genre    string
	YearFrom *int
	YearTo   *int
	Sort     BookSort
}

// BookWithBorrowCount is a search result row: the book plus the number of
// loans currently out for it.
type BookWithBorrowCount struct {
	Book
	BorrowCount int
}
