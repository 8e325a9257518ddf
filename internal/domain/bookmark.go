package domain

import "time"

// Bookmark is a user's saved-for-later marker on a book. At most one
// exists per (UserID, BookID) pair; the store enforces this.
type Bookmark struct {
	ID        int64
	UserID    int64
	BookID    int64
	CreatedAt time.Time
}

// BookmarkedBook is a bookmark joined with its live book row, as shown on
// the user's saved list.
type BookmarkedBook struct {
	BookmarkID int64
	BookID     int64
	Title      string
	Author     string
	Genre      string
}
