package app

import (
	"context"

	"github.com/lealknar/Group-1-Library-Website/internal/clock"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type BookmarkRepository interface {
	DeleteByUserAndBook(ctx context.Context, userID, bookID int64) (bool, error)
	Insert(ctx context.Context, bm domain.Bookmark) (int64, bool, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.BookmarkedBook, error)
	DeleteByID(ctx context.Context, bookmarkID, userID int64) (bool, error)
}

type BookmarkService struct {
	repo  BookmarkRepository
	clock clock.Clock
}

func NewBookmarkService(repo BookmarkRepository, clk clock.Clock) *BookmarkService {
	return &BookmarkService{
		repo:  repo,
		clock: clk,
	}
}

// Toggle bookmarks the book if no bookmark exists and removes it
// otherwise. The (user_id, book_id) uniqueness constraint guards the
// insert; a concurrent duplicate insert surfaces as a conflict and is
// reported as success, so retries are idempotent.
func (s *BookmarkService) Toggle(ctx context.Context, userID, bookID int64) (bool, error) {
	if userID <= 0 || bookID <= 0 {
		return false, domain.ErrInvalidID
	}

	removed, err := s.repo.DeleteByUserAndBook(ctx, userID, bookID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	_, _, err = s.repo.Insert(ctx, domain.Bookmark{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *BookmarkService) ListForUser(ctx context.Context, userID int64) ([]domain.BookmarkedBook, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListForUser(ctx, userID)
}

// Remove deletes a bookmark by id, scoped to its owner so users cannot
// delete each other's bookmarks.
func (s *BookmarkService) Remove(ctx context.Context, bookmarkID, userID int64) error {
	if bookmarkID <= 0 || userID <= 0 {
		return domain.ErrInvalidID
	}

	deleted, err := s.repo.DeleteByID(ctx, bookmarkID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrBookmarkNotFound
	}
	return nil
}
