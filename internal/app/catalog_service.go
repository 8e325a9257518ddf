package app

import (
	"context"

	"github.com/lealknar/Group-1-Library-Website/internal/clock"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type CatalogRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateBook(ctx context.Context, book domain.Book) (int64, error)
	GetBook(ctx context.Context, bookID int64) (domain.Book, error)
	GetBookForUpdate(ctx context.Context, bookID int64) (domain.Book, error)
	CountActiveLoans(ctx context.Context, bookID int64) (int, error)
	DeleteBook(ctx context.Context, bookID int64) (bool, error)
}

type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type AddBookInput struct {
	Title           string
	Author          string
	Genre           string
	PublicationYear *int
	Quantity        int
}

const defaultGenre = "Unknown"

func (s *CatalogService) AddBook(ctx context.Context, in AddBookInput) (domain.Book, error) {
	if in.Title == "" {
		return domain.Book{}, domain.ErrTitleRequired
	}
	if in.Author == "" {
		return domain.Book{}, domain.ErrAuthorRequired
	}
	if in.Quantity <= 0 {
		return domain.Book{}, domain.ErrInvalidQuantity
	}
	if in.PublicationYear != nil && *in.PublicationYear < 0 {
		return domain.Book{}, domain.ErrInvalidYear
	}

	genre := in.Genre
	if genre == "" {
		genre = defaultGenre
	}

	book := domain.Book{
		Title:           in.Title,
		Author:          in.Author,
		Genre:           genre,
		PublicationYear: in.PublicationYear,
		Quantity:        in.Quantity,
		CreatedAt:       s.clock.Now(),
	}

	id, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return domain.Book{}, err
	}
	book.ID = id
	return book, nil
}

func (s *CatalogService) GetBook(ctx context.Context, bookID int64) (domain.Book, error) {
	if bookID <= 0 {
		return domain.Book{}, domain.ErrInvalidID
	}
	return s.repo.GetBook(ctx, bookID)
}

// RemoveBook deletes a catalog entry. Deletion is refused while active
// loans reference the book, so the return path always finds its
// quantity-increment target. The book row is locked before the count;
// the borrow workflow takes the same lock, so a borrow cannot commit
// between the check and the delete.
func (s *CatalogService) RemoveBook(ctx context.Context, bookID int64) error {
	if bookID <= 0 {
		return domain.ErrInvalidID
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetBookForUpdate(txCtx, bookID); err != nil {
			return err
		}

		active, err := s.repo.CountActiveLoans(txCtx, bookID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrBookHasActiveLoans
		}

		deleted, err := s.repo.DeleteBook(txCtx, bookID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrBookNotFound
		}
		return nil
	})
}
