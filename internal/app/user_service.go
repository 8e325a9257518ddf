package app

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lealknar/Group-1-Library-Website/internal/clock"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// UserService handles account registration and credential checks. There is
// no session state: login only verifies credentials, and callers pass
// identity explicitly into every other operation.
type UserService struct {
	repo  UserRepository
	clock clock.Clock
}

func NewUserService(repo UserRepository, clk clock.Clock) *UserService {
	return &UserService{
		repo:  repo,
		clock: clk,
	}
}

type RegisterInput struct {
	FullName string
	Mobile   string
	Email    string
	Password string
}

const minPasswordLen = 12

func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	mobile := strings.TrimSpace(in.Mobile)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)

	if fullName == "" || mobile == "" || email == "" || password == "" {
		return domain.User{}, domain.ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return domain.User{}, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		FullName:     fullName,
		Mobile:       mobile,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	user.ID = id
	return user, nil
}

// Authenticate verifies email and password. Unknown emails and wrong
// passwords return the same error so the response does not leak which
// accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}
