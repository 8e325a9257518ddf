package domain

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; the plain
// password is never stored.
type User struct {
	ID           int64
	FullName     string
	Mobile       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
