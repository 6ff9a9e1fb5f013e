package domain

import "time"

// User is the domain entity for a registered account.
// Username and email are unique across all users; only the bcrypt hash
// of the password is ever stored.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
