package domain

import "time"

// User is a panel account. The password is stored only as an argon2
// encoded hash; the submitted plaintext never persists.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
