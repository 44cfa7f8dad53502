package models

import "time"

// User is a registered account. Email is stored lowercased and is the
// case-insensitive unique key; PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
