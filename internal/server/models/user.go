package models

import "time"

// User is a server-side account record. PasswordHash is a bcrypt hash and
// never leaves the server; the JSON shape below is what API clients see.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
