// Package models defines the client-side views of records returned by the
// remote API. Fields the client does not consume are simply not declared.
package models

// User is the identity record returned alongside a credential on login, or
// fetched during rehydration. Immutable for the life of a session; a new
// login replaces it wholesale.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Clone returns a copy so store accessors never leak shared state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
