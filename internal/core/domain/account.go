package domain

import (
	"errors"
	"time"
)

// AccountID is the identifier reported for the single configured account.
const AccountID = "1"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionRevoked     = errors.New("session revoked")
)

// Account is the one identity allowed to sign in. It is built once from
// configuration at start-up and never mutated afterwards.
type Account struct {
	ID           string
	Username     string
	PasswordHash []byte
}

// Configured reports whether both a username and a password hash are present.
func (a Account) Configured() bool {
	return a.Username != "" && len(a.PasswordHash) > 0
}

// User returns the public view of the account.
func (a Account) User() User {
	return User{ID: a.ID, Name: a.Username}
}

// User is what the session exposes about the signed-in account.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is the decoded form of a signed session token.
type Session struct {
	AccountID string
	Name      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// User returns the account view carried by the session.
func (s Session) User() User {
	return User{ID: s.AccountID, Name: s.Name}
}

// Remaining is the lifetime left at now; zero once expired.
func (s Session) Remaining(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
