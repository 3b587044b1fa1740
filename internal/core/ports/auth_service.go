package ports

import (
	"context"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

// AuthService is the sign-in use case used by the HTTP layer.
type AuthService interface {
	// Login checks the credentials and issues a session token.
	Login(ctx context.Context, username, password string) (string, domain.Session, error)
	// Authenticate decodes a token and rejects expired or revoked sessions.
	Authenticate(ctx context.Context, token string) (domain.Session, error)
	// Renew re-issues the token when it is old enough. The bool reports
	// whether a new token was produced.
	Renew(ctx context.Context, s domain.Session) (string, domain.Session, bool, error)
	// Logout revokes the session carried by token. Unknown or expired
	// tokens are ignored.
	Logout(ctx context.Context, token string) error
}

// CredentialVerifier checks a username/password pair against the
// configured account.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// SessionIssuer signs and decodes session tokens.
type SessionIssuer interface {
	Issue(user domain.User) (string, domain.Session, error)
	Parse(token string) (domain.Session, error)
}
