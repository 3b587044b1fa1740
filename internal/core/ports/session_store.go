package ports

import (
	"context"
	"time"
)

// SessionStore remembers revoked token ids until they would have expired.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
