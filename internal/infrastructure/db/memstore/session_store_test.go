package memstore

import (
	"context"
	"testing"
	"time"
)

func TestSessionStore_RevokeAndExpire(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	if err := s.Revoke(ctx, "a", time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := s.IsRevoked(ctx, "a"); !ok {
		t.Fatalf("expected a to be revoked")
	}
	if ok, _ := s.IsRevoked(ctx, "b"); ok {
		t.Fatalf("b was never revoked")
	}

	now = now.Add(time.Hour)
	if ok, _ := s.IsRevoked(ctx, "a"); ok {
		t.Fatalf("expected revocation to lapse with the token")
	}
}

func TestSessionStore_IgnoresExpiredTokens(t *testing.T) {
	s := NewSessionStore()
	if err := s.Revoke(context.Background(), "a", 0); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if len(s.revoked) != 0 {
		t.Fatalf("expected nothing stored for zero ttl")
	}
}
