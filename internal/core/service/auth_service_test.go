package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubVerifier struct {
	ok    bool
	calls int
}

func (v *stubVerifier) Verify(username, password string) bool {
	v.calls++
	return v.ok
}

type stubSessionStore struct {
	revoked   map[string]time.Duration
	lookupErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{revoked: make(map[string]time.Duration)}
}

func (s *stubSessionStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.revoked[tokenID] = ttl
	return nil
}

func (s *stubSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.lookupErr != nil {
		return false, s.lookupErr
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func newTestAuthService(verifier *stubVerifier, store *stubSessionStore, clock *fakeClock, renewAfter time.Duration) *AuthService {
	cfg := AuthConfig{
		Account:    domain.Account{ID: domain.AccountID, Username: "admin", PasswordHash: []byte("h")},
		Verifier:   verifier,
		Issuer:     NewSessionIssuer("secret", 0, WithClock(clock.Now)),
		RenewAfter: renewAfter,
		Now:        clock.Now,
	}
	if store != nil {
		cfg.Store = store
	}
	return NewAuthService(cfg, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newTestAuthService(&stubVerifier{ok: true}, nil, clock, 0)

	token, sess, err := svc.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if sess.AccountID != "1" || sess.Name != "admin" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	verifier := &stubVerifier{ok: false}
	svc := newTestAuthService(verifier, nil, clock, 0)

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("expected verifier to be called once, got %d", verifier.calls)
	}
}

// ---------------------------------------------------------------------------
// Authenticate / Logout
// ---------------------------------------------------------------------------

func TestAuthService_Authenticate(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	store := newStubSessionStore()
	svc := newTestAuthService(&stubVerifier{ok: true}, store, clock, 0)

	token, _, err := svc.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), token); err != nil {
		t.Fatalf("expected valid session, got %v", err)
	}

	clock.t = issuedAt.Add(24 * time.Hour)
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected expired session, got %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected empty token to be rejected, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	store := newStubSessionStore()
	svc := newTestAuthService(&stubVerifier{ok: true}, store, clock, 0)

	token, sess, err := svc.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	clock.t = issuedAt.Add(time.Hour)
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ttl := store.revoked[sess.TokenID]; ttl != 23*time.Hour {
		t.Fatalf("expected revocation ttl of 23h, got %v", ttl)
	}

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}

	// Unknown tokens are ignored.
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("expected nil for garbage token, got %v", err)
	}
}

func TestAuthService_Authenticate_StoreFailureRejects(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	store := newStubSessionStore()
	svc := newTestAuthService(&stubVerifier{ok: true}, store, clock, 0)

	token, _, err := svc.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	store.lookupErr = errors.New("redis down")
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession on store failure, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Renew
// ---------------------------------------------------------------------------

func TestAuthService_Renew(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newTestAuthService(&stubVerifier{ok: true}, nil, clock, time.Hour)

	_, sess, err := svc.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	clock.t = issuedAt.Add(30 * time.Minute)
	if _, _, renewed, err := svc.Renew(context.Background(), sess); err != nil || renewed {
		t.Fatalf("expected no renewal before threshold, renewed=%v err=%v", renewed, err)
	}

	clock.t = issuedAt.Add(2 * time.Hour)
	token, next, renewed, err := svc.Renew(context.Background(), sess)
	if err != nil || !renewed {
		t.Fatalf("expected renewal, renewed=%v err=%v", renewed, err)
	}
	if token == "" || next.TokenID == sess.TokenID {
		t.Fatalf("expected fresh token, got %+v", next)
	}
	if !next.ExpiresAt.Equal(clock.t.Add(24 * time.Hour)) {
		t.Fatalf("expected expiry to slide to %v, got %v", clock.t.Add(24*time.Hour), next.ExpiresAt)
	}
}
