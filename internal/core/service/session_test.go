package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

var issuedAt = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func TestSessionIssuer_IssueAndParse(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	issuer := NewSessionIssuer("secret", 0, WithClock(clock.Now))

	token, sess, err := issuer.Issue(domain.User{ID: "1", Name: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if sess.TokenID == "" {
		t.Fatalf("expected token id")
	}
	if !sess.ExpiresAt.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h expiry, got %v", sess.ExpiresAt)
	}

	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.AccountID != "1" || got.Name != "admin" || got.TokenID != sess.TokenID {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !got.IssuedAt.Equal(issuedAt) {
		t.Fatalf("issued at = %v, want %v", got.IssuedAt, issuedAt)
	}
}

func TestSessionIssuer_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	issuer := NewSessionIssuer("secret", 24*time.Hour, WithClock(clock.Now))

	token, _, err := issuer.Issue(domain.User{ID: "1", Name: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"just issued", issuedAt, true},
		{"23h59m59s later", issuedAt.Add(24*time.Hour - time.Second), true},
		{"exactly 24h later", issuedAt.Add(24 * time.Hour), false},
		{"25h later", issuedAt.Add(25 * time.Hour), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock.t = tc.at
			_, err := issuer.Parse(token)
			if tc.valid && err != nil {
				t.Fatalf("expected valid token, got %v", err)
			}
			if !tc.valid && !errors.Is(err, domain.ErrInvalidSession) {
				t.Fatalf("expected ErrInvalidSession, got %v", err)
			}
		})
	}
}

func TestSessionIssuer_RejectsForeignTokens(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	issuer := NewSessionIssuer("secret", 0, WithClock(clock.Now))
	other := NewSessionIssuer("other-secret", 0, WithClock(clock.Now))

	foreign, _, err := other.Issue(domain.User{ID: "1", Name: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Parse(foreign); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected wrong-secret token to be rejected, got %v", err)
	}

	if _, err := issuer.Parse("not-a-token"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected garbage to be rejected, got %v", err)
	}

	// Signed with the right secret but without the session issuer claim.
	claims := jwt.MapClaims{
		"sub": "1",
		"jti": "x",
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(raw); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected token without issuer to be rejected, got %v", err)
	}
}

func TestSessionIssuer_RejectsNoneAlgorithm(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	issuer := NewSessionIssuer("secret", 0, WithClock(clock.Now))

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Audience:  jwt.ClaimStrings{sessionAudience},
			ID:        "x",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(raw); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected alg=none to be rejected, got %v", err)
	}
}
