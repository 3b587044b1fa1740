package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

const (
	// DefaultSessionTTL is how long a session token stays valid.
	DefaultSessionTTL = 24 * time.Hour

	sessionIssuer   = "food-notes"
	sessionAudience = "food-notes-web"
)

// sessionClaims is the JWT payload of a session cookie.
type sessionClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

type sessionIssuerImpl struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionOption customises the session issuer.
type SessionOption func(*sessionIssuerImpl)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionIssuerImpl) { s.now = now }
}

// NewSessionIssuer returns an HS256 issuer. ttl <= 0 means DefaultSessionTTL.
func NewSessionIssuer(secret string, ttl time.Duration, opts ...SessionOption) ports.SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &sessionIssuerImpl{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a new token for user. Times are truncated to whole seconds,
// the resolution of JWT numeric dates.
func (s *sessionIssuerImpl) Issue(user domain.User) (string, domain.Session, error) {
	iat := s.now().Truncate(time.Second)
	sess := domain.Session{
		AccountID: user.ID,
		Name:      user.Name,
		TokenID:   uuid.NewString(),
		IssuedAt:  iat,
		ExpiresAt: iat.Add(s.ttl),
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Audience:  jwt.ClaimStrings{sessionAudience},
			Subject:   sess.AccountID,
			ID:        sess.TokenID,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		Name: sess.Name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, sess, nil
}

// Parse verifies the signature and the time window. A token issued at T is
// accepted while now < T+ttl.
func (s *sessionIssuerImpl) Parse(token string) (domain.Session, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithAudience(sessionAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidSession, err)
	}
	if claims.ID == "" || claims.IssuedAt == nil {
		return domain.Session{}, fmt.Errorf("%w: missing token id", domain.ErrInvalidSession)
	}

	return domain.Session{
		AccountID: claims.Subject,
		Name:      claims.Name,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
