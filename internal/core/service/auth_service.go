package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// AuthService implements sign-in for the single configured account.
type AuthService struct {
	account    domain.Account
	verifier   ports.CredentialVerifier
	issuer     ports.SessionIssuer
	store      ports.SessionStore
	renewAfter time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

// AuthConfig groups the collaborators of AuthService.
type AuthConfig struct {
	Account  domain.Account
	Verifier ports.CredentialVerifier
	Issuer   ports.SessionIssuer
	// Store may be nil, in which case logout only clears the cookie.
	Store ports.SessionStore
	// RenewAfter is the minimum token age before Renew re-issues it.
	// Zero or less turns renewal off.
	RenewAfter time.Duration
	Now        func() time.Time
}

func NewAuthService(cfg AuthConfig, log zerolog.Logger) *AuthService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		account:    cfg.Account,
		verifier:   cfg.Verifier,
		issuer:     cfg.Issuer,
		store:      cfg.Store,
		renewAfter: cfg.RenewAfter,
		now:        now,
		log:        log,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Session, error) {
	if !s.verifier.Verify(username, password) {
		return "", domain.Session{}, domain.ErrInvalidCredentials
	}

	token, sess, err := s.issuer.Issue(s.account.User())
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("token_id", sess.TokenID).Msg("session issued")
	return token, sess, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrInvalidSession
	}
	sess, err := s.issuer.Parse(token)
	if err != nil {
		return domain.Session{}, err
	}
	if s.store == nil {
		return sess, nil
	}

	revoked, err := s.store.IsRevoked(ctx, sess.TokenID)
	if err != nil {
		// Fail closed: an unreadable revocation list rejects the session.
		s.log.Error().Err(err).Str("token_id", sess.TokenID).Msg("revocation lookup failed")
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidSession, err)
	}
	if revoked {
		return domain.Session{}, domain.ErrSessionRevoked
	}
	return sess, nil
}

func (s *AuthService) Renew(ctx context.Context, sess domain.Session) (string, domain.Session, bool, error) {
	if s.renewAfter <= 0 || s.now().Sub(sess.IssuedAt) < s.renewAfter {
		return "", sess, false, nil
	}
	token, next, err := s.issuer.Issue(sess.User())
	if err != nil {
		return "", sess, false, fmt.Errorf("renew session: %w", err)
	}
	return token, next, true, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	sess, err := s.issuer.Parse(token)
	if err != nil {
		return nil
	}
	if s.store == nil {
		return nil
	}
	if err := s.store.Revoke(ctx, sess.TokenID, sess.Remaining(s.now())); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("token_id", sess.TokenID).Msg("session revoked")
	return nil
}
