package service

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

var (
	// ErrMissingPasswordHash is returned by NewAccount when no hash is configured.
	ErrMissingPasswordHash = errors.New("password hash not configured")
	// ErrInvalidPasswordHash is returned by NewAccount when the hash is not base64.
	ErrInvalidPasswordHash = errors.New("password hash is not valid base64")
)

// NewAccount builds the configured account from the username and the
// base64-encoded bcrypt hash. On error the returned account carries no hash,
// so every login against it fails.
func NewAccount(username, encodedHash string) (domain.Account, error) {
	acc := domain.Account{ID: domain.AccountID, Username: username}

	encodedHash = strings.TrimSpace(encodedHash)
	if encodedHash == "" {
		return acc, ErrMissingPasswordHash
	}
	hash, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return acc, fmt.Errorf("%w: %v", ErrInvalidPasswordHash, err)
	}
	acc.PasswordHash = hash
	return acc, nil
}

// LoadAccount is NewAccount for start-up: a missing or undecodable hash is
// logged and the account is returned without one, so logins fail closed
// while the process keeps serving.
func LoadAccount(username, encodedHash string, log zerolog.Logger) domain.Account {
	acc, err := NewAccount(username, encodedHash)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("account has no usable password hash, every login will fail")
	}
	return acc
}

// EncodePasswordHash produces the value expected in APP_PASSWORD_HASH.
func EncodePasswordHash(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

type credentialVerifier struct {
	account domain.Account
	log     zerolog.Logger
}

// NewCredentialVerifier returns a verifier bound to a single account.
func NewCredentialVerifier(account domain.Account, log zerolog.Logger) ports.CredentialVerifier {
	return &credentialVerifier{account: account, log: log}
}

// Verify reports whether username and password match the account. bcrypt
// runs whenever the account is configured so a wrong username costs the
// same as a wrong password.
func (v *credentialVerifier) Verify(username, password string) bool {
	if !v.account.Configured() || username == "" || password == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.account.Username)) == 1

	err := bcrypt.CompareHashAndPassword(v.account.PasswordHash, []byte(password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			v.log.Error().Err(err).Msg("password hash comparison failed")
		}
		return false
	}
	return userOK
}
