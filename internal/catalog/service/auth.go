package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/openshelf/catalog/internal/catalog/domain"
	"github.com/openshelf/catalog/internal/catalog/store"
	"github.com/openshelf/catalog/pkg/cryptox"
	"github.com/openshelf/catalog/pkg/jwtx"
	"github.com/openshelf/catalog/pkg/slogx"
)

// DefaultRevocationWindow bounds how long a revocation record stays live.
// It matches the token TTL: a token older than this is dead on its own.
const DefaultRevocationWindow = time.Hour

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password";
	// the split must not be observable, to avoid username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoToken means logout was called without a token.
	ErrNoToken = errors.New("no token provided")

	// ErrMalformedToken means the logout token did not parse as a JWT with an
	// expiry claim. Accepting arbitrary strings would let anyone pollute the
	// revocation store.
	ErrMalformedToken = errors.New("malformed token")
)

type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer
	Issuer string

	// TokenTTL is the session token validity window (default 1h).
	TokenTTL time.Duration

	// RevocationWindow is how long a revocation record is honored after
	// creation, independent of the token's own expiry.
	RevocationWindow time.Duration
}

// dummyVerifyHash is a throwaway argon2id hash verified against when the
// username does not exist, so login latency does not reveal user existence.
var dummyVerifyHash = sync.OnceValue(func() string {
	hash, err := cryptox.HashPassword("dummy-password-for-timing")
	if err != nil {
		// Hashing only fails if the system RNG is broken; nothing sane to do.
		panic(err)
	}
	return hash
})

// Login verifies the credentials and issues a signed session token embedding
// the user's id, username and role.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyVerifyHash())
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login password verification failed", slog.String("user_id", u.ID))
		return "", ErrInvalidCredentials
	}

	claims := jwtx.NewSessionClaims(u.ID, u.Username, u.Role, s.tokenTTL(), s.Issuer, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// Logout revokes the raw token string. The signature is deliberately NOT
// re-verified: logout must succeed even for a token the verifier would reject
// (e.g. seconds past expiry). The token must still parse as a JWT carrying an
// expiry claim, and the record's lifetime is capped at the revocation window,
// so a forged far-future expiry cannot pin a record in the store.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return ErrNoToken
	}

	claims, err := jwtx.DecodeUnverified(rawToken)
	if err != nil || claims.ExpiresAt == nil {
		return ErrMalformedToken
	}

	now := time.Now().UTC()
	expiresAt := claims.ExpiresAt.Time.UTC()
	if cap := now.Add(s.revocationWindow()); expiresAt.After(cap) {
		expiresAt = cap
	}

	err = s.Store.RevokedTokens().CreateRevokedToken(ctx, domain.RevokedToken{
		Token:     rawToken,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Revoking twice is a no-op, not an error.
		return nil
	}
	return err
}

// IsRevoked implements httpx.RevocationChecker. Records older than the
// revocation window are treated as absent.
func (s *AuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	since := time.Now().UTC().Add(-s.revocationWindow())
	return s.Store.RevokedTokens().IsTokenRevoked(ctx, token, since)
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultSessionTTL
}

func (s *AuthService) revocationWindow() time.Duration {
	if s.RevocationWindow > 0 {
		return s.RevocationWindow
	}
	return DefaultRevocationWindow
}
