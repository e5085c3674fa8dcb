package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/openshelf/catalog/internal/catalog/domain"
	"github.com/openshelf/catalog/internal/catalog/service"
	"github.com/openshelf/catalog/internal/catalog/store"
	"github.com/openshelf/catalog/pkg/cryptox"
	"github.com/openshelf/catalog/pkg/idx"
	"github.com/openshelf/catalog/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var authTestSecret = []byte("service-test-secret")

func newAuthService(t *testing.T, st store.Store) *service.AuthService {
	t.Helper()
	return &service.AuthService{
		Store:  st,
		Signer: jwtx.HS256Signer{Secret: authTestSecret},
		Issuer: "catalog-test",
	}
}

func seedUser(t *testing.T, st store.Store, username, password, role string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestLoginIssuesTokenWithStoredRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	u := seedUser(t, st, "alice", "password123", domain.RoleAdmin)

	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	claims, err := jwtx.HS256Verifier{Secret: authTestSecret, Issuer: "catalog-test"}.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, domain.RoleAdmin, claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	seedUser(t, st, "alice", "password123", domain.RoleUser)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, "mallory", "password123")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	seedUser(t, st, "alice", "password123", domain.RoleUser)
	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	revoked, err := svc.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, token))

	// The token is still cryptographically valid, but must read as revoked.
	_, err = jwtx.HS256Verifier{Secret: authTestSecret, Issuer: "catalog-test"}.Verify(token)
	require.NoError(t, err)

	revoked, err = svc.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	seedUser(t, st, "alice", "password123", domain.RoleUser)
	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	require.NoError(t, svc.Logout(ctx, token))

	count, err := st.RevokedTokens().CountRevokedTokens(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestLogoutRejectsMissingAndGarbageTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	require.ErrorIs(t, svc.Logout(ctx, ""), service.ErrNoToken)
	require.ErrorIs(t, svc.Logout(ctx, "   "), service.ErrNoToken)
	require.ErrorIs(t, svc.Logout(ctx, "not-a-jwt"), service.ErrMalformedToken)

	// Nothing may have been written to the revocation store.
	count, err := st.RevokedTokens().CountRevokedTokens(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestLogoutAcceptsUnverifiableTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	// Signed by a different secret; the verifier would reject it, logout
	// must still record the revocation.
	claims := jwtx.NewSessionClaims("user-x", "x", domain.RoleUser, time.Hour, "elsewhere", time.Now().UTC())
	token, err := jwtx.HS256Signer{Secret: []byte("other-secret")}.Sign(claims)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	revoked, err := svc.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestRevocationExpiresAfterWindow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &service.AuthService{
		Store:            st,
		Signer:           jwtx.HS256Signer{Secret: authTestSecret},
		Issuer:           "catalog-test",
		RevocationWindow: time.Hour,
	}

	// A record created 2h ago is outside the window: logically invisible.
	old := time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, st.RevokedTokens().CreateRevokedToken(ctx, domain.RevokedToken{
		Token:     "stale-token",
		ExpiresAt: old.Add(time.Hour),
		CreatedAt: old,
	}))

	revoked, err := svc.IsRevoked(ctx, "stale-token")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestHousekeepingSweepPurgesDeadRecords(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	now := time.Now().UTC()
	stale := now.Add(-2 * time.Hour)

	require.NoError(t, st.RevokedTokens().CreateRevokedToken(ctx, domain.RevokedToken{
		Token: "stale", ExpiresAt: stale.Add(time.Hour), CreatedAt: stale,
	}))
	require.NoError(t, st.RevokedTokens().CreateRevokedToken(ctx, domain.RevokedToken{
		Token: "live", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	hk := service.NewHousekeepingService(st, slog.Default(), time.Hour, time.Hour)
	hk.Sweep(ctx)

	count, err := st.RevokedTokens().CountRevokedTokens(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	revoked, err := st.RevokedTokens().IsTokenRevoked(ctx, "live", now.Add(-time.Hour))
	require.NoError(t, err)
	require.True(t, revoked)
}
