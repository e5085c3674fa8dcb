package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openshelf/catalog/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-please-rotate")

func signer() jwtx.HS256Signer     { return jwtx.HS256Signer{Secret: testSecret} }
func verifier() jwtx.HS256Verifier { return jwtx.HS256Verifier{Secret: testSecret, Issuer: "catalog"} }

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	claims := jwtx.NewSessionClaims("user-1", "alice", "admin", time.Hour, "catalog", time.Now().UTC())

	token, err := signer().Sign(claims)
	require.NoError(t, err)

	got, err := verifier().Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "admin", got.Role)
	require.NotEmpty(t, got.ID)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	// Issued far enough in the past that the 1h window has elapsed.
	claims := jwtx.NewSessionClaims("user-1", "alice", "user", time.Hour, "catalog",
		time.Now().UTC().Add(-2*time.Hour))

	token, err := signer().Sign(claims)
	require.NoError(t, err)

	_, err = verifier().Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	claims := jwtx.NewSessionClaims("user-1", "alice", "user", time.Hour, "catalog", time.Now().UTC())
	token, err := jwtx.HS256Signer{Secret: []byte("some-other-secret")}.Sign(claims)
	require.NoError(t, err)

	_, err = verifier().Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	claims := jwtx.NewSessionClaims("user-1", "alice", "admin", time.Hour, "catalog", time.Now().UTC())
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier().Verify(token)
	require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	t.Parallel()

	claims := jwtx.NewSessionClaims("user-1", "alice", "user", time.Hour, "other-service", time.Now().UTC())
	token, err := signer().Sign(claims)
	require.NoError(t, err)

	_, err = verifier().Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := verifier().Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "input %q", raw)
	}
}

func TestDecodeUnverified(t *testing.T) {
	t.Parallel()

	t.Run("decodes claims without the secret", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("user-1", "alice", "user", time.Hour, "catalog", time.Now().UTC())
		token, err := signer().Sign(claims)
		require.NoError(t, err)

		got, err := jwtx.DecodeUnverified(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", got.Subject)
		require.NotNil(t, got.ExpiresAt)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := jwtx.DecodeUnverified("definitely-not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}
