package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openshelf/catalog/pkg/httpx"
	"github.com/openshelf/catalog/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[token], nil
}

var authSecret = []byte("authn-test-secret")

func issueToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwtx.NewSessionClaims("user-1", "alice", role, ttl, "catalog", time.Now().UTC())
	token, err := jwtx.HS256Signer{Secret: authSecret}.Sign(claims)
	require.NoError(t, err)
	return token
}

func protectedHandler(t *testing.T, revocations httpx.RevocationChecker, extra ...httpx.Middleware) http.Handler {
	t.Helper()
	verifier := jwtx.HS256Verifier{Secret: authSecret, Issuer: "catalog"}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusOK, httpx.UserIDFromCtx(r.Context()))
	})

	mws := append([]httpx.Middleware{httpx.BearerAuth(verifier, revocations)}, extra...)
	return httpx.Chain(inner, mws...)
}

func doRequest(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBearerAuthDecisions(t *testing.T) {
	t.Parallel()

	none := stubRevocations{}

	t.Run("missing token is 401", func(t *testing.T) {
		rec := doRequest(protectedHandler(t, none), "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked token is 401 even while cryptographically valid", func(t *testing.T) {
		token := issueToken(t, "user", time.Hour)
		rec := doRequest(protectedHandler(t, stubRevocations{revoked: map[string]bool{token: true}}), token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body httpx.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.False(t, body.Success)
		require.Equal(t, "Token revoked", body.Message)
	})

	t.Run("expired unrevoked token is 403", func(t *testing.T) {
		token := issueToken(t, "user", -time.Minute)
		rec := doRequest(protectedHandler(t, none), token)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("tampered token is 403", func(t *testing.T) {
		token := issueToken(t, "user", time.Hour)
		rec := doRequest(protectedHandler(t, none), token+"x")
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("revocation store failure is 500, never authorized", func(t *testing.T) {
		token := issueToken(t, "user", time.Hour)
		rec := doRequest(protectedHandler(t, stubRevocations{err: errors.New("store unreachable")}), token)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("valid token reaches the handler with identity in context", func(t *testing.T) {
		token := issueToken(t, "user", time.Hour)
		rec := doRequest(protectedHandler(t, none), token)
		require.Equal(t, http.StatusOK, rec.Code)

		var body httpx.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "user-1", body.Message)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	none := stubRevocations{}

	t.Run("role mismatch is 403", func(t *testing.T) {
		token := issueToken(t, "user", time.Hour)
		rec := doRequest(protectedHandler(t, none, httpx.RequireRole("admin")), token)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching role proceeds", func(t *testing.T) {
		token := issueToken(t, "admin", time.Hour)
		rec := doRequest(protectedHandler(t, none, httpx.RequireRole("admin")), token)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
