package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/veligame/adminpanel/pkg/httpx"
	"github.com/veligame/adminpanel/pkg/jwtx"
)

var guardSecret = []byte("test-secret-test-secret-test-sec")

func guardedEcho(t *testing.T, v jwtx.Verifier) http.Handler {
	t.Helper()
	return httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(httpx.SubjectFromContext(r.Context())))
		}),
		httpx.AuthnMiddleware(v),
	)
}

func TestAuthnMiddleware(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(guardSecret)
	require.NoError(t, err)

	now := time.Now().UTC()
	token, err := signer.Sign(jwtx.NewAccessClaims(
		"alice", 2*time.Minute, "panel-api", []string{"panel"}, now,
	))
	require.NoError(t, err)

	verifier := jwtx.NewVerifierHS256(guardSecret, "panel-api", []string{"panel"})
	handler := guardedEcho(t, verifier)

	t.Run("no authorization header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Basic abc123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer nonsense")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token admits and exposes subject", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice", rec.Body.String())
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expiredVerifier := jwtx.NewVerifierHS256(guardSecret, "panel-api", []string{"panel"})
		expiredVerifier.Now = func() time.Time { return now.Add(3 * time.Minute) }

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		guardedEcho(t, expiredVerifier).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
