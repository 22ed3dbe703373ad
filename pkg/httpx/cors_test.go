package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veligame/adminpanel/pkg/httpx"
)

func corsHandler() http.Handler {
	cfg := httpx.CORSConfig{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"https://veligamedemo.netlify.app",
		},
	}
	return httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		httpx.CORSMiddleware(cfg),
	)
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("no origin header passes through untouched", func(t *testing.T) {
		rec := httptest.NewRecorder()
		corsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/configurations", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("allow-listed origin echoed with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/configurations", nil)
		req.Header.Set("Origin", "http://localhost:3000")

		rec := httptest.NewRecorder()
		corsHandler().ServeHTTP(rec, req)

		require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("wildcard subdomain of allow-listed host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/configurations", nil)
		req.Header.Set("Origin", "https://deploy-preview-42.veligamedemo.netlify.app")

		rec := httptest.NewRecorder()
		corsHandler().ServeHTTP(rec, req)

		require.Equal(t,
			"https://deploy-preview-42.veligamedemo.netlify.app",
			rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("scheme must match for subdomain grants", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/configurations", nil)
		req.Header.Set("Origin", "http://evil.veligamedemo.netlify.app")

		rec := httptest.NewRecorder()
		corsHandler().ServeHTTP(rec, req)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/configurations", nil)
		req.Header.Set("Origin", "https://attacker.example.com")

		rec := httptest.NewRecorder()
		corsHandler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

		// Caches must key on Origin even for rejected origins, or a
		// shared cache can serve a decorated response cross-origin.
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("suffix trickery is not a subdomain", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/configurations", nil)
		req.Header.Set("Origin", "https://evilveligamedemo.netlify.app.attacker.com")

		rec := httptest.NewRecorder()
		corsHandler().ServeHTTP(rec, req)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answered with requested method and headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/configurations", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

		rec := httptest.NewRecorder()
		corsHandler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, http.MethodDelete, rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Authorization, Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	})
}
