package httpx

import (
	"net/http"
	"net/url"
	"strings"
)

// CORSConfig is a fixed allow-list cross-origin policy: credentials are
// allowed, any header and method are allowed, and subdomains of the
// allow-listed hosts are accepted.
type CORSConfig struct {
	// AllowedOrigins is a list of origins like "https://panel.example.com".
	AllowedOrigins []string
}

// CORSMiddleware applies the allow-list policy. Because credentials are
// allowed, the matched origin is echoed back rather than "*".
func CORSMiddleware(cfg CORSConfig) Middleware {
	allowed := make([]*url.URL, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		u, err := url.Parse(strings.TrimSuffix(strings.TrimSpace(o), "/"))
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		allowed = append(allowed, u)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The response differs by origin even when the origin is
			// rejected, so caches must always key on it.
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if originAllowed(allowed, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")

				if r.Method == http.MethodOptions {
					if reqMethod := r.Header.Get("Access-Control-Request-Method"); reqMethod != "" {
						h.Set("Access-Control-Allow-Methods", reqMethod)
					}
					if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
						h.Set("Access-Control-Allow-Headers", reqHeaders)
					}
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed reports whether origin matches the allow-list exactly or is
// a subdomain of an allow-listed host with the same scheme.
func originAllowed(allowed []*url.URL, origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	for _, a := range allowed {
		if a.Scheme != u.Scheme {
			continue
		}
		if strings.EqualFold(a.Host, u.Host) {
			return true
		}
		if strings.HasSuffix(strings.ToLower(u.Host), "."+strings.ToLower(a.Host)) {
			return true
		}
	}
	return false
}
