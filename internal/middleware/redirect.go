package middleware

import (
	"net/http"
	"strings"
)

// RedirectWWW sends requests for www.example.com to example.com with a 301,
// keeping the path and query string.
func RedirectWWW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, ok := strings.CutPrefix(strings.ToLower(r.Host), "www.")
		if !ok || host == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme := "http"
		if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
			scheme = "https"
		}
		http.Redirect(w, r, scheme+"://"+host+r.URL.RequestURI(), http.StatusMovedPermanently)
	})
}
