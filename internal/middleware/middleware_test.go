package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teapot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("short and stout"))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(Logger(logger))
	r.Get("/api/posts/{post}", teapot)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/hello-world", nil))

	line := buf.String()
	assert.Contains(t, line, `msg="request completed"`)
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "route=/api/posts/{post}")
	assert.Contains(t, line, "path=/api/posts/hello-world")
	assert.Contains(t, line, "status=418")
	assert.Contains(t, line, "bytes=15")
}

func TestLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "route=unmatched")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/api/posts/{post}", teapot)

	for _, slug := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts/"+slug, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	histograms := 0
	for _, mf := range families {
		switch mf.GetName() {
		case "blogstack_http_requests_total":
			for _, metric := range mf.GetMetric() {
				labels := map[string]string{}
				for _, lp := range metric.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				counts[labels["route"]+" "+labels["status"]] = metric.GetCounter().GetValue()
			}
		case "blogstack_http_request_duration_seconds":
			histograms = len(mf.GetMetric())
		}
	}

	assert.Equal(t, map[string]float64{
		"/api/posts/{post} 418": 3,
		"unmatched 404":         1,
	}, counts)
	assert.Equal(t, 2, histograms, "one histogram series per route")
}

func TestRedirectWWW(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name     string
		host     string
		target   string
		proto    string
		wantCode int
		wantLoc  string
	}{
		{"bare host passes through", "blog.example.com", "/api/posts", "", http.StatusOK, ""},
		{"www redirects", "www.example.com", "/api/posts?limit=5", "", http.StatusMovedPermanently, "http://example.com/api/posts?limit=5"},
		{"keeps https behind a proxy", "WWW.example.com:8443", "/", "https", http.StatusMovedPermanently, "https://example.com:8443/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Host = tt.host
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rec := httptest.NewRecorder()

			RedirectWWW(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }))
	hit := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/waitlist", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:2222").Code, "port does not matter")

	limited := hit("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.True(t, strings.Contains(limited.Body.String(), `"rate_limited"`))

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1111").Code, "other clients have their own bucket")

	now = now.Add(30 * time.Second)
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1111").Code, "one token refills every 30s")
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	require.Len(t, rl.visitors, 2)

	now = now.Add(10 * time.Minute)
	rl.Allow("c")
	assert.Len(t, rl.visitors, 1)
}
