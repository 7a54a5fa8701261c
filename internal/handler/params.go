package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/repository"
)

// urlParam returns a trimmed path parameter.
func urlParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// parseID reads a positive integer path parameter.
func parseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed(name, name+" must be a positive integer, got "+strconv.Quote(raw))
	}
	return id, nil
}

// numericParam reports whether the path parameter is an integer id rather
// than a slug. Routes like /categories/{category}/posts accept both.
func numericParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// queryInt reads an optional integer query parameter. Absent means 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ValidationFailed(name, name+" must be an integer, got "+strconv.Quote(raw))
	}
	return n, nil
}

// listOptions reads ?limit=&offset=. Range checks happen in the service.
func listOptions(r *http.Request) (repository.ListOptions, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return repository.ListOptions{}, err
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		return repository.ListOptions{}, err
	}
	return repository.ListOptions{Limit: limit, Offset: offset}, nil
}
