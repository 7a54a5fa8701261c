package repository

import (
	"cmp"

	"github.com/sakif/blogstack/internal/model"
)

// ComparePosts orders posts newest first, for use with slices.SortFunc.
// Undated posts sort after every dated one; equal timestamps fall back to
// the higher ID first. sqlstore expresses the same rule in ORDER BY.
func ComparePosts(a, b model.Post) int {
	switch {
	case a.PublishedAt == nil && b.PublishedAt == nil:
		// fall through to the ID tie-break
	case a.PublishedAt == nil:
		return 1
	case b.PublishedAt == nil:
		return -1
	default:
		if c := b.PublishedAt.Compare(*a.PublishedAt); c != 0 {
			return c
		}
	}
	return cmp.Compare(b.ID, a.ID)
}

// CompareComments orders comments newest first, ties by higher ID.
func CompareComments(a, b model.Comment) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// Page returns the window of items selected by opts. The result aliases the
// input slice.
func Page[T any](items []T, opts ListOptions) []T {
	opts = opts.Normalize()
	if opts.Offset >= len(items) {
		return items[:0]
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}
