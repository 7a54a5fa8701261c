package model

import (
	"testing"
	"time"
)

func TestPostClone(t *testing.T) {
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cover := "https://example.com/cover.png"
	original := Post{
		ID:          1,
		Title:       "Hello",
		CoverImage:  &cover,
		PublishedAt: &published,
		MetaTags:    map[string]string{"og:type": "article"},
	}

	clone := original.Clone()

	// Mutating the clone must not leak back into the original.
	*clone.CoverImage = "changed"
	*clone.PublishedAt = published.Add(time.Hour)
	clone.MetaTags["og:type"] = "website"

	if *original.CoverImage != cover {
		t.Errorf("original CoverImage = %q, want %q", *original.CoverImage, cover)
	}
	if !original.PublishedAt.Equal(published) {
		t.Errorf("original PublishedAt = %v, want %v", original.PublishedAt, published)
	}
	if original.MetaTags["og:type"] != "article" {
		t.Errorf("original MetaTags[og:type] = %q, want %q", original.MetaTags["og:type"], "article")
	}
}

func TestPostClone_NilFields(t *testing.T) {
	clone := Post{ID: 2}.Clone()

	if clone.CoverImage != nil || clone.PublishedAt != nil || clone.MetaTags != nil {
		t.Errorf("Clone() of nil fields = %+v, want nil fields", clone)
	}
}
