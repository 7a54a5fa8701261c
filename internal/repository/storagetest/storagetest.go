// Package storagetest holds the behavioural suite every repository.Storage
// implementation must pass. Backends call Run from their own tests with a
// factory that hands out a fresh, empty store per subtest.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
)

// Factory returns an empty store. It should register its own cleanup.
type Factory func(t *testing.T) repository.Storage

// Run executes the whole suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("CategoriesAndTags", func(t *testing.T) { testTaxonomy(t, newStore) })
	t.Run("Posts", func(t *testing.T) { testPosts(t, newStore) })
	t.Run("Pagination", func(t *testing.T) { testPagination(t, newStore) })
	t.Run("Views", func(t *testing.T) { testViews(t, newStore) })
	t.Run("PostTags", func(t *testing.T) { testPostTags(t, newStore) })
	t.Run("Comments", func(t *testing.T) { testComments(t, newStore) })
	t.Run("Waitlist", func(t *testing.T) { testWaitlist(t, newStore) })
}

// Fixture is the minimum world a post needs: one author and one category.
type Fixture struct {
	Author   model.User
	Category model.Category
}

// NewFixture creates an author and a category in s.
func NewFixture(t *testing.T, s repository.Storage) Fixture {
	t.Helper()
	ctx := context.Background()

	author, err := s.CreateUser(ctx, model.NewUser{
		Username: "sarahjohnson",
		Password: "hashed-password",
		Email:    "sarah@example.com",
		FullName: ptr("Sarah Johnson"),
	})
	require.NoError(t, err)

	category, err := s.CreateCategory(ctx, model.NewCategory{
		Name:        "Technology",
		Slug:        "technology",
		Description: ptr("Latest tech news and reviews"),
	})
	require.NoError(t, err)

	return Fixture{Author: author, Category: category}
}

// Post builds a draft for the fixture's author and category.
func (f Fixture) Post(slug string, published time.Time) model.NewPost {
	return model.NewPost{
		Title:       "Post " + slug,
		Slug:        slug,
		Excerpt:     "Excerpt for " + slug,
		Content:     "# " + slug,
		AuthorID:    f.Author.ID,
		CategoryID:  f.Category.ID,
		PublishedAt: &published,
	}
}

// Day returns midnight UTC on the given day of January 2024.
func Day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

// =========================================================================
// USERS
// =========================================================================

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create assigns id and defaults", func(t *testing.T) {
		s := newStore(t)

		u, err := s.CreateUser(ctx, model.NewUser{
			Username: "davidchen",
			Password: "opaque",
			Email:    "david@example.com",
			Bio:      ptr("Full-stack developer"),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), u.ID)
		assert.False(t, u.IsAdmin)
		assert.Equal(t, "opaque", u.Password, "password is stored as provided")
		assert.Nil(t, u.FullName)
		require.NotNil(t, u.Bio)
		assert.Equal(t, "Full-stack developer", *u.Bio)

		second, err := s.CreateUser(ctx, model.NewUser{Username: "other", Password: "x", Email: "other@example.com"})
		require.NoError(t, err)
		assert.Greater(t, second.ID, u.ID)
	})

	t.Run("lookups", func(t *testing.T) {
		s := newStore(t)
		created, err := s.CreateUser(ctx, model.NewUser{Username: "michelle", Password: "p", Email: "m@example.com"})
		require.NoError(t, err)

		byID, found, err := s.GetUser(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created, byID)

		byName, found, err := s.GetUserByUsername(ctx, "michelle")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created, byName)

		byEmail, found, err := s.GetUserByEmail(ctx, "m@example.com")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created, byEmail)
	})

	t.Run("absent lookups are not errors", func(t *testing.T) {
		s := newStore(t)

		_, found, err := s.GetUser(ctx, 42)
		assert.NoError(t, err)
		assert.False(t, found)

		_, found, err = s.GetUserByUsername(ctx, "ghost")
		assert.NoError(t, err)
		assert.False(t, found)

		_, found, err = s.GetUserByEmail(ctx, "ghost@example.com")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("duplicate username", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateUser(ctx, model.NewUser{Username: "sarah", Password: "p", Email: "a@example.com"})
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, model.NewUser{Username: "sarah", Password: "p", Email: "b@example.com"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrDuplicateUsername), "got %v", err)
		assert.True(t, errors.Is(err, apperror.ErrConflict))

		_, found, err := s.GetUserByEmail(ctx, "b@example.com")
		require.NoError(t, err)
		assert.False(t, found, "rejected user must not be persisted")
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateUser(ctx, model.NewUser{Username: "first", Password: "p", Email: "same@example.com"})
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, model.NewUser{Username: "second", Password: "p", Email: "same@example.com"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrDuplicateEmail), "got %v", err)
		assert.False(t, errors.Is(err, apperror.ErrDuplicateUsername))

		_, found, err := s.GetUserByUsername(ctx, "second")
		require.NoError(t, err)
		assert.False(t, found, "rejected user must not be persisted")
	})
}

// =========================================================================
// CATEGORIES AND TAGS
// =========================================================================

func testTaxonomy(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("categories keep insertion order", func(t *testing.T) {
		s := newStore(t)
		for _, slug := range []string{"travel", "design", "business"} {
			_, err := s.CreateCategory(ctx, model.NewCategory{Name: slug, Slug: slug})
			require.NoError(t, err)
		}

		got, err := s.GetCategories(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"travel", "design", "business"}, []string{got[0].Slug, got[1].Slug, got[2].Slug})

		again, err := s.GetCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, got, again, "listing is restartable")
	})

	t.Run("empty lists are empty, not nil", func(t *testing.T) {
		s := newStore(t)

		cats, err := s.GetCategories(ctx)
		require.NoError(t, err)
		assert.NotNil(t, cats)
		assert.Empty(t, cats)

		tags, err := s.GetTags(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
	})

	t.Run("category by slug", func(t *testing.T) {
		s := newStore(t)
		created, err := s.CreateCategory(ctx, model.NewCategory{Name: "Design", Slug: "design", Description: ptr("UI/UX")})
		require.NoError(t, err)

		got, found, err := s.GetCategoryBySlug(ctx, "design")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created, got)

		_, found, err = s.GetCategoryBySlug(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("category slug is unique", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateCategory(ctx, model.NewCategory{Name: "A", Slug: "dup"})
		require.NoError(t, err)

		_, err = s.CreateCategory(ctx, model.NewCategory{Name: "B", Slug: "dup"})
		assert.True(t, errors.Is(err, apperror.ErrDuplicateSlug), "got %v", err)

		all, err := s.GetCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("tags", func(t *testing.T) {
		s := newStore(t)
		js, err := s.CreateTag(ctx, model.NewTag{Name: "JavaScript", Slug: "javascript"})
		require.NoError(t, err)
		_, err = s.CreateTag(ctx, model.NewTag{Name: "React", Slug: "react"})
		require.NoError(t, err)

		all, err := s.GetTags(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "javascript", all[0].Slug)
		assert.Equal(t, "react", all[1].Slug)

		got, found, err := s.GetTagBySlug(ctx, "javascript")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, js, got)

		_, found, err = s.GetTagBySlug(ctx, "go")
		require.NoError(t, err)
		assert.False(t, found)

		_, err = s.CreateTag(ctx, model.NewTag{Name: "JS", Slug: "javascript"})
		assert.True(t, errors.Is(err, apperror.ErrDuplicateSlug), "got %v", err)
	})
}

// =========================================================================
// POSTS
// =========================================================================

func testPosts(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create applies defaults", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)

		before := time.Now().Add(-time.Second)
		draft := f.Post("hello", time.Time{})
		draft.PublishedAt = nil
		post, err := s.CreatePost(ctx, draft)
		require.NoError(t, err)

		assert.Positive(t, post.ID)
		assert.Zero(t, post.Views)
		assert.False(t, post.IsFeatured)
		require.NotNil(t, post.PublishedAt, "publishedAt defaults to now")
		assert.True(t, post.PublishedAt.After(before), "publishedAt = %v", post.PublishedAt)
		assert.Equal(t, time.UTC, post.PublishedAt.Location())
	})

	t.Run("create keeps every field", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)

		draft := f.Post("full", Day(5))
		draft.CoverImage = ptr("https://images.example.com/cover.jpg")
		draft.IsFeatured = true
		draft.SEOTitle = ptr("Full post")
		draft.SEODescription = ptr("Everything set")
		draft.MetaTags = map[string]string{"og:type": "article", "twitter:card": "summary"}

		post, err := s.CreatePost(ctx, draft)
		require.NoError(t, err)

		got, found, err := s.GetPostBySlug(ctx, "full")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, post, got)
		assert.Equal(t, draft.MetaTags, got.MetaTags)
		assert.True(t, got.PublishedAt.Equal(Day(5)))
		assert.True(t, got.IsFeatured)
	})

	t.Run("returned values are snapshots", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)

		draft := f.Post("snap", Day(1))
		draft.MetaTags = map[string]string{"k": "v"}
		post, err := s.CreatePost(ctx, draft)
		require.NoError(t, err)

		draft.MetaTags["k"] = "mutated via draft"
		post.MetaTags["k"] = "mutated via result"
		post.Views = 99

		got, _, err := s.GetPostBySlug(ctx, "snap")
		require.NoError(t, err)
		assert.Equal(t, "v", got.MetaTags["k"])
		assert.Zero(t, got.Views)
	})

	t.Run("missing author or category", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)

		draft := f.Post("orphan", Day(1))
		draft.AuthorID = 999
		_, err := s.CreatePost(ctx, draft)
		assertReference(t, err, "author")

		draft = f.Post("orphan", Day(1))
		draft.CategoryID = 999
		_, err = s.CreatePost(ctx, draft)
		assertReference(t, err, "category")

		_, found, err := s.GetPostBySlug(ctx, "orphan")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("slug is unique", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)

		_, err := s.CreatePost(ctx, f.Post("same", Day(1)))
		require.NoError(t, err)
		_, err = s.CreatePost(ctx, f.Post("same", Day(2)))
		assert.True(t, errors.Is(err, apperror.ErrDuplicateSlug), "got %v", err)

		all, err := s.GetPosts(ctx, repository.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("absent slug", func(t *testing.T) {
		s := newStore(t)

		_, found, err := s.GetPostBySlug(ctx, "nope")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("by category", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)
		design, err := s.CreateCategory(ctx, model.NewCategory{Name: "Design", Slug: "design"})
		require.NoError(t, err)

		a, err := s.CreatePost(ctx, f.Post("a", Day(1)))
		require.NoError(t, err)
		other := f.Post("b", Day(2))
		other.CategoryID = design.ID
		_, err = s.CreatePost(ctx, other)
		require.NoError(t, err)
		c, err := s.CreatePost(ctx, f.Post("c", Day(3)))
		require.NoError(t, err)

		got, err := s.GetPostsByCategory(ctx, f.Category.ID, repository.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []int64{c.ID, a.ID}, ids(got))

		got, err = s.GetPostsByCategory(ctx, f.Category.ID, repository.ListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{a.ID}, ids(got))

		got, err = s.GetPostsByCategory(ctx, 12345, repository.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("by tag", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)
		react, err := s.CreateTag(ctx, model.NewTag{Name: "React", Slug: "react"})
		require.NoError(t, err)
		seo, err := s.CreateTag(ctx, model.NewTag{Name: "SEO", Slug: "seo"})
		require.NoError(t, err)

		a, err := s.CreatePost(ctx, f.Post("a", Day(1)))
		require.NoError(t, err)
		b, err := s.CreatePost(ctx, f.Post("b", Day(2)))
		require.NoError(t, err)
		c, err := s.CreatePost(ctx, f.Post("c", Day(3)))
		require.NoError(t, err)

		for _, link := range [][2]int64{{a.ID, react.ID}, {c.ID, react.ID}, {b.ID, seo.ID}, {c.ID, seo.ID}} {
			_, err := s.AddTagToPost(ctx, link[0], link[1])
			require.NoError(t, err)
		}

		got, err := s.GetPostsByTag(ctx, react.ID, repository.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []int64{c.ID, a.ID}, ids(got))

		got, err = s.GetPostsByTag(ctx, seo.ID, repository.ListOptions{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{c.ID}, ids(got))

		got, err = s.GetPostsByTag(ctx, 777, repository.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("featured filter", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)

		var want []int64
		for i := 1; i <= 6; i++ {
			draft := f.Post(fmt.Sprintf("p%d", i), Day(i))
			draft.IsFeatured = i%2 == 0
			p, err := s.CreatePost(ctx, draft)
			require.NoError(t, err)
			if p.IsFeatured {
				want = append(want, p.ID)
			}
		}
		slices.Reverse(want)

		got, err := s.GetFeaturedPosts(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, want, ids(got))
		for _, p := range got {
			assert.True(t, p.IsFeatured)
		}

		got, err = s.GetFeaturedPosts(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, want[:2], ids(got))
	})
}

// =========================================================================
// PAGINATION
// =========================================================================

func testPagination(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)
	f := NewFixture(t, s)

	// Inserted out of date order so the result depends on sorting, not on
	// insertion. Days 4 appears twice to exercise the ID tie-break.
	days := []int{3, 1, 4, 5, 4, 2}
	var created []model.Post
	for i, d := range days {
		p, err := s.CreatePost(ctx, f.Post(fmt.Sprintf("post-%d", i), Day(d)))
		require.NoError(t, err)
		created = append(created, p)
	}
	sorted := slices.Clone(created)
	slices.SortFunc(sorted, repository.ComparePosts)

	all, err := s.GetPosts(ctx, repository.ListOptions{Limit: len(created)})
	require.NoError(t, err)
	assert.Equal(t, sorted, all, "offset=0, limit=total returns every post once, newest first")
	assert.Equal(t, []string{"post-3", "post-4", "post-2", "post-0", "post-5", "post-1"}, slugs(all))

	for limit := 0; limit <= len(created)+1; limit++ {
		for offset := 0; offset <= len(created)+1; offset++ {
			opts := repository.ListOptions{Limit: limit, Offset: offset}
			got, err := s.GetPosts(ctx, opts)
			require.NoError(t, err)

			want := repository.Page(sorted, opts)
			assert.Equal(t, ids(want), ids(got), "limit=%d offset=%d", limit, offset)
		}
	}
}

// =========================================================================
// VIEWS
// =========================================================================

func testViews(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("increment by one", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)
		post, err := s.CreatePost(ctx, f.Post("viewed", Day(1)))
		require.NoError(t, err)

		updated, err := s.UpdatePostViews(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.Views)
		assert.Equal(t, post.Slug, updated.Slug)

		updated, err = s.UpdatePostViews(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Views)
	})

	t.Run("unknown post", func(t *testing.T) {
		s := newStore(t)

		_, err := s.UpdatePostViews(ctx, 404)
		assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)
	})

	t.Run("concurrent increments are never lost", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)
		post, err := s.CreatePost(ctx, f.Post("hot", Day(1)))
		require.NoError(t, err)

		const n = 50
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.UpdatePostViews(ctx, post.ID); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("UpdatePostViews() error = %v", err)
		}

		got, found, err := s.GetPostBySlug(ctx, "hot")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(n), got.Views)
	})

	t.Run("concurrent increments on a featured post", func(t *testing.T) {
		s := newStore(t)
		f := NewFixture(t, s)
		draft := f.Post("a", Day(1))
		draft.IsFeatured = true
		post, err := s.CreatePost(ctx, draft)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 3 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.UpdatePostViews(ctx, post.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		featured, err := s.GetFeaturedPosts(ctx, 0)
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, post.ID, featured[0].ID)
		assert.Equal(t, int64(3), featured[0].Views)
	})
}

// =========================================================================
// POST TAGS
// =========================================================================

func testPostTags(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)
	f := NewFixture(t, s)

	post, err := s.CreatePost(ctx, f.Post("tagged", Day(1)))
	require.NoError(t, err)
	js, err := s.CreateTag(ctx, model.NewTag{Name: "JavaScript", Slug: "javascript"})
	require.NoError(t, err)
	react, err := s.CreateTag(ctx, model.NewTag{Name: "React", Slug: "react"})
	require.NoError(t, err)

	first, err := s.AddTagToPost(ctx, post.ID, react.ID)
	require.NoError(t, err)
	second, err := s.AddTagToPost(ctx, post.ID, js.ID)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	got, err := s.GetPostTags(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.PostTag{first, second}, got)

	_, err = s.AddTagToPost(ctx, post.ID, react.ID)
	assert.True(t, errors.Is(err, apperror.ErrDuplicatePostTag), "got %v", err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	_, err = s.AddTagToPost(ctx, 999, react.ID)
	assertReference(t, err, "post")

	_, err = s.AddTagToPost(ctx, post.ID, 999)
	assertReference(t, err, "tag")

	got, err = s.GetPostTags(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2, "rejected links must not be persisted")

	none, err := s.GetPostTags(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

// =========================================================================
// COMMENTS
// =========================================================================

func testComments(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)
	f := NewFixture(t, s)

	post, err := s.CreatePost(ctx, f.Post("discussed", Day(1)))
	require.NoError(t, err)
	other, err := s.CreatePost(ctx, f.Post("quiet", Day(2)))
	require.NoError(t, err)

	var created []model.Comment
	for i := 1; i <= 3; i++ {
		c, err := s.CreateComment(ctx, model.NewComment{
			Content:  fmt.Sprintf("comment %d", i),
			AuthorID: f.Author.ID,
			PostID:   post.ID,
		})
		require.NoError(t, err)
		assert.False(t, c.CreatedAt.IsZero())
		created = append(created, c)
		// Distinct timestamps even on coarse clocks.
		time.Sleep(2 * time.Millisecond)
	}

	got, err := s.GetCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Comment{created[2], created[1], created[0]}, got)

	none, err := s.GetCommentsByPost(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = s.CreateComment(ctx, model.NewComment{Content: "x", AuthorID: 999, PostID: post.ID})
	assertReference(t, err, "author")

	_, err = s.CreateComment(ctx, model.NewComment{Content: "x", AuthorID: f.Author.ID, PostID: 999})
	assertReference(t, err, "post")
}

// =========================================================================
// WAITLIST
// =========================================================================

func testWaitlist(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	entry, err := s.AddToWaitlist(ctx, model.NewWaitlistEntry{
		FullName: "Ada Lovelace",
		Email:    "a@x.com",
		BlogType: ptr("tech"),
	})
	require.NoError(t, err)
	assert.Positive(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	require.NotNil(t, entry.BlogType)
	assert.Equal(t, "tech", *entry.BlogType)

	_, err = s.AddToWaitlist(ctx, model.NewWaitlistEntry{FullName: "Someone Else", Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrDuplicateWaitlistEmail), "got %v", err)
	assert.False(t, errors.Is(err, apperror.ErrDuplicateEmail))

	// A user account with the same email is unrelated to the waitlist.
	_, err = s.CreateUser(ctx, model.NewUser{Username: "ada", Password: "p", Email: "a@x.com"})
	assert.NoError(t, err)

	next, err := s.AddToWaitlist(ctx, model.NewWaitlistEntry{FullName: "B", Email: "b@x.com"})
	require.NoError(t, err)
	assert.Greater(t, next.ID, entry.ID)
}

func assertReference(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrReference), "got %v", err)

	var appErr *apperror.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, field, appErr.Field)
	}
}

func ids(posts []model.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func slugs(posts []model.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
