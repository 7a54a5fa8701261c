package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
	"github.com/sakif/blogstack/internal/repository/memory"
)

// blogFixture is a memory store holding one author and one category, plus a
// BlogService over it.
type blogFixture struct {
	store    *memory.Store
	svc      *BlogService
	author   model.User
	category model.Category
}

func newBlogFixture(t *testing.T) *blogFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	author, err := store.CreateUser(ctx, model.NewUser{Username: "sarah", Password: "hash", Email: "sarah@example.com"})
	require.NoError(t, err)

	svc := NewBlogService(store, quietLogger())
	category, err := svc.CreateCategory(ctx, model.NewCategory{Name: "Technology", Slug: "technology"})
	require.NoError(t, err)

	return &blogFixture{store: store, svc: svc, author: author, category: category}
}

func (f *blogFixture) draft(slug string, published time.Time) model.NewPost {
	return model.NewPost{
		Title:       "Post " + slug,
		Slug:        slug,
		Excerpt:     "An excerpt",
		Content:     "# Hello\n\nBody text.",
		AuthorID:    f.author.ID,
		CategoryID:  f.category.ID,
		PublishedAt: &published,
	}
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 12, 0, 0, 0, time.UTC)
}

// =========================================================================
// TAXONOMY
// =========================================================================

func TestCategories(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateCategory(ctx, model.NewCategory{Name: " Design ", Slug: "design", Description: ptr("  ")})
	require.NoError(t, err)

	got, err := f.svc.GetCategory(ctx, "design")
	require.NoError(t, err)
	assert.Equal(t, "Design", got.Name)
	assert.Nil(t, got.Description)

	all, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "technology", all[0].Slug)

	_, err = f.svc.GetCategory(ctx, "missing")
	requireKind(t, err, apperror.ErrNotFound, "")

	_, err = f.svc.CreateCategory(ctx, model.NewCategory{Name: "Tech again", Slug: "technology"})
	requireKind(t, err, apperror.ErrDuplicateSlug, "")
}

func TestCreateCategory_RejectsBadSlugs(t *testing.T) {
	f := newBlogFixture(t)

	for _, slug := range []string{"", "Upper", "two  spaces", "trailing-", "-leading", "double--hyphen", "ünïcode", "2024", "1-2-3"} {
		t.Run(slug, func(t *testing.T) {
			_, err := f.svc.CreateCategory(context.Background(), model.NewCategory{Name: "X", Slug: slug})
			requireKind(t, err, apperror.ErrValidation, "slug")
		})
	}
}

func TestTags(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	empty, err := f.svc.ListTags(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	tag, err := f.svc.CreateTag(ctx, model.NewTag{Name: "JavaScript", Slug: "javascript"})
	require.NoError(t, err)

	got, err := f.svc.GetTag(ctx, "javascript")
	require.NoError(t, err)
	assert.Equal(t, tag, got)

	_, err = f.svc.GetTag(ctx, "go")
	requireKind(t, err, apperror.ErrNotFound, "")

	_, err = f.svc.CreateTag(ctx, model.NewTag{Name: "", Slug: "empty"})
	requireKind(t, err, apperror.ErrValidation, "name")
}

// =========================================================================
// POSTS
// =========================================================================

func TestCreatePost(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	draft := f.draft("hello-world", day(1))
	draft.Title = "  Hello World  "
	draft.MetaTags = map[string]string{"og:type": "article"}

	post, err := f.svc.CreatePost(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", post.Title)
	assert.Equal(t, int64(0), post.Views)
	assert.Equal(t, map[string]string{"og:type": "article"}, post.MetaTags)

	got, err := f.svc.GetPost(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, post, got)
}

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.NewPost)
		field  string
	}{
		{"blank title", func(p *model.NewPost) { p.Title = "   " }, "title"},
		{"bad slug", func(p *model.NewPost) { p.Slug = "Hello World" }, "slug"},
		{"blank excerpt", func(p *model.NewPost) { p.Excerpt = "" }, "excerpt"},
		{"whitespace content", func(p *model.NewPost) { p.Content = " \n\t " }, "content"},
		{"bad cover image", func(p *model.NewPost) { p.CoverImage = ptr("cover.png") }, "coverImage"},
		{"missing category", func(p *model.NewPost) { p.CategoryID = 0 }, "categoryId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBlogFixture(t)
			draft := f.draft("post", day(1))
			tt.mutate(&draft)

			_, err := f.svc.CreatePost(context.Background(), draft)
			requireKind(t, err, apperror.ErrValidation, tt.field)
		})
	}
}

func TestCreatePost_References(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	noAuthor := f.draft("a", day(1))
	noAuthor.AuthorID = 42
	_, err := f.svc.CreatePost(ctx, noAuthor)
	requireKind(t, err, apperror.ErrReference, "author")

	noCategory := f.draft("b", day(1))
	noCategory.CategoryID = 42
	_, err = f.svc.CreatePost(ctx, noCategory)
	requireKind(t, err, apperror.ErrReference, "category")

	_, err = f.svc.CreatePost(ctx, f.draft("c", day(1)))
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, f.draft("c", day(2)))
	requireKind(t, err, apperror.ErrDuplicateSlug, "")
}

func TestListPosts(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	for i, slug := range []string{"first", "second", "third"} {
		_, err := f.svc.CreatePost(ctx, f.draft(slug, day(i+1)))
		require.NoError(t, err)
	}

	all, err := f.svc.ListPosts(ctx, repository.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, slugs(all))

	page, err := f.svc.ListPosts(ctx, repository.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, slugs(page))

	byCategory, err := f.svc.ListPostsByCategory(ctx, f.category.ID, repository.ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second"}, slugs(byCategory))

	unknown, err := f.svc.ListPostsByCategory(ctx, 999, repository.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, unknown)

	_, err = f.svc.ListPosts(ctx, repository.ListOptions{Limit: -1})
	requireKind(t, err, apperror.ErrValidation, "limit")
	_, err = f.svc.ListPostsByTag(ctx, 1, repository.ListOptions{Offset: -1})
	requireKind(t, err, apperror.ErrValidation, "offset")
}

func TestListPosts_StorageUnavailable(t *testing.T) {
	svc := NewBlogService(newBrokenStorage(), quietLogger())

	_, err := svc.ListPosts(context.Background(), repository.ListOptions{})
	requireKind(t, err, apperror.ErrStorageUnavailable, "")
}

func TestListFeatured(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	for i, slug := range []string{"a", "b", "c"} {
		draft := f.draft(slug, day(i+1))
		draft.IsFeatured = slug != "b"
		_, err := f.svc.CreatePost(ctx, draft)
		require.NoError(t, err)
	}

	all, err := f.svc.ListFeatured(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, slugs(all))

	one, err := f.svc.ListFeatured(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, slugs(one))

	_, err = f.svc.ListFeatured(ctx, -3)
	requireKind(t, err, apperror.ErrValidation, "limit")
}

func TestRecordView(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.draft("viewed", day(1)))
	require.NoError(t, err)

	for want := int64(1); want <= 3; want++ {
		updated, err := f.svc.RecordView(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, want, updated.Views)
	}

	_, err = f.svc.RecordView(ctx, 999)
	requireKind(t, err, apperror.ErrNotFound, "")
}

// =========================================================================
// POST TAGS AND COMMENTS
// =========================================================================

func TestTagPost(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.draft("tagged", day(1)))
	require.NoError(t, err)
	tag, err := f.svc.CreateTag(ctx, model.NewTag{Name: "React", Slug: "react"})
	require.NoError(t, err)

	pt, err := f.svc.TagPost(ctx, post.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PostTag{ID: pt.ID, PostID: post.ID, TagID: tag.ID}, pt)

	_, err = f.svc.TagPost(ctx, post.ID, tag.ID)
	requireKind(t, err, apperror.ErrDuplicatePostTag, "")

	_, err = f.svc.TagPost(ctx, 999, tag.ID)
	requireKind(t, err, apperror.ErrReference, "post")

	_, err = f.svc.TagPost(ctx, post.ID, 999)
	requireKind(t, err, apperror.ErrReference, "tag")

	tags, err := f.svc.ListPostTags(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.PostTag{pt}, tags)

	byTag, err := f.svc.ListPostsByTag(ctx, tag.ID, repository.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tagged"}, slugs(byTag))
}

func TestComments(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.draft("discussed", day(1)))
	require.NoError(t, err)

	first, err := f.svc.CreateComment(ctx, model.NewComment{Content: " Great post! ", AuthorID: f.author.ID, PostID: post.ID})
	require.NoError(t, err)
	assert.Equal(t, "Great post!", first.Content)
	second, err := f.svc.CreateComment(ctx, model.NewComment{Content: "Agreed", AuthorID: f.author.ID, PostID: post.ID})
	require.NoError(t, err)

	comments, err := f.svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID, "newest first")

	_, err = f.svc.CreateComment(ctx, model.NewComment{Content: "   ", AuthorID: f.author.ID, PostID: post.ID})
	requireKind(t, err, apperror.ErrValidation, "content")

	_, err = f.svc.CreateComment(ctx, model.NewComment{Content: "hi", AuthorID: f.author.ID, PostID: 999})
	requireKind(t, err, apperror.ErrReference, "post")

	_, err = f.svc.CreateComment(ctx, model.NewComment{Content: "hi", AuthorID: 999, PostID: post.ID})
	requireKind(t, err, apperror.ErrReference, "author")
}

func slugs(posts []model.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}
