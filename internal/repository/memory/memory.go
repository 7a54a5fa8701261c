// Package memory implements repository.Storage in process memory.
//
// Entities live in slices indexed by ID-1: IDs are assigned sequentially and
// nothing is ever deleted, so the slice position IS the primary key. Side
// maps index the unique columns (username, slugs, emails) the same way the
// persistent backend's unique indexes do.
//
// CONCURRENCY:
// A single sync.RWMutex guards everything. Reads share the lock; every write,
// including the view counter increment, takes it exclusively, so concurrent
// increments serialise and none is lost.
//
// Context arguments are accepted for interface compatibility only. Nothing
// here blocks on I/O, so there is nothing to cancel.
package memory

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
)

var _ repository.Storage = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	users      []model.User
	categories []model.Category
	tags       []model.Tag
	posts      []model.Post
	postTags   []model.PostTag
	comments   []model.Comment
	waitlist   []model.WaitlistEntry

	usernames      map[string]int64
	emails         map[string]int64
	categorySlugs  map[string]int64
	tagSlugs       map[string]int64
	postSlugs      map[string]int64
	postTagPairs   map[[2]int64]struct{}
	waitlistEmails map[string]struct{}
}

// New returns an empty store.
func New() *Store {
	return &Store{
		usernames:      make(map[string]int64),
		emails:         make(map[string]int64),
		categorySlugs:  make(map[string]int64),
		tagSlugs:       make(map[string]int64),
		postSlugs:      make(map[string]int64),
		postTagPairs:   make(map[[2]int64]struct{}),
		waitlistEmails: make(map[string]struct{}),
	}
}

// Close is a no-op; the store holds no external resources.
func (s *Store) Close() error {
	return nil
}

// =========================================================================
// USERS
// =========================================================================

func (s *Store) CreateUser(_ context.Context, draft model.NewUser) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[draft.Username]; taken {
		return model.User{}, apperror.DuplicateUsername(draft.Username)
	}
	if _, taken := s.emails[draft.Email]; taken {
		return model.User{}, apperror.DuplicateEmail(draft.Email)
	}

	user := model.User{
		ID:       int64(len(s.users) + 1),
		Username: draft.Username,
		Password: draft.Password,
		Email:    draft.Email,
		FullName: cloneString(draft.FullName),
		Avatar:   cloneString(draft.Avatar),
		Bio:      cloneString(draft.Bio),
		IsAdmin:  false,
	}
	s.users = append(s.users, user)
	s.usernames[user.Username] = user.ID
	s.emails[user.Email] = user.ID

	return cloneUser(user), nil
}

func (s *Store) GetUser(_ context.Context, id int64) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasUser(id) {
		return model.User{}, false, nil
	}
	return cloneUser(s.users[id-1]), true, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return model.User{}, false, nil
	}
	return cloneUser(s.users[id-1]), true, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return model.User{}, false, nil
	}
	return cloneUser(s.users[id-1]), true, nil
}

// =========================================================================
// CATEGORIES AND TAGS
// =========================================================================

func (s *Store) CreateCategory(_ context.Context, draft model.NewCategory) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.categorySlugs[draft.Slug]; taken {
		return model.Category{}, apperror.DuplicateSlug("category", draft.Slug)
	}

	category := model.Category{
		ID:          int64(len(s.categories) + 1),
		Name:        draft.Name,
		Slug:        draft.Slug,
		Description: cloneString(draft.Description),
	}
	s.categories = append(s.categories, category)
	s.categorySlugs[category.Slug] = category.ID

	return cloneCategory(category), nil
}

func (s *Store) GetCategories(_ context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, cloneCategory(c))
	}
	return out, nil
}

func (s *Store) GetCategoryBySlug(_ context.Context, slug string) (model.Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.categorySlugs[slug]
	if !ok {
		return model.Category{}, false, nil
	}
	return cloneCategory(s.categories[id-1]), true, nil
}

func (s *Store) CreateTag(_ context.Context, draft model.NewTag) (model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.tagSlugs[draft.Slug]; taken {
		return model.Tag{}, apperror.DuplicateSlug("tag", draft.Slug)
	}

	tag := model.Tag{
		ID:   int64(len(s.tags) + 1),
		Name: draft.Name,
		Slug: draft.Slug,
	}
	s.tags = append(s.tags, tag)
	s.tagSlugs[tag.Slug] = tag.ID

	return tag, nil
}

func (s *Store) GetTags(_ context.Context) ([]model.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]model.Tag, 0, len(s.tags)), s.tags...), nil
}

func (s *Store) GetTagBySlug(_ context.Context, slug string) (model.Tag, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tagSlugs[slug]
	if !ok {
		return model.Tag{}, false, nil
	}
	return s.tags[id-1], true, nil
}

// =========================================================================
// POSTS
// =========================================================================

func (s *Store) CreatePost(_ context.Context, draft model.NewPost) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasUser(draft.AuthorID) {
		return model.Post{}, apperror.Reference("author", draft.AuthorID)
	}
	if draft.CategoryID < 1 || draft.CategoryID > int64(len(s.categories)) {
		return model.Post{}, apperror.Reference("category", draft.CategoryID)
	}
	if _, taken := s.postSlugs[draft.Slug]; taken {
		return model.Post{}, apperror.DuplicateSlug("post", draft.Slug)
	}

	published := repository.Now()
	if draft.PublishedAt != nil {
		published = repository.Timestamp(*draft.PublishedAt)
	}

	post := model.Post{
		ID:             int64(len(s.posts) + 1),
		Title:          draft.Title,
		Slug:           draft.Slug,
		Excerpt:        draft.Excerpt,
		Content:        draft.Content,
		CoverImage:     draft.CoverImage,
		AuthorID:       draft.AuthorID,
		CategoryID:     draft.CategoryID,
		PublishedAt:    &published,
		IsFeatured:     draft.IsFeatured,
		Views:          0,
		SEOTitle:       draft.SEOTitle,
		SEODescription: draft.SEODescription,
		MetaTags:       draft.MetaTags,
	}
	// Clone detaches every pointer and map the draft owned.
	post = post.Clone()
	s.posts = append(s.posts, post)
	s.postSlugs[post.Slug] = post.ID

	return post.Clone(), nil
}

func (s *Store) GetPostBySlug(_ context.Context, slug string) (model.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.postSlugs[slug]
	if !ok {
		return model.Post{}, false, nil
	}
	return s.posts[id-1].Clone(), true, nil
}

func (s *Store) GetPosts(_ context.Context, opts repository.ListOptions) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selectPosts(opts, func(model.Post) bool { return true }), nil
}

func (s *Store) GetPostsByCategory(_ context.Context, categoryID int64, opts repository.ListOptions) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selectPosts(opts, func(p model.Post) bool { return p.CategoryID == categoryID }), nil
}

func (s *Store) GetPostsByTag(_ context.Context, tagID int64, opts repository.ListOptions) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tagged := make(map[int64]struct{})
	for _, pt := range s.postTags {
		if pt.TagID == tagID {
			tagged[pt.PostID] = struct{}{}
		}
	}
	return s.selectPosts(opts, func(p model.Post) bool {
		_, ok := tagged[p.ID]
		return ok
	}), nil
}

func (s *Store) GetFeaturedPosts(_ context.Context, limit int) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selectPosts(repository.ListOptions{Limit: limit}, func(p model.Post) bool { return p.IsFeatured }), nil
}

// UpdatePostViews increments under the write lock, which is what keeps
// concurrent increments from overwriting each other.
func (s *Store) UpdatePostViews(_ context.Context, id int64) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 1 || id > int64(len(s.posts)) {
		return model.Post{}, apperror.NotFound("post", strconv.FormatInt(id, 10))
	}
	s.posts[id-1].Views++
	return s.posts[id-1].Clone(), nil
}

// selectPosts filters, orders and paginates. Callers hold at least the
// read lock.
func (s *Store) selectPosts(opts repository.ListOptions, keep func(model.Post) bool) []model.Post {
	matched := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	slices.SortFunc(matched, repository.ComparePosts)

	page := repository.Page(matched, opts)
	out := make([]model.Post, len(page))
	for i, p := range page {
		out[i] = p.Clone()
	}
	return out
}

// =========================================================================
// POST TAGS
// =========================================================================

func (s *Store) GetPostTags(_ context.Context, postID int64) ([]model.PostTag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PostTag, 0)
	for _, pt := range s.postTags {
		if pt.PostID == postID {
			out = append(out, pt)
		}
	}
	return out, nil
}

func (s *Store) AddTagToPost(_ context.Context, postID, tagID int64) (model.PostTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if postID < 1 || postID > int64(len(s.posts)) {
		return model.PostTag{}, apperror.Reference("post", postID)
	}
	if tagID < 1 || tagID > int64(len(s.tags)) {
		return model.PostTag{}, apperror.Reference("tag", tagID)
	}
	pair := [2]int64{postID, tagID}
	if _, dup := s.postTagPairs[pair]; dup {
		return model.PostTag{}, apperror.DuplicatePostTag(postID, tagID)
	}

	pt := model.PostTag{
		ID:     int64(len(s.postTags) + 1),
		PostID: postID,
		TagID:  tagID,
	}
	s.postTags = append(s.postTags, pt)
	s.postTagPairs[pair] = struct{}{}

	return pt, nil
}

// =========================================================================
// COMMENTS AND WAITLIST
// =========================================================================

func (s *Store) GetCommentsByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, repository.CompareComments)
	return out, nil
}

func (s *Store) CreateComment(_ context.Context, draft model.NewComment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasUser(draft.AuthorID) {
		return model.Comment{}, apperror.Reference("author", draft.AuthorID)
	}
	if draft.PostID < 1 || draft.PostID > int64(len(s.posts)) {
		return model.Comment{}, apperror.Reference("post", draft.PostID)
	}

	comment := model.Comment{
		ID:        int64(len(s.comments) + 1),
		Content:   draft.Content,
		AuthorID:  draft.AuthorID,
		PostID:    draft.PostID,
		CreatedAt: repository.Now(),
	}
	s.comments = append(s.comments, comment)

	return comment, nil
}

func (s *Store) AddToWaitlist(_ context.Context, draft model.NewWaitlistEntry) (model.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.waitlistEmails[draft.Email]; taken {
		return model.WaitlistEntry{}, apperror.DuplicateWaitlistEmail(draft.Email)
	}

	entry := model.WaitlistEntry{
		ID:        int64(len(s.waitlist) + 1),
		FullName:  draft.FullName,
		Email:     draft.Email,
		BlogType:  cloneString(draft.BlogType),
		CreatedAt: repository.Now(),
	}
	s.waitlist = append(s.waitlist, entry)
	s.waitlistEmails[entry.Email] = struct{}{}

	entry.BlogType = cloneString(entry.BlogType)
	return entry, nil
}

func (s *Store) hasUser(id int64) bool {
	return id >= 1 && id <= int64(len(s.users))
}

func cloneUser(u model.User) model.User {
	u.FullName = cloneString(u.FullName)
	u.Avatar = cloneString(u.Avatar)
	u.Bio = cloneString(u.Bio)
	return u
}

func cloneCategory(c model.Category) model.Category {
	c.Description = cloneString(c.Description)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
