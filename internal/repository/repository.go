// Package repository defines the storage contract shared by every backend.
//
// Two implementations satisfy Storage:
//   - memory:   maps behind a mutex, non-durable, for tests and development
//   - sqlstore: database/sql over SQLite or Postgres, durable
//
// Which one runs is decided once at startup from configuration. Nothing
// downstream type-switches on the concrete backend.
//
// CONVENTIONS EVERY IMPLEMENTATION FOLLOWS:
//   - Lookups by key return (value, found, err). A missing row is found=false
//     with a nil error, never an error.
//   - Failures are always *apperror.AppError values wrapping one of the
//     apperror sentinels, so callers match with errors.Is and never look at
//     driver errors or message text.
//   - Returned values are copies. Mutating them does not affect storage.
package repository

import (
	"context"

	"github.com/sakif/blogstack/internal/model"
)

// ListOptions controls pagination. Limit <= 0 means "no limit"; a negative
// Offset is treated as zero.
type ListOptions struct {
	Limit  int
	Offset int
}

// Normalize clamps a negative offset to zero and folds every non-positive
// limit into 0 ("no limit").
func (o ListOptions) Normalize() ListOptions {
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Limit < 0 {
		o.Limit = 0
	}
	return o
}

type UserRepository interface {
	// CreateUser stores the draft as given. The password is expected to be
	// hashed already. Fails with ErrDuplicateUsername or ErrDuplicateEmail.
	CreateUser(ctx context.Context, draft model.NewUser) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, bool, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, draft model.NewCategory) (model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (model.Category, bool, error)
}

type TagRepository interface {
	CreateTag(ctx context.Context, draft model.NewTag) (model.Tag, error)
	GetTags(ctx context.Context) ([]model.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (model.Tag, bool, error)
}

// PostRepository covers posts and their tag associations.
//
// Every list method returns posts newest first: PublishedAt descending,
// posts without PublishedAt last, ties broken by ID descending.
type PostRepository interface {
	// CreatePost fails with ErrReference (field "author" or "category") when
	// either referenced row is missing, and ErrDuplicateSlug on a slug clash.
	CreatePost(ctx context.Context, draft model.NewPost) (model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (model.Post, bool, error)
	GetPosts(ctx context.Context, opts ListOptions) ([]model.Post, error)
	GetPostsByCategory(ctx context.Context, categoryID int64, opts ListOptions) ([]model.Post, error)
	GetPostsByTag(ctx context.Context, tagID int64, opts ListOptions) ([]model.Post, error)
	// GetFeaturedPosts returns featured posts; limit <= 0 returns all of them.
	GetFeaturedPosts(ctx context.Context, limit int) ([]model.Post, error)
	// UpdatePostViews atomically adds one to the post's view counter and
	// returns the updated post. Fails with ErrNotFound for an unknown id.
	UpdatePostViews(ctx context.Context, id int64) (model.Post, error)
	GetPostTags(ctx context.Context, postID int64) ([]model.PostTag, error)
	// AddTagToPost fails with ErrReference ("post" or "tag") and
	// ErrDuplicatePostTag when the pair already exists.
	AddTagToPost(ctx context.Context, postID, tagID int64) (model.PostTag, error)
}

type CommentRepository interface {
	// GetCommentsByPost returns comments newest first (CreatedAt descending,
	// then ID descending).
	GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, draft model.NewComment) (model.Comment, error)
}

type WaitlistRepository interface {
	// AddToWaitlist fails with ErrDuplicateWaitlistEmail when the email is
	// already on the list.
	AddToWaitlist(ctx context.Context, draft model.NewWaitlistEntry) (model.WaitlistEntry, error)
}

// Storage is the full contract. Close releases the backend's resources; the
// value must not be used afterwards.
type Storage interface {
	UserRepository
	CategoryRepository
	TagRepository
	PostRepository
	CommentRepository
	WaitlistRepository
	Close() error
}
