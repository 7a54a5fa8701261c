package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
)

// BlogRepository is the slice of storage the blog needs: taxonomy, posts and
// comments. repository.Storage satisfies it.
type BlogRepository interface {
	repository.CategoryRepository
	repository.TagRepository
	repository.PostRepository
	repository.CommentRepository
}

// BlogService holds the rules for categories, tags, posts and comments.
//
// Storage already enforces referential integrity and uniqueness, so this
// layer only shapes input (trim, validate) and turns "not found" booleans
// into apperror values the handlers understand.
type BlogService struct {
	repo     BlogRepository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewBlogService(repo BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{repo: repo, validate: newValidator(), logger: logger}
}

// =========================================================================
// CATEGORIES
// =========================================================================

func (s *BlogService) CreateCategory(ctx context.Context, draft model.NewCategory) (model.Category, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Slug = strings.TrimSpace(draft.Slug)
	draft.Description = trimOptional(draft.Description)
	if err := validateStruct(s.validate, draft); err != nil {
		return model.Category{}, err
	}

	category, err := s.repo.CreateCategory(ctx, draft)
	if err != nil {
		logFailure(s.logger, "creating category", err)
		return model.Category{}, err
	}
	s.logger.Info("category created", slog.Int64("categoryID", category.ID), slog.String("slug", category.Slug))
	return category, nil
}

func (s *BlogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		logFailure(s.logger, "listing categories", err)
		return nil, err
	}
	return categories, nil
}

func (s *BlogService) GetCategory(ctx context.Context, slug string) (model.Category, error) {
	category, found, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		logFailure(s.logger, "getting category", err)
		return model.Category{}, err
	}
	if !found {
		return model.Category{}, apperror.NotFound("category", slug)
	}
	return category, nil
}

// =========================================================================
// TAGS
// =========================================================================

func (s *BlogService) CreateTag(ctx context.Context, draft model.NewTag) (model.Tag, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Slug = strings.TrimSpace(draft.Slug)
	if err := validateStruct(s.validate, draft); err != nil {
		return model.Tag{}, err
	}

	tag, err := s.repo.CreateTag(ctx, draft)
	if err != nil {
		logFailure(s.logger, "creating tag", err)
		return model.Tag{}, err
	}
	s.logger.Info("tag created", slog.Int64("tagID", tag.ID), slog.String("slug", tag.Slug))
	return tag, nil
}

func (s *BlogService) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.repo.GetTags(ctx)
	if err != nil {
		logFailure(s.logger, "listing tags", err)
		return nil, err
	}
	return tags, nil
}

func (s *BlogService) GetTag(ctx context.Context, slug string) (model.Tag, error) {
	tag, found, err := s.repo.GetTagBySlug(ctx, slug)
	if err != nil {
		logFailure(s.logger, "getting tag", err)
		return model.Tag{}, err
	}
	if !found {
		return model.Tag{}, apperror.NotFound("tag", slug)
	}
	return tag, nil
}

// =========================================================================
// POSTS
// =========================================================================

// CreatePost validates and stores a post. The caller sets draft.AuthorID from
// the authenticated session. A missing author or category surfaces as
// apperror.ErrReference from storage.
func (s *BlogService) CreatePost(ctx context.Context, draft model.NewPost) (model.Post, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Slug = strings.TrimSpace(draft.Slug)
	draft.Excerpt = strings.TrimSpace(draft.Excerpt)
	draft.CoverImage = trimOptional(draft.CoverImage)
	draft.SEOTitle = trimOptional(draft.SEOTitle)
	draft.SEODescription = trimOptional(draft.SEODescription)
	if strings.TrimSpace(draft.Content) == "" {
		return model.Post{}, apperror.ValidationFailed("content", "content is required")
	}
	if err := validateStruct(s.validate, draft); err != nil {
		return model.Post{}, err
	}

	post, err := s.repo.CreatePost(ctx, draft)
	if err != nil {
		logFailure(s.logger, "creating post", err)
		return model.Post{}, err
	}
	s.logger.Info("post created",
		slog.Int64("postID", post.ID),
		slog.Int64("authorID", post.AuthorID),
		slog.String("slug", post.Slug),
	)
	return post, nil
}

func (s *BlogService) GetPost(ctx context.Context, slug string) (model.Post, error) {
	post, found, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		logFailure(s.logger, "getting post", err)
		return model.Post{}, err
	}
	if !found {
		return model.Post{}, apperror.NotFound("post", slug)
	}
	return post, nil
}

func (s *BlogService) ListPosts(ctx context.Context, opts repository.ListOptions) ([]model.Post, error) {
	if err := checkListOptions(opts); err != nil {
		return nil, err
	}
	posts, err := s.repo.GetPosts(ctx, opts)
	if err != nil {
		logFailure(s.logger, "listing posts", err)
		return nil, err
	}
	return posts, nil
}

// ListPostsByCategory returns an empty list, not an error, for a category id
// that does not exist.
func (s *BlogService) ListPostsByCategory(ctx context.Context, categoryID int64, opts repository.ListOptions) ([]model.Post, error) {
	if err := checkListOptions(opts); err != nil {
		return nil, err
	}
	posts, err := s.repo.GetPostsByCategory(ctx, categoryID, opts)
	if err != nil {
		logFailure(s.logger, "listing posts by category", err)
		return nil, err
	}
	return posts, nil
}

func (s *BlogService) ListPostsByTag(ctx context.Context, tagID int64, opts repository.ListOptions) ([]model.Post, error) {
	if err := checkListOptions(opts); err != nil {
		return nil, err
	}
	posts, err := s.repo.GetPostsByTag(ctx, tagID, opts)
	if err != nil {
		logFailure(s.logger, "listing posts by tag", err)
		return nil, err
	}
	return posts, nil
}

// ListFeatured returns featured posts; limit 0 returns all of them.
func (s *BlogService) ListFeatured(ctx context.Context, limit int) ([]model.Post, error) {
	if limit < 0 {
		return nil, apperror.ValidationFailed("limit", "limit must not be negative")
	}
	posts, err := s.repo.GetFeaturedPosts(ctx, limit)
	if err != nil {
		logFailure(s.logger, "listing featured posts", err)
		return nil, err
	}
	return posts, nil
}

// RecordView counts one view and returns the post with its new total.
func (s *BlogService) RecordView(ctx context.Context, postID int64) (model.Post, error) {
	post, err := s.repo.UpdatePostViews(ctx, postID)
	if err != nil {
		logFailure(s.logger, "recording post view", err)
		return model.Post{}, err
	}
	return post, nil
}

// =========================================================================
// POST TAGS
// =========================================================================

func (s *BlogService) ListPostTags(ctx context.Context, postID int64) ([]model.PostTag, error) {
	tags, err := s.repo.GetPostTags(ctx, postID)
	if err != nil {
		logFailure(s.logger, "listing post tags", err)
		return nil, err
	}
	return tags, nil
}

func (s *BlogService) TagPost(ctx context.Context, postID, tagID int64) (model.PostTag, error) {
	pt, err := s.repo.AddTagToPost(ctx, postID, tagID)
	if err != nil {
		logFailure(s.logger, "tagging post", err)
		return model.PostTag{}, err
	}
	s.logger.Info("post tagged", slog.Int64("postID", postID), slog.Int64("tagID", tagID))
	return pt, nil
}

// =========================================================================
// COMMENTS
// =========================================================================

func (s *BlogService) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	comments, err := s.repo.GetCommentsByPost(ctx, postID)
	if err != nil {
		logFailure(s.logger, "listing comments", err)
		return nil, err
	}
	return comments, nil
}

func (s *BlogService) CreateComment(ctx context.Context, draft model.NewComment) (model.Comment, error) {
	draft.Content = strings.TrimSpace(draft.Content)
	if err := validateStruct(s.validate, draft); err != nil {
		return model.Comment{}, err
	}

	comment, err := s.repo.CreateComment(ctx, draft)
	if err != nil {
		logFailure(s.logger, "creating comment", err)
		return model.Comment{}, err
	}
	s.logger.Info("comment created",
		slog.Int64("commentID", comment.ID),
		slog.Int64("postID", comment.PostID),
		slog.Int64("authorID", comment.AuthorID),
	)
	return comment, nil
}
