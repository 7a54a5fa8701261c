package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/auth"
	"github.com/sakif/blogstack/internal/markdown"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/service"
)

// BlogHandler serves categories, tags, posts, post tags and comments.
//
// PATH PARAMETERS:
// {category}, {tag} and {post} are slugs on their own routes
// (GET /api/posts/hello-world). On nested routes they may also be numeric
// ids (GET /api/categories/3/posts), which skips the slug lookup. Slugs
// always contain a letter, so an all-digit segment is never a slug.
type BlogHandler struct {
	blog   *service.BlogService
	logger *slog.Logger
}

func NewBlogHandler(blog *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blog: blog, logger: logger}
}

// =========================================================================
// CATEGORIES
// =========================================================================

// HTTP: GET /api/categories
func (h *BlogHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.blog.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, categories)
}

// HTTP: GET /api/categories/{category}
func (h *BlogHandler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.blog.GetCategory(r.Context(), urlParam(r, "category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, category)
}

// HTTP: POST /api/categories
func (h *BlogHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var draft model.NewCategory
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, err)
		return
	}
	category, err := h.blog.CreateCategory(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// HTTP: GET /api/categories/{category}/posts?limit=&offset=
func (h *BlogHandler) HandleListPostsByCategory(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	categoryID, ok := numericParam(r, "category")
	if !ok {
		category, err := h.blog.GetCategory(r.Context(), urlParam(r, "category"))
		if err != nil {
			writeError(w, err)
			return
		}
		categoryID = category.ID
	}

	posts, err := h.blog.ListPostsByCategory(r.Context(), categoryID, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, posts)
}

// =========================================================================
// TAGS
// =========================================================================

// HTTP: GET /api/tags
func (h *BlogHandler) HandleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.blog.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, tags)
}

// HTTP: GET /api/tags/{tag}
func (h *BlogHandler) HandleGetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.blog.GetTag(r.Context(), urlParam(r, "tag"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, tag)
}

// HTTP: POST /api/tags
func (h *BlogHandler) HandleCreateTag(w http.ResponseWriter, r *http.Request) {
	var draft model.NewTag
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, err)
		return
	}
	tag, err := h.blog.CreateTag(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// HTTP: GET /api/tags/{tag}/posts?limit=&offset=
func (h *BlogHandler) HandleListPostsByTag(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tagID, ok := numericParam(r, "tag")
	if !ok {
		tag, err := h.blog.GetTag(r.Context(), urlParam(r, "tag"))
		if err != nil {
			writeError(w, err)
			return
		}
		tagID = tag.ID
	}

	posts, err := h.blog.ListPostsByTag(r.Context(), tagID, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, posts)
}

// =========================================================================
// POSTS
// =========================================================================

// PostResponse is a post plus its Markdown body rendered to HTML.
type PostResponse struct {
	model.Post
	ContentHTML string `json:"contentHtml"`
}

// HTTP: GET /api/posts?limit=&offset=
func (h *BlogHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	posts, err := h.blog.ListPosts(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, posts)
}

// HTTP: GET /api/posts/featured?limit=
func (h *BlogHandler) HandleListFeatured(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	posts, err := h.blog.ListFeatured(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, posts)
}

// HandleGetPost returns one post with contentHtml rendered by goldmark.
//
// HTTP: GET /api/posts/{post}
func (h *BlogHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.blog.GetPost(r.Context(), urlParam(r, "post"))
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := markdown.Render(post.Content)
	if err != nil {
		h.logger.Error("failed to render post",
			slog.Int64("postID", post.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, PostResponse{Post: post, ContentHTML: html})
}

// HandleCreatePost publishes a post as the authenticated user. Any author
// id in the body is ignored.
//
// HTTP: POST /api/posts
func (h *BlogHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var draft model.NewPost
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, err)
		return
	}
	draft.AuthorID = userID

	post, err := h.blog.CreatePost(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// HandleRecordView adds one view and returns the updated post.
//
// HTTP: PATCH /api/posts/{post}/views
func (h *BlogHandler) HandleRecordView(w http.ResponseWriter, r *http.Request) {
	postID, err := h.postID(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	post, err := h.blog.RecordView(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// =========================================================================
// POST TAGS
// =========================================================================

// HTTP: GET /api/posts/{post}/tags
func (h *BlogHandler) HandleListPostTags(w http.ResponseWriter, r *http.Request) {
	postID, err := h.postID(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	tags, err := h.blog.ListPostTags(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, tags)
}

type tagPostRequest struct {
	TagID int64 `json:"tagId"`
}

// HTTP: POST /api/posts/{post}/tags
// REQUEST BODY: {"tagId": 3}
func (h *BlogHandler) HandleTagPost(w http.ResponseWriter, r *http.Request) {
	postID, err := h.postID(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req tagPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.TagID <= 0 {
		writeError(w, apperror.ValidationFailed("tagId", "tagId must be a positive id"))
		return
	}

	pt, err := h.blog.TagPost(r.Context(), postID, req.TagID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pt)
}

// =========================================================================
// COMMENTS
// =========================================================================

// HTTP: GET /api/posts/{post}/comments
func (h *BlogHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := h.postID(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	comments, err := h.blog.ListComments(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, comments)
}

// HTTP: POST /api/comments
// REQUEST BODY: {"postId": 1, "content": "Great read!"}
func (h *BlogHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var draft model.NewComment
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, err)
		return
	}
	draft.AuthorID = userID

	comment, err := h.blog.CreateComment(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// postID resolves {post} to an id: numeric values are used as-is, anything
// else is looked up as a slug.
func (h *BlogHandler) postID(ctx context.Context, r *http.Request) (int64, error) {
	if id, ok := numericParam(r, "post"); ok {
		return id, nil
	}
	post, err := h.blog.GetPost(ctx, urlParam(r, "post"))
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}
