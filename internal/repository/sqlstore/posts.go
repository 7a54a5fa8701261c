package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
)

const postColumns = `id, title, slug, excerpt, content, cover_image, author_id, category_id,
	published_at, is_featured, views, seo_title, seo_description, meta_tags`

// postOrder is repository.ComparePosts in SQL. The IS NULL key pushes
// undated posts to the end on both engines (false sorts before true).
const postOrder = ` ORDER BY (published_at IS NULL), published_at DESC, id DESC`

// CreatePost checks both references and inserts in one transaction, so the
// caller learns WHICH reference is missing. The foreign keys still back this
// up for writers that bypass the store.
func (s *Store) CreatePost(ctx context.Context, draft model.NewPost) (model.Post, error) {
	const op = "creating post"

	published := repository.Now()
	if draft.PublishedAt != nil {
		published = repository.Timestamp(*draft.PublishedAt)
	}
	meta, err := encodeMetaTags(draft.MetaTags)
	if err != nil {
		return model.Post{}, apperror.ValidationFailed("metaTags", err.Error())
	}

	post := model.Post{
		Title:          draft.Title,
		Slug:           draft.Slug,
		Excerpt:        draft.Excerpt,
		Content:        draft.Content,
		CoverImage:     draft.CoverImage,
		AuthorID:       draft.AuthorID,
		CategoryID:     draft.CategoryID,
		PublishedAt:    &published,
		IsFeatured:     draft.IsFeatured,
		SEOTitle:       draft.SEOTitle,
		SEODescription: draft.SEODescription,
		MetaTags:       draft.MetaTags,
	}

	err = s.withTx(ctx, op, func(tx *sql.Tx) error {
		if ok, err := s.exists(ctx, tx, "users", draft.AuthorID); err != nil {
			return s.unavailable(op, err)
		} else if !ok {
			return apperror.Reference("author", draft.AuthorID)
		}
		if ok, err := s.exists(ctx, tx, "categories", draft.CategoryID); err != nil {
			return s.unavailable(op, err)
		} else if !ok {
			return apperror.Reference("category", draft.CategoryID)
		}

		err := tx.QueryRowContext(ctx, s.dialect.bind(
			`INSERT INTO posts (title, slug, excerpt, content, cover_image, author_id, category_id,
				published_at, is_featured, views, seo_title, seo_description, meta_tags)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
			 RETURNING id`),
			post.Title,
			post.Slug,
			post.Excerpt,
			post.Content,
			post.CoverImage,
			post.AuthorID,
			post.CategoryID,
			published,
			post.IsFeatured,
			post.SEOTitle,
			post.SEODescription,
			meta,
		).Scan(&post.ID)
		if err != nil {
			return s.translate(op, err, func(target string) error {
				if target == "posts.slug" {
					return apperror.DuplicateSlug("post", draft.Slug)
				}
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return model.Post{}, err
	}

	return post.Clone(), nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (model.Post, bool, error) {
	row := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`SELECT `+postColumns+` FROM posts WHERE slug = ?`), slug)

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Post{}, false, nil
	}
	if err != nil {
		return model.Post{}, false, s.unavailable("getting post by slug", err)
	}
	return post, true, nil
}

func (s *Store) GetPosts(ctx context.Context, opts repository.ListOptions) ([]model.Post, error) {
	return s.listPosts(ctx, "listing posts", "", nil, opts)
}

func (s *Store) GetPostsByCategory(ctx context.Context, categoryID int64, opts repository.ListOptions) ([]model.Post, error) {
	return s.listPosts(ctx, "listing posts by category", ` WHERE category_id = ?`, []any{categoryID}, opts)
}

// GetPostsByTag filters through post_tags with a subquery. The pair index
// guarantees each post appears once per tag, so no DISTINCT is needed.
func (s *Store) GetPostsByTag(ctx context.Context, tagID int64, opts repository.ListOptions) ([]model.Post, error) {
	return s.listPosts(ctx, "listing posts by tag",
		` WHERE id IN (SELECT post_id FROM post_tags WHERE tag_id = ?)`, []any{tagID}, opts)
}

func (s *Store) GetFeaturedPosts(ctx context.Context, limit int) ([]model.Post, error) {
	return s.listPosts(ctx, "listing featured posts", ` WHERE is_featured = ?`, []any{true},
		repository.ListOptions{Limit: limit})
}

// UpdatePostViews is a single UPDATE, so the increment happens inside the
// database and concurrent callers cannot overwrite each other.
func (s *Store) UpdatePostViews(ctx context.Context, id int64) (model.Post, error) {
	row := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`UPDATE posts SET views = views + 1 WHERE id = ? RETURNING `+postColumns), id)

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Post{}, apperror.NotFound("post", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return model.Post{}, s.unavailable("incrementing post views", err)
	}
	return post, nil
}

func (s *Store) GetPostTags(ctx context.Context, postID int64) ([]model.PostTag, error) {
	rows, err := s.conn.QueryContext(ctx, s.dialect.bind(
		`SELECT id, post_id, tag_id FROM post_tags WHERE post_id = ? ORDER BY id`), postID)
	if err != nil {
		return nil, s.unavailable("listing post tags", err)
	}
	defer rows.Close()

	out := make([]model.PostTag, 0)
	for rows.Next() {
		var pt model.PostTag
		if err := rows.Scan(&pt.ID, &pt.PostID, &pt.TagID); err != nil {
			return nil, s.unavailable("scanning post tag row", err)
		}
		out = append(out, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("iterating post tags", err)
	}
	return out, nil
}

func (s *Store) AddTagToPost(ctx context.Context, postID, tagID int64) (model.PostTag, error) {
	const op = "adding tag to post"
	pt := model.PostTag{PostID: postID, TagID: tagID}

	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		if ok, err := s.exists(ctx, tx, "posts", postID); err != nil {
			return s.unavailable(op, err)
		} else if !ok {
			return apperror.Reference("post", postID)
		}
		if ok, err := s.exists(ctx, tx, "tags", tagID); err != nil {
			return s.unavailable(op, err)
		} else if !ok {
			return apperror.Reference("tag", tagID)
		}

		err := tx.QueryRowContext(ctx, s.dialect.bind(
			`INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?) RETURNING id`),
			postID, tagID,
		).Scan(&pt.ID)
		if err != nil {
			return s.translate(op, err, func(target string) error {
				if target == "post_tags.post_id" {
					return apperror.DuplicatePostTag(postID, tagID)
				}
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return model.PostTag{}, err
	}
	return pt, nil
}

// listPosts runs one filtered, ordered, paginated SELECT. where is a
// constant fragment from this file with its own placeholders in args.
func (s *Store) listPosts(ctx context.Context, op, where string, args []any, opts repository.ListOptions) ([]model.Post, error) {
	opts = opts.Normalize()
	limit, args := s.dialect.limit(opts.Limit, opts.Offset, args)

	rows, err := s.conn.QueryContext(ctx, s.dialect.bind(
		`SELECT `+postColumns+` FROM posts`+where+postOrder+limit), args...)
	if err != nil {
		return nil, s.unavailable(op, err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, s.unavailable(op, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable(op, err)
	}
	return posts, nil
}

func scanPost(row scanner) (model.Post, error) {
	var (
		p         model.Post
		published dbTime
		meta      metaTags
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.AuthorID, &p.CategoryID, &published, &p.IsFeatured, &p.Views,
		&p.SEOTitle, &p.SEODescription, &meta,
	)
	if err != nil {
		return model.Post{}, err
	}
	p.PublishedAt = published.ptr()
	p.MetaTags = meta
	return p, nil
}
