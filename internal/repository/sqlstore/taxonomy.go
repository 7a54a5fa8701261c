package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
)

func (s *Store) CreateCategory(ctx context.Context, draft model.NewCategory) (model.Category, error) {
	category := model.Category{
		Name:        draft.Name,
		Slug:        draft.Slug,
		Description: copyString(draft.Description),
	}

	err := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`INSERT INTO categories (name, slug, description) VALUES (?, ?, ?) RETURNING id`),
		category.Name, category.Slug, category.Description,
	).Scan(&category.ID)
	if err != nil {
		return model.Category{}, s.translate("creating category", err, func(target string) error {
			if target == "categories.slug" {
				return apperror.DuplicateSlug("category", draft.Slug)
			}
			return nil
		})
	}
	return category, nil
}

func (s *Store) GetCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, slug, description FROM categories ORDER BY id`)
	if err != nil {
		return nil, s.unavailable("listing categories", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, s.unavailable("scanning category row", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("iterating categories", err)
	}
	return categories, nil
}

func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, bool, error) {
	var c model.Category
	err := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`SELECT id, name, slug, description FROM categories WHERE slug = ?`), slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, false, nil
	}
	if err != nil {
		return model.Category{}, false, s.unavailable("getting category by slug", err)
	}
	return c, true, nil
}

func (s *Store) CreateTag(ctx context.Context, draft model.NewTag) (model.Tag, error) {
	tag := model.Tag{Name: draft.Name, Slug: draft.Slug}

	err := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`INSERT INTO tags (name, slug) VALUES (?, ?) RETURNING id`),
		tag.Name, tag.Slug,
	).Scan(&tag.ID)
	if err != nil {
		return model.Tag{}, s.translate("creating tag", err, func(target string) error {
			if target == "tags.slug" {
				return apperror.DuplicateSlug("tag", draft.Slug)
			}
			return nil
		})
	}
	return tag, nil
}

func (s *Store) GetTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, name, slug FROM tags ORDER BY id`)
	if err != nil {
		return nil, s.unavailable("listing tags", err)
	}
	defer rows.Close()

	tags := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, s.unavailable("scanning tag row", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("iterating tags", err)
	}
	return tags, nil
}

func (s *Store) GetTagBySlug(ctx context.Context, slug string) (model.Tag, bool, error) {
	var t model.Tag
	err := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`SELECT id, name, slug FROM tags WHERE slug = ?`), slug,
	).Scan(&t.ID, &t.Name, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, false, nil
	}
	if err != nil {
		return model.Tag{}, false, s.unavailable("getting tag by slug", err)
	}
	return t, true, nil
}
