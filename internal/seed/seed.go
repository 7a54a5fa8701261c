// Package seed fills a fresh store with the starter categories, tags and
// author accounts the blog ships with.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/service"
)

// DefaultPassword is the password of every seeded author. Change it (or do
// not seed) anywhere other than a local machine.
const DefaultPassword = "password123"

var categories = []model.NewCategory{
	{Name: "Technology", Slug: "technology", Description: ptr("Latest tech news and reviews")},
	{Name: "Design", Slug: "design", Description: ptr("UI/UX and graphic design trends")},
	{Name: "Business", Slug: "business", Description: ptr("Entrepreneurship and business strategies")},
	{Name: "Lifestyle", Slug: "lifestyle", Description: ptr("Health, wellness, and daily living tips")},
	{Name: "Travel", Slug: "travel", Description: ptr("Travel guides and experiences")},
}

var tags = []model.NewTag{
	{Name: "JavaScript", Slug: "javascript"},
	{Name: "React", Slug: "react"},
	{Name: "SEO", Slug: "seo"},
	{Name: "Design", Slug: "design"},
	{Name: "Productivity", Slug: "productivity"},
	{Name: "Business", Slug: "business"},
}

var authors = []model.NewUser{
	{
		Username: "sarahjohnson",
		Email:    "sarah@example.com",
		FullName: ptr("Sarah Johnson"),
		Avatar:   ptr("https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=facearea&facepad=2&w=100&h=100&q=80"),
		Bio:      ptr("Tech enthusiast and software engineer with 5+ years of experience in web development."),
	},
	{
		Username: "davidchen",
		Email:    "david@example.com",
		FullName: ptr("David Chen"),
		Avatar:   ptr("https://images.unsplash.com/photo-1560250097-0b93528c311a?auto=format&fit=facearea&facepad=2&w=100&h=100&q=80"),
		Bio:      ptr("UX designer and product strategist helping companies build better digital experiences."),
	},
	{
		Username: "michellepatel",
		Email:    "michelle@example.com",
		FullName: ptr("Michelle Patel"),
		Avatar:   ptr("https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?auto=format&fit=facearea&facepad=2&w=100&h=100&q=80"),
		Bio:      ptr("Digital marketing specialist with expertise in SEO and content strategy."),
	},
}

// Result counts what one Defaults run did.
type Result struct {
	Created int
	Skipped int
}

// Defaults creates the starter data through the services, so author
// passwords are hashed and drafts validated exactly as for API requests.
//
// It is safe to run on every start: a row whose slug or username is already
// taken is counted as skipped, not treated as a failure.
func Defaults(ctx context.Context, users *service.UserService, blog *service.BlogService, logger *slog.Logger) (Result, error) {
	var res Result

	record := func(what, key string, err error) error {
		switch {
		case err == nil:
			res.Created++
			return nil
		case errors.Is(err, apperror.ErrConflict):
			res.Skipped++
			return nil
		default:
			return fmt.Errorf("seed: %s %q: %w", what, key, err)
		}
	}

	for _, c := range categories {
		_, err := blog.CreateCategory(ctx, c)
		if err := record("category", c.Slug, err); err != nil {
			return res, err
		}
	}
	for _, t := range tags {
		_, err := blog.CreateTag(ctx, t)
		if err := record("tag", t.Slug, err); err != nil {
			return res, err
		}
	}
	for _, a := range authors {
		a.Password = DefaultPassword
		_, err := users.Register(ctx, a)
		if err := record("author", a.Username, err); err != nil {
			return res, err
		}
	}

	logger.Info("seed complete", slog.Int("created", res.Created), slog.Int("skipped", res.Skipped))
	return res, nil
}

func ptr(s string) *string { return &s }
