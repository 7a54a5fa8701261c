package model

import "time"

// Post is a published article.
//
// Views is the only field that changes after creation, and only ever by +1
// through the storage layer's atomic increment.
//
// PublishedAt is a pointer because the persisted schema allows NULL. Storage
// fills it with the creation time when the draft leaves it unset, so posts
// created through this application always carry one; rows written by other
// tools may not, and those sort after every dated post.
type Post struct {
	ID             int64             `json:"id"             db:"id"`
	Title          string            `json:"title"          db:"title"`
	Slug           string            `json:"slug"           db:"slug"`
	Excerpt        string            `json:"excerpt"        db:"excerpt"`
	Content        string            `json:"content"        db:"content"`
	CoverImage     *string           `json:"coverImage"     db:"cover_image"`
	AuthorID       int64             `json:"authorId"       db:"author_id"`
	CategoryID     int64             `json:"categoryId"     db:"category_id"`
	PublishedAt    *time.Time        `json:"publishedAt"    db:"published_at"`
	IsFeatured     bool              `json:"isFeatured"     db:"is_featured"`
	Views          int64             `json:"views"          db:"views"`
	SEOTitle       *string           `json:"seoTitle"       db:"seo_title"`
	SEODescription *string           `json:"seoDescription" db:"seo_description"`
	MetaTags       map[string]string `json:"metaTags"       db:"meta_tags"`
}

// Clone returns a deep copy. The map and pointer fields are duplicated so the
// copy shares no memory with the receiver.
func (p Post) Clone() Post {
	out := p
	out.CoverImage = cloneString(p.CoverImage)
	out.SEOTitle = cloneString(p.SEOTitle)
	out.SEODescription = cloneString(p.SEODescription)
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		out.PublishedAt = &t
	}
	if p.MetaTags != nil {
		out.MetaTags = make(map[string]string, len(p.MetaTags))
		for k, v := range p.MetaTags {
			out.MetaTags[k] = v
		}
	}
	return out
}

// NewPost is the draft for CreatePost. AuthorID is filled in from the
// authenticated session by the HTTP layer, never from the request body.
type NewPost struct {
	Title          string            `json:"title"          validate:"required,max=200"`
	Slug           string            `json:"slug"           validate:"required,max=200,slug"`
	Excerpt        string            `json:"excerpt"        validate:"required,max=1000"`
	Content        string            `json:"content"        validate:"required"`
	CoverImage     *string           `json:"coverImage"     validate:"omitempty,url"`
	AuthorID       int64             `json:"-"              validate:"required,gt=0"`
	CategoryID     int64             `json:"categoryId"     validate:"required,gt=0"`
	PublishedAt    *time.Time        `json:"publishedAt"`
	IsFeatured     bool              `json:"isFeatured"`
	SEOTitle       *string           `json:"seoTitle"       validate:"omitempty,max=70"`
	SEODescription *string           `json:"seoDescription" validate:"omitempty,max=160"`
	MetaTags       map[string]string `json:"metaTags"       validate:"omitempty,dive,keys,required,max=100,endkeys,max=500"`
}

// PostTag joins a post to a tag. A (PostID, TagID) pair appears at most once.
type PostTag struct {
	ID     int64 `json:"id"     db:"id"`
	PostID int64 `json:"postId" db:"post_id"`
	TagID  int64 `json:"tagId"  db:"tag_id"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
