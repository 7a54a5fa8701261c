package model

// Category groups posts by topic. Every post belongs to exactly one.
type Category struct {
	ID          int64   `json:"id"          db:"id"`
	Name        string  `json:"name"        db:"name"`
	Slug        string  `json:"slug"        db:"slug"`
	Description *string `json:"description" db:"description"`
}

type NewCategory struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Slug        string  `json:"slug"        validate:"required,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// Tag labels posts across categories (many-to-many through PostTag).
type Tag struct {
	ID   int64  `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

type NewTag struct {
	Name string `json:"name" validate:"required,max=50"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}
