package model

import "time"

// Comment is a reader's reply on a post. CreatedAt is set by storage and
// never changes.
type Comment struct {
	ID        int64     `json:"id"        db:"id"`
	Content   string    `json:"content"   db:"content"`
	AuthorID  int64     `json:"authorId"  db:"author_id"`
	PostID    int64     `json:"postId"    db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type NewComment struct {
	Content  string `json:"content"  validate:"required,max=5000"`
	AuthorID int64  `json:"-"        validate:"required,gt=0"`
	PostID   int64  `json:"postId"   validate:"required,gt=0"`
}

// WaitlistEntry is a pre-launch signup. Email is unique across the list.
type WaitlistEntry struct {
	ID        int64     `json:"id"        db:"id"`
	FullName  string    `json:"fullName"  db:"full_name"`
	Email     string    `json:"email"     db:"email"`
	BlogType  *string   `json:"blogType"  db:"blog_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type NewWaitlistEntry struct {
	FullName string  `json:"fullName" validate:"required,max=100"`
	Email    string  `json:"email"    validate:"required,email,max=254"`
	BlogType *string `json:"blogType" validate:"omitempty,max=50"`
}
