// Package model defines the data structures used throughout the application.
//
// Every entity comes in two shapes:
//   - the stored value (User, Post, ...) with its storage-assigned ID
//   - a draft (NewUser, NewPost, ...) carrying only client-supplied fields
//
// Storage never hands out pointers into its own state. Reads return copies,
// so a caller mutating a returned value cannot corrupt what is stored.
package model

// User represents a registered author account.
//
// WHY Password json:"-"?
// The password field holds a bcrypt hash once it reaches storage. Even a hash
// should never leave the server, so the JSON encoder skips it entirely rather
// than relying on every handler to remember to blank it.
//
// WHY *string FOR THE OPTIONAL FIELDS?
// FullName, Avatar and Bio are optional. A nil pointer means "never set",
// which maps directly onto SQL NULL and onto JSON null.
type User struct {
	ID       int64   `json:"id"       db:"id"`
	Username string  `json:"username" db:"username"`
	Password string  `json:"-"        db:"password"`
	Email    string  `json:"email"    db:"email"`
	FullName *string `json:"fullName" db:"full_name"`
	Avatar   *string `json:"avatar"   db:"avatar"` // URL
	Bio      *string `json:"bio"      db:"bio"`
	IsAdmin  bool    `json:"isAdmin"  db:"is_admin"`
}

// NewUser is the registration draft. IsAdmin is deliberately absent: new
// accounts are never administrators.
type NewUser struct {
	Username string  `json:"username" validate:"required,min=3,max=50,username"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Email    string  `json:"email"    validate:"required,email,max=254"`
	FullName *string `json:"fullName" validate:"omitempty,max=100"`
	Avatar   *string `json:"avatar"   validate:"omitempty,url"`
	Bio      *string `json:"bio"      validate:"omitempty,max=2000"`
}
