package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrReference          = errors.New("reference violation")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Named conflict kinds. Each one wraps ErrConflict, so callers can match
// either the specific kind or the general one with errors.Is.
var (
	ErrDuplicateUsername      = fmt.Errorf("duplicate username: %w", ErrConflict)
	ErrDuplicateEmail         = fmt.Errorf("duplicate email: %w", ErrConflict)
	ErrDuplicateWaitlistEmail = fmt.Errorf("duplicate waitlist email: %w", ErrConflict)
	ErrDuplicateSlug          = fmt.Errorf("duplicate slug: %w", ErrConflict)
	ErrDuplicatePostTag       = fmt.Errorf("duplicate post tag: %w", ErrConflict)
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation that matches none of the named
// kinds. The cause stays in the chain; the message only names the operation.
func Conflict(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrConflict, cause),
		Message: fmt.Sprintf("conflict while %s", op),
	}
}

func DuplicateUsername(username string) *AppError {
	return &AppError{
		Err:     ErrDuplicateUsername,
		Message: fmt.Sprintf("username %q is already taken", username),
		Field:   "username",
	}
}

func DuplicateEmail(email string) *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: fmt.Sprintf("email %q is already registered", email),
		Field:   "email",
	}
}

func DuplicateWaitlistEmail(email string) *AppError {
	return &AppError{
		Err:     ErrDuplicateWaitlistEmail,
		Message: fmt.Sprintf("email %q is already on the waitlist", email),
		Field:   "email",
	}
}

// DuplicateSlug reports a slug collision for a category, tag or post.
func DuplicateSlug(resource, slug string) *AppError {
	return &AppError{
		Err:     ErrDuplicateSlug,
		Message: fmt.Sprintf("%s slug %q is already in use", resource, slug),
		Field:   "slug",
	}
}

func DuplicatePostTag(postID, tagID int64) *AppError {
	return &AppError{
		Err:     ErrDuplicatePostTag,
		Message: fmt.Sprintf("tag %d is already attached to post %d", tagID, postID),
		Field:   "tagId",
	}
}

// Reference reports a foreign key that does not resolve. field names the
// dangling reference ("author", "category", "post", "tag").
func Reference(field string, id int64) *AppError {
	return &AppError{
		Err:     ErrReference,
		Message: fmt.Sprintf("%s %d does not exist", field, id),
		Field:   field,
	}
}

// Unavailable wraps an infrastructure failure from the backing store.
// The cause stays in the chain for logging but never reaches the message.
func Unavailable(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrStorageUnavailable, cause),
		Message: fmt.Sprintf("storage unavailable while %s", op),
	}
}

// Unauthorized returns an AppError for missing or rejected credentials.
// HTTP handlers map this to 401 Unauthorized.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
