// Table-driven tests for the error taxonomy. Every constructor must keep its
// sentinel reachable through errors.Is so handlers never inspect message text.
package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("post", "7"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title", "title is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "DuplicateUsername is a conflict",
			err:       DuplicateUsername("sarah"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "DuplicateUsername matches its own kind",
			err:       DuplicateUsername("sarah"),
			target:    ErrDuplicateUsername,
			wantMatch: true,
		},
		{
			name:      "DuplicateUsername is not DuplicateEmail",
			err:       DuplicateUsername("sarah"),
			target:    ErrDuplicateEmail,
			wantMatch: false,
		},
		{
			name:      "DuplicateWaitlistEmail is a conflict",
			err:       DuplicateWaitlistEmail("a@x.com"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "DuplicateWaitlistEmail is not DuplicateEmail",
			err:       DuplicateWaitlistEmail("a@x.com"),
			target:    ErrDuplicateEmail,
			wantMatch: false,
		},
		{
			name:      "DuplicateSlug is a conflict",
			err:       DuplicateSlug("post", "hello"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "DuplicatePostTag is a conflict",
			err:       DuplicatePostTag(1, 2),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Reference wraps ErrReference",
			err:       Reference("author", 9),
			target:    ErrReference,
			wantMatch: true,
		},
		{
			name:      "Unavailable wraps ErrStorageUnavailable",
			err:       Unavailable("listing posts", errors.New("connection reset")),
			target:    ErrStorageUnavailable,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("creating post", errors.New("UNIQUE constraint failed: posts.title")),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Conflict is not a named kind",
			err:       Conflict("creating post", errors.New("UNIQUE constraint failed: posts.title")),
			target:    ErrDuplicateSlug,
			wantMatch: false,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("post", "7"),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("post", "7"),
			wantMessage: "post not found with id 7",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("title", "title is required"),
			wantMessage: "title is required",
		},
		{
			name:        "DuplicateWaitlistEmail names the email",
			err:         DuplicateWaitlistEmail("a@x.com"),
			wantMessage: `email "a@x.com" is already on the waitlist`,
		},
		{
			name:        "Reference names the dangling field",
			err:         Reference("category", 3),
			wantMessage: "category 3 does not exist",
		},
		{
			name:        "Conflict names the operation only",
			err:         Conflict("adding tag to post", errors.New("duplicate key value violates unique constraint")),
			wantMessage: "conflict while adding tag to post",
		},
		{
			name:        "Unavailable hides the cause",
			err:         Unavailable("creating user", errors.New("dial tcp 10.0.0.1:5432: refused")),
			wantMessage: "storage unavailable while creating user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Unavailable("incrementing views", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}

func TestConflictFields(t *testing.T) {
	tests := []struct {
		err       *AppError
		wantField string
	}{
		{DuplicateUsername("u"), "username"},
		{DuplicateEmail("e@x.com"), "email"},
		{DuplicateWaitlistEmail("e@x.com"), "email"},
		{DuplicateSlug("tag", "go"), "slug"},
		{Reference("post", 1), "post"},
	}

	for _, tt := range tests {
		if tt.err.Field != tt.wantField {
			t.Errorf("%v: Field = %q, want %q", tt.err, tt.err.Field, tt.wantField)
		}
	}
}
