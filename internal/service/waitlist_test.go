package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository/memory"
)

func TestJoinWaitlist(t *testing.T) {
	svc := NewWaitlistService(memory.New(), quietLogger())
	ctx := context.Background()

	entry, err := svc.Join(ctx, model.NewWaitlistEntry{
		FullName: " Ada Lovelace ",
		Email:    "  Ada@Example.com ",
		BlogType: ptr("tech"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", entry.FullName)
	assert.Equal(t, "ada@example.com", entry.Email)
	assert.Equal(t, "tech", *entry.BlogType)
	assert.False(t, entry.CreatedAt.IsZero())

	_, err = svc.Join(ctx, model.NewWaitlistEntry{FullName: "Someone Else", Email: "ADA@example.com"})
	requireKind(t, err, apperror.ErrDuplicateWaitlistEmail, "")
}

func TestJoinWaitlist_Validation(t *testing.T) {
	tests := []struct {
		name  string
		entry model.NewWaitlistEntry
		field string
	}{
		{"missing name", model.NewWaitlistEntry{Email: "a@b.co"}, "fullName"},
		{"missing email", model.NewWaitlistEntry{FullName: "A"}, "email"},
		{"malformed email", model.NewWaitlistEntry{FullName: "A", Email: "a.b.co"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWaitlistService(memory.New(), quietLogger())
			_, err := svc.Join(context.Background(), tt.entry)
			requireKind(t, err, apperror.ErrValidation, tt.field)
		})
	}
}

func TestJoinWaitlist_StorageUnavailable(t *testing.T) {
	svc := NewWaitlistService(newBrokenStorage(), quietLogger())

	_, err := svc.Join(context.Background(), model.NewWaitlistEntry{FullName: "A", Email: "a@b.co"})
	requireKind(t, err, apperror.ErrStorageUnavailable, "")
}
