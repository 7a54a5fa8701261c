package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
)

// WaitlistService captures pre-launch signups.
type WaitlistService struct {
	repo     repository.WaitlistRepository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewWaitlistService(repo repository.WaitlistRepository, logger *slog.Logger) *WaitlistService {
	return &WaitlistService{repo: repo, validate: newValidator(), logger: logger}
}

// Join adds the signup. Emails are trimmed and lower-cased first, so
// "A@X.com " and "a@x.com" are the same entry and the second attempt fails
// with apperror.ErrDuplicateWaitlistEmail.
func (s *WaitlistService) Join(ctx context.Context, draft model.NewWaitlistEntry) (model.WaitlistEntry, error) {
	draft.FullName = strings.TrimSpace(draft.FullName)
	draft.Email = normalizeEmail(draft.Email)
	draft.BlogType = trimOptional(draft.BlogType)

	if err := validateStruct(s.validate, draft); err != nil {
		return model.WaitlistEntry{}, err
	}

	entry, err := s.repo.AddToWaitlist(ctx, draft)
	if err != nil {
		logFailure(s.logger, "adding to waitlist", err)
		return model.WaitlistEntry{}, err
	}

	s.logger.Info("waitlist entry added", slog.Int64("entryID", entry.ID))
	return entry, nil
}
