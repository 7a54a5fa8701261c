// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, hashes, enforces rules, logs
//	Repository (Data layer)  → memory or SQL storage behind one interface
//
// Services accept and return model types, never HTTP types, and report
// failures as apperror values. The handler layer alone decides which status
// code each apperror kind becomes.
//
// DEPENDENCY INJECTION:
// Each service takes the narrowest repository interface it needs. main.go
// passes the same repository.Storage value to all of them; tests pass the
// memory store or a small fake.
package service

import (
	"errors"
	"log/slog"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/repository"
)

// logFailure records storage outages at error level. Not-found, conflict,
// validation and reference errors are the caller's problem and are left to
// the request log.
func logFailure(logger *slog.Logger, op string, err error) {
	if !errors.Is(err, apperror.ErrStorageUnavailable) {
		return
	}
	cause := err
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		cause = appErr.Err
	}
	logger.Error(op+" failed", slog.String("error", cause.Error()))
}

// checkListOptions rejects negative paging values instead of silently
// clamping them. A zero limit means "everything".
func checkListOptions(opts repository.ListOptions) error {
	if opts.Limit < 0 {
		return apperror.ValidationFailed("limit", "limit must not be negative")
	}
	if opts.Offset < 0 {
		return apperror.ValidationFailed("offset", "offset must not be negative")
	}
	return nil
}
