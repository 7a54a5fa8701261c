package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/auth"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
)

// UserService handles author registration, login and lookup.
//
// DEPENDENCIES:
//   - users      repository.UserRepository → read/write user rows
//   - passwords  *auth.PasswordService     → bcrypt hashing
//   - tokens     *auth.TokenService        → JWT issuing; nil disables login
//   - logger     *slog.Logger              → structured logging
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		validate:  newValidator(),
		logger:    logger,
	}
}

// AuthResult bundles the user and the issued JWT so the handler can set the
// cookie and respond in one step.
type AuthResult struct {
	User  model.User
	Token string
}

// Register validates the draft, hashes the password and stores the user.
//
// The plaintext password never reaches the repository: storage keeps
// whatever it is given, so hashing has to happen here.
func (s *UserService) Register(ctx context.Context, draft model.NewUser) (model.User, error) {
	draft.Username = strings.TrimSpace(draft.Username)
	draft.Email = normalizeEmail(draft.Email)
	draft.FullName = trimOptional(draft.FullName)
	draft.Avatar = trimOptional(draft.Avatar)
	draft.Bio = trimOptional(draft.Bio)

	if err := validateStruct(s.validate, draft); err != nil {
		return model.User{}, err
	}

	hash, err := s.passwords.Hash(draft.Password)
	if err != nil {
		return model.User{}, apperror.ValidationFailed("password", err.Error())
	}
	draft.Password = hash

	user, err := s.users.CreateUser(ctx, draft)
	if err != nil {
		logFailure(s.logger, "creating user", err)
		return model.User{}, err
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login checks credentials and issues a token.
//
// Every failure (unknown user, wrong password) returns the same
// ErrUnauthorized message, and an unknown username still costs one bcrypt
// comparison, so responses do not reveal which usernames exist.
func (s *UserService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	if s.tokens == nil {
		return AuthResult{}, apperror.Forbidden("login is disabled: no JWT secret configured")
	}
	invalid := apperror.Unauthorized("invalid username or password")

	user, found, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		logFailure(s.logger, "looking up user for login", err)
		return AuthResult{}, err
	}
	if !found {
		s.passwords.VerifyNothing(password)
		return AuthResult{}, invalid
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return AuthResult{}, invalid
		}
		s.logger.Error("stored password hash is unusable",
			slog.Int64("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return AuthResult{}, fmt.Errorf("service/user: verifying password for user %d: %w", user.ID, err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service/user: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))
	return AuthResult{User: user, Token: token}, nil
}

// GetByID returns the user or an apperror.ErrNotFound error.
func (s *UserService) GetByID(ctx context.Context, id int64) (model.User, error) {
	user, found, err := s.users.GetUser(ctx, id)
	if err != nil {
		logFailure(s.logger, "getting user", err)
		return model.User{}, err
	}
	if !found {
		return model.User{}, apperror.NotFound("user", strconv.FormatInt(id, 10))
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, found, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		logFailure(s.logger, "getting user by username", err)
		return model.User{}, err
	}
	if !found {
		return model.User{}, apperror.NotFound("user", username)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// trimOptional trims an optional field and maps blank input to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
