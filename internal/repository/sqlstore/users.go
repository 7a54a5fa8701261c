package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
)

const userColumns = `id, username, password, email, full_name, avatar, bio, is_admin`

// CreateUser inserts the draft and lets the unique indexes on username and
// email decide conflicts. Checking first and inserting second would race.
func (s *Store) CreateUser(ctx context.Context, draft model.NewUser) (model.User, error) {
	user := model.User{
		Username: draft.Username,
		Password: draft.Password,
		Email:    draft.Email,
		FullName: draft.FullName,
		Avatar:   draft.Avatar,
		Bio:      draft.Bio,
	}

	err := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`INSERT INTO users (username, password, email, full_name, avatar, bio, is_admin)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		user.Username,
		user.Password,
		user.Email,
		user.FullName,
		user.Avatar,
		user.Bio,
		false,
	).Scan(&user.ID)
	if err != nil {
		return model.User{}, s.translate("creating user", err, func(target string) error {
			switch target {
			case "users.username":
				return apperror.DuplicateUsername(draft.Username)
			case "users.email":
				return apperror.DuplicateEmail(draft.Email)
			}
			return nil
		})
	}

	return copyUser(user), nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, bool, error) {
	return s.getUser(ctx, "getting user", "id", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, bool, error) {
	return s.getUser(ctx, "getting user by username", "username", username)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, bool, error) {
	return s.getUser(ctx, "getting user by email", "email", email)
}

// getUser looks a user up by one column. column is always a constant from
// this file, never caller input.
func (s *Store) getUser(ctx context.Context, op, column string, value any) (model.User, bool, error) {
	row := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`), value)

	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.FullName, &u.Avatar, &u.Bio, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, s.unavailable(op, err)
	}
	return u, true, nil
}

// copyUser detaches the optional fields from the caller's draft.
func copyUser(u model.User) model.User {
	u.FullName = copyString(u.FullName)
	u.Avatar = copyString(u.Avatar)
	u.Bio = copyString(u.Bio)
	return u
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
