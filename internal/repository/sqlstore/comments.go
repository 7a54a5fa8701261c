package sqlstore

import (
	"context"
	"database/sql"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
)

func (s *Store) GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := s.conn.QueryContext(ctx, s.dialect.bind(
		`SELECT id, content, author_id, post_id, created_at
		 FROM comments
		 WHERE post_id = ?
		 ORDER BY created_at DESC, id DESC`), postID)
	if err != nil {
		return nil, s.unavailable("listing comments", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var (
			c       model.Comment
			created dbTime
		)
		if err := rows.Scan(&c.ID, &c.Content, &c.AuthorID, &c.PostID, &created); err != nil {
			return nil, s.unavailable("scanning comment row", err)
		}
		c.CreatedAt = created.Time
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("iterating comments", err)
	}
	return comments, nil
}

func (s *Store) CreateComment(ctx context.Context, draft model.NewComment) (model.Comment, error) {
	const op = "creating comment"
	comment := model.Comment{
		Content:   draft.Content,
		AuthorID:  draft.AuthorID,
		PostID:    draft.PostID,
		CreatedAt: repository.Now(),
	}

	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		if ok, err := s.exists(ctx, tx, "users", draft.AuthorID); err != nil {
			return s.unavailable(op, err)
		} else if !ok {
			return apperror.Reference("author", draft.AuthorID)
		}
		if ok, err := s.exists(ctx, tx, "posts", draft.PostID); err != nil {
			return s.unavailable(op, err)
		} else if !ok {
			return apperror.Reference("post", draft.PostID)
		}

		err := tx.QueryRowContext(ctx, s.dialect.bind(
			`INSERT INTO comments (content, author_id, post_id, created_at)
			 VALUES (?, ?, ?, ?)
			 RETURNING id`),
			comment.Content, comment.AuthorID, comment.PostID, comment.CreatedAt,
		).Scan(&comment.ID)
		if err != nil {
			return s.translate(op, err, nil)
		}
		return nil
	})
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *Store) AddToWaitlist(ctx context.Context, draft model.NewWaitlistEntry) (model.WaitlistEntry, error) {
	entry := model.WaitlistEntry{
		FullName:  draft.FullName,
		Email:     draft.Email,
		BlogType:  copyString(draft.BlogType),
		CreatedAt: repository.Now(),
	}

	err := s.conn.QueryRowContext(ctx, s.dialect.bind(
		`INSERT INTO waitlist (full_name, email, blog_type, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`),
		entry.FullName, entry.Email, entry.BlogType, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return model.WaitlistEntry{}, s.translate("adding to waitlist", err, func(target string) error {
			if target == "waitlist.email" {
				return apperror.DuplicateWaitlistEmail(draft.Email)
			}
			return nil
		})
	}
	return entry, nil
}
