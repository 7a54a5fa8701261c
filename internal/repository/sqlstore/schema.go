package sqlstore

// The two schemas describe the same tables. They differ only in the column
// types each engine wants: INTEGER PRIMARY KEY (a rowid alias) versus
// BIGSERIAL, DATETIME versus TIMESTAMPTZ, TEXT versus JSONB.
//
// Unique indexes carry explicit names because Postgres reports violations by
// constraint name (see postgresTargets). Every statement is idempotent, so
// migrate can run on each start.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        INTEGER PRIMARY KEY,
		username  TEXT NOT NULL,
		password  TEXT NOT NULL,
		email     TEXT NOT NULL,
		full_name TEXT,
		avatar    TEXT,
		bio       TEXT,
		is_admin  BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users(username)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users(email)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		slug        TEXT NOT NULL,
		description TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS categories_slug_key ON categories(slug)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS tags_slug_key ON tags(slug)`,

	`CREATE TABLE IF NOT EXISTS posts (
		id              INTEGER PRIMARY KEY,
		title           TEXT NOT NULL,
		slug            TEXT NOT NULL,
		excerpt         TEXT NOT NULL,
		content         TEXT NOT NULL,
		cover_image     TEXT,
		author_id       INTEGER NOT NULL REFERENCES users(id),
		category_id     INTEGER NOT NULL REFERENCES categories(id),
		published_at    DATETIME,
		is_featured     BOOLEAN NOT NULL DEFAULT 0,
		views           INTEGER NOT NULL DEFAULT 0,
		seo_title       TEXT,
		seo_description TEXT,
		meta_tags       TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS posts_slug_key ON posts(slug)`,
	`CREATE INDEX IF NOT EXISTS posts_published_at_idx ON posts(published_at)`,
	`CREATE INDEX IF NOT EXISTS posts_category_id_idx ON posts(category_id)`,

	`CREATE TABLE IF NOT EXISTS post_tags (
		id      INTEGER PRIMARY KEY,
		post_id INTEGER NOT NULL REFERENCES posts(id),
		tag_id  INTEGER NOT NULL REFERENCES tags(id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS post_tags_post_id_tag_id_key ON post_tags(post_id, tag_id)`,
	`CREATE INDEX IF NOT EXISTS post_tags_tag_id_idx ON post_tags(tag_id)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         INTEGER PRIMARY KEY,
		content    TEXT NOT NULL,
		author_id  INTEGER NOT NULL REFERENCES users(id),
		post_id    INTEGER NOT NULL REFERENCES posts(id),
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments(post_id)`,

	`CREATE TABLE IF NOT EXISTS waitlist (
		id         INTEGER PRIMARY KEY,
		full_name  TEXT NOT NULL,
		email      TEXT NOT NULL,
		blog_type  TEXT,
		created_at DATETIME NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS waitlist_email_key ON waitlist(email)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        BIGSERIAL PRIMARY KEY,
		username  TEXT NOT NULL,
		password  TEXT NOT NULL,
		email     TEXT NOT NULL,
		full_name TEXT,
		avatar    TEXT,
		bio       TEXT,
		is_admin  BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users(username)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users(email)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		slug        TEXT NOT NULL,
		description TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS categories_slug_key ON categories(slug)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS tags_slug_key ON tags(slug)`,

	`CREATE TABLE IF NOT EXISTS posts (
		id              BIGSERIAL PRIMARY KEY,
		title           TEXT NOT NULL,
		slug            TEXT NOT NULL,
		excerpt         TEXT NOT NULL,
		content         TEXT NOT NULL,
		cover_image     TEXT,
		author_id       BIGINT NOT NULL REFERENCES users(id),
		category_id     BIGINT NOT NULL REFERENCES categories(id),
		published_at    TIMESTAMPTZ,
		is_featured     BOOLEAN NOT NULL DEFAULT FALSE,
		views           BIGINT NOT NULL DEFAULT 0,
		seo_title       TEXT,
		seo_description TEXT,
		meta_tags       JSONB
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS posts_slug_key ON posts(slug)`,
	`CREATE INDEX IF NOT EXISTS posts_published_at_idx ON posts(published_at)`,
	`CREATE INDEX IF NOT EXISTS posts_category_id_idx ON posts(category_id)`,

	`CREATE TABLE IF NOT EXISTS post_tags (
		id      BIGSERIAL PRIMARY KEY,
		post_id BIGINT NOT NULL REFERENCES posts(id),
		tag_id  BIGINT NOT NULL REFERENCES tags(id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS post_tags_post_id_tag_id_key ON post_tags(post_id, tag_id)`,
	`CREATE INDEX IF NOT EXISTS post_tags_tag_id_idx ON post_tags(tag_id)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGSERIAL PRIMARY KEY,
		content    TEXT NOT NULL,
		author_id  BIGINT NOT NULL REFERENCES users(id),
		post_id    BIGINT NOT NULL REFERENCES posts(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments(post_id)`,

	`CREATE TABLE IF NOT EXISTS waitlist (
		id         BIGSERIAL PRIMARY KEY,
		full_name  TEXT NOT NULL,
		email      TEXT NOT NULL,
		blog_type  TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS waitlist_email_key ON waitlist(email)`,
}
