package sqlstore

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// violation classifies a constraint failure reported by the driver.
type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
)

// dialect holds everything that differs between the two SQL backends.
// Queries are written once with ? placeholders; bind rewrites them for
// drivers that number their parameters.
//
// Constraint targets are reported as "table.column" so the rest of the
// package never sees driver-specific constraint naming.
type dialect struct {
	name       string
	driverName string
	schema     []string
	setup      []string // per-connection statements run right after Open
	numbered   bool     // $1, $2 ... instead of ?
	// openEnded is the LIMIT value meaning "no limit" when only an OFFSET is
	// wanted. Empty means the dialect accepts OFFSET without LIMIT.
	openEnded string
	configure func(*sql.DB)
	classify  func(error) (violation, string)
}

var dialects = map[string]dialect{
	DriverSQLite:   sqliteDialect,
	DriverPostgres: postgresDialect,
}

var sqliteDialect = dialect{
	name:       DriverSQLite,
	driverName: "sqlite",
	schema:     sqliteSchema,
	setup: []string{
		// WAL lets readers proceed while a write is in flight.
		"PRAGMA journal_mode=WAL",
		// Foreign keys are OFF by default in SQLite.
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	},
	openEnded: "-1",
	// SINGLE CONNECTION:
	// PRAGMAs apply per connection and every connection to ":memory:" is a
	// separate, empty database. Pinning the pool to one connection keeps
	// both consistent. SQLite serialises writers anyway, so the only cost
	// is that reads queue behind each other.
	configure: func(db *sql.DB) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	},
	classify: classifySQLite,
}

var postgresDialect = dialect{
	name:       DriverPostgres,
	driverName: "pgx",
	schema:     postgresSchema,
	numbered:   true,
	configure: func(db *sql.DB) {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	},
	classify: classifyPostgres,
}

// bind rewrites ? placeholders into the dialect's form.
func (d dialect) bind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// limit renders the pagination clause for opts and appends its arguments.
func (d dialect) limit(limit, offset int, args []any) (string, []any) {
	switch {
	case limit > 0:
		return " LIMIT ? OFFSET ?", append(args, limit, offset)
	case offset > 0 && d.openEnded != "":
		return " LIMIT " + d.openEnded + " OFFSET ?", append(args, offset)
	case offset > 0:
		return " OFFSET ?", append(args, offset)
	default:
		return "", args
	}
}

// classifySQLite decodes modernc's extended result codes. SQLite names the
// offending columns only in the message text, e.g.
//
//	UNIQUE constraint failed: users.username (2067)
func classifySQLite(err error) (violation, string) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return noViolation, ""
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return uniqueViolation, sqliteTarget(se.Error())
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		// SQLite does not say which foreign key failed.
		return foreignKeyViolation, ""
	}
	return noViolation, ""
}

// sqliteTarget extracts the first "table.column" after "failed: ".
func sqliteTarget(msg string) string {
	i := strings.LastIndex(msg, "failed: ")
	if i < 0 {
		return ""
	}
	rest := msg[i+len("failed: "):]
	if j := strings.IndexAny(rest, ",("); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// postgresTargets maps constraint names from the schema onto targets.
var postgresTargets = map[string]string{
	"users_username_key":           "users.username",
	"users_email_key":              "users.email",
	"categories_slug_key":          "categories.slug",
	"tags_slug_key":                "tags.slug",
	"posts_slug_key":               "posts.slug",
	"post_tags_post_id_tag_id_key": "post_tags.post_id",
	"waitlist_email_key":           "waitlist.email",
	"posts_author_id_fkey":         "posts.author_id",
	"posts_category_id_fkey":       "posts.category_id",
	"post_tags_post_id_fkey":       "post_tags.post_id",
	"post_tags_tag_id_fkey":        "post_tags.tag_id",
	"comments_author_id_fkey":      "comments.author_id",
	"comments_post_id_fkey":        "comments.post_id",
}

// classifyPostgres decodes SQLSTATE codes 23505 (unique_violation) and
// 23503 (foreign_key_violation).
func classifyPostgres(err error) (violation, string) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return noViolation, ""
	}
	switch pgErr.Code {
	case "23505":
		return uniqueViolation, postgresTargets[pgErr.ConstraintName]
	case "23503":
		return foreignKeyViolation, postgresTargets[pgErr.ConstraintName]
	}
	return noViolation, ""
}
