package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sakif/blogstack/internal/repository"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// timeLayouts are the text forms a timestamp may come back in. modernc
// returns time.Time for columns declared DATETIME, but expressions such as
// RETURNING lists can lose the declared type and arrive as text.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// dbTime scans a nullable timestamp from either driver and normalises it
// with repository.Timestamp.
type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = repository.Timestamp(v), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("sqlstore: cannot scan %T into a timestamp", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = repository.Timestamp(parsed), true
			return nil
		}
	}
	return fmt.Errorf("sqlstore: unrecognised timestamp %q", s)
}

func (t dbTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// metaTags is the JSON column holding a post's meta tags. A nil map is
// stored as NULL so it reads back as nil; an empty map reads back empty.
type metaTags map[string]string

func (m *metaTags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into meta tags", src)
	}

	out := make(map[string]string)
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("sqlstore: decoding meta tags: %w", err)
	}
	*m = out
	return nil
}

// encodeMetaTags returns the column value for tags: nil or a JSON string.
func encodeMetaTags(tags map[string]string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: encoding meta tags: %w", err)
	}
	return string(b), nil
}
