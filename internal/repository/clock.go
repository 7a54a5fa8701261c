package repository

import "time"

// Timestamp converts t into the form every backend stores: UTC, truncated
// to microseconds (the finest precision Postgres keeps). Both backends pass
// every time they persist through here so they report identical values.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Now is Timestamp(time.Now()).
func Now() time.Time {
	return Timestamp(time.Now())
}
