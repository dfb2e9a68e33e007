package shortlink

import "time"

// Entry represents one shortened link and its recorded click history.
type Entry struct {
	Code        string
	OriginalURL string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Clicks      []Click
}

// Click represents one redirect event on an entry.
type Click struct {
	Timestamp time.Time `json:"timestamp"`
	Referrer  string    `json:"referrer"`
	Geo       string    `json:"geo"`
}

// Expired reports whether the entry's redirect capability has lapsed at the
// given instant. Expiry is strict: a redirect exactly at ExpiresAt still works.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
