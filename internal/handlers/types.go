package handlers

import (
	"time"

	"github.com/snipurl/snipurl/internal/shortlink"
)

// CreateShortURLRequest is the request body for creating a short URL.
// Field-level validation is deliberately left to the domain so failures map
// to the API's own status codes and messages.
type CreateShortURLRequest struct {
	Body struct {
		URL       string            `doc:"The URL to shorten"                      example:"https://example.com/very/long/path" json:"url,omitempty"`
		Validity  shortlink.Minutes `doc:"Validity in minutes (default 30)"        json:"validity,omitempty"`
		Shortcode string            `doc:"Optional custom shortcode (4-20 chars)"  example:"docs2024"                           json:"shortcode,omitempty"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Body struct {
		ShortLink string    `doc:"The full short URL" example:"http://localhost:3000/abc123" json:"shortLink"`
		Expiry    time.Time `doc:"Expiry timestamp"   json:"expiry"`
	}
}

// StatsRequest is the request for per-shortcode statistics.
type StatsRequest struct {
	Shortcode string `doc:"The shortcode" example:"abc123" path:"shortcode"`
}

// ClickRecord is one redirect event in a stats response.
type ClickRecord struct {
	Timestamp time.Time `doc:"When the redirect happened"          json:"timestamp"`
	Referrer  string    `doc:"Referer header value, or \"Direct\"" json:"referrer"`
	Geo       string    `doc:"Coarse geography indicator"          json:"geo"`
}

// StatsResponse is the response for per-shortcode statistics.
type StatsResponse struct {
	Body struct {
		TotalClicks  int           `doc:"Number of recorded clicks" json:"totalClicks"`
		OriginalURL  string        `doc:"The original URL"          json:"originalUrl"`
		CreationDate time.Time     `doc:"Creation timestamp"        json:"creationDate"`
		ExpiryDate   time.Time     `doc:"Expiry timestamp"          json:"expiryDate"`
		Clicks       []ClickRecord `doc:"Click history, in order"   json:"clicks"`
	}
}

// ShortURLSummary is one entry in the list-all response.
type ShortURLSummary struct {
	Shortcode    string    `json:"shortcode"`
	OriginalURL  string    `json:"originalUrl"`
	CreationDate time.Time `json:"creationDate"`
	ExpiryDate   time.Time `json:"expiryDate"`
	TotalClicks  int       `json:"totalClicks"`
}

// ListShortURLsResponse is the response listing every short URL, expired
// ones included.
type ListShortURLsResponse struct {
	Body []ShortURLSummary
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Shortcode string `doc:"The shortcode" example:"abc123" path:"shortcode"`
}

// RedirectResponse carries the 302 redirect to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
}
