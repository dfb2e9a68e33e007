package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/snipurl/snipurl/internal/audit"
	"github.com/snipurl/snipurl/internal/shortlink"
	"go.uber.org/zap"
)

// ShortURLHandler handles the short URL lifecycle operations.
type ShortURLHandler struct {
	service *shortlink.Service
	baseURL string
	audit   audit.Emitter
	logger  *zap.Logger
}

// NewShortURLHandler creates a handler over the domain service.
func NewShortURLHandler(
	service *shortlink.Service,
	baseURL string,
	emit audit.Emitter,
	logger *zap.Logger,
) *ShortURLHandler {
	return &ShortURLHandler{
		service: service,
		baseURL: baseURL,
		audit:   emit,
		logger:  logger,
	}
}

// CreateShortURL creates a new short URL from a long one.
func (h *ShortURLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	params := shortlink.CreateParams{
		URL:        req.Body.URL,
		Validity:   req.Body.Validity,
		CustomCode: req.Body.Shortcode,
	}

	entry, err := h.service.Create(ctx, params)
	if err != nil {
		h.audit(audit.LevelError, audit.PackageRoute, describeCreateFailure(err, params))

		return nil, mapDomainError(err)
	}

	if params.CustomCode == "" {
		h.audit(audit.LevelInfo, audit.PackageRoute, "Generated unique shortcode: "+entry.Code)
	}

	shortLink := fmt.Sprintf("%s/%s", h.baseURL, entry.Code)

	h.audit(audit.LevelInfo, audit.PackageRoute, fmt.Sprintf(
		"Created short URL: %s for %s, expires at %s",
		shortLink, entry.OriginalURL, entry.ExpiresAt.Format(time.RFC3339),
	))

	resp := &CreateShortURLResponse{}
	resp.Body.ShortLink = shortLink
	resp.Body.Expiry = entry.ExpiresAt

	return resp, nil
}

// GetStats returns statistics for one shortcode, expired or not.
func (h *ShortURLHandler) GetStats(ctx context.Context, req *StatsRequest) (*StatsResponse, error) {
	entry, err := h.service.Stats(ctx, req.Shortcode)
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			h.audit(audit.LevelError, audit.PackageRoute, "Non-existent shortcode for stats: "+req.Shortcode)
		} else {
			h.logger.Error("stats lookup failed",
				zap.String("request_id", RequestMetaFromContext(ctx).RequestID),
				zap.String("shortcode", req.Shortcode),
				zap.Error(err),
			)
		}

		return nil, mapDomainError(err)
	}

	h.audit(audit.LevelInfo, audit.PackageRoute, "Retrieved stats for shortcode: "+req.Shortcode)

	resp := &StatsResponse{}
	resp.Body.TotalClicks = len(entry.Clicks)
	resp.Body.OriginalURL = entry.OriginalURL
	resp.Body.CreationDate = entry.CreatedAt
	resp.Body.ExpiryDate = entry.ExpiresAt
	resp.Body.Clicks = clickRecords(entry.Clicks)

	return resp, nil
}

// ListShortURLs returns a summary of every short URL, expired ones included.
func (h *ShortURLHandler) ListShortURLs(ctx context.Context, _ *struct{}) (*ListShortURLsResponse, error) {
	entries, err := h.service.List(ctx)
	if err != nil {
		return nil, mapDomainError(err)
	}

	h.audit(audit.LevelInfo, audit.PackageRoute, "Retrieved all short URLs")

	summaries := make([]ShortURLSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, ShortURLSummary{
			Shortcode:    entry.Code,
			OriginalURL:  entry.OriginalURL,
			CreationDate: entry.CreatedAt,
			ExpiryDate:   entry.ExpiresAt,
			TotalClicks:  len(entry.Clicks),
		})
	}

	return &ListShortURLsResponse{Body: summaries}, nil
}

// Redirect records a click and redirects to the original URL.
func (h *ShortURLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	meta := RequestMetaFromContext(ctx)

	entry, err := h.service.Resolve(ctx, req.Shortcode, meta.Referrer)
	if err != nil {
		switch {
		case errors.Is(err, shortlink.ErrExpired):
			h.audit(audit.LevelWarn, audit.PackageRoute, "Expired shortcode accessed: "+req.Shortcode)
		case errors.Is(err, shortlink.ErrNotFound):
			h.audit(audit.LevelError, audit.PackageRoute, "Non-existent shortcode accessed: "+req.Shortcode)
		default:
			h.logger.Error("redirect failed",
				zap.String("request_id", meta.RequestID),
				zap.String("shortcode", req.Shortcode),
				zap.Error(err),
			)
		}

		return nil, mapDomainError(err)
	}

	h.audit(audit.LevelInfo, audit.PackageRoute, "Click recorded for "+req.Shortcode)

	resp := &RedirectResponse{
		Status:   http.StatusFound,
		Location: entry.OriginalURL,
	}

	return resp, nil
}

func clickRecords(clicks []shortlink.Click) []ClickRecord {
	records := make([]ClickRecord, 0, len(clicks))

	for _, click := range clicks {
		records = append(records, ClickRecord{
			Timestamp: click.Timestamp,
			Referrer:  click.Referrer,
			Geo:       click.Geo,
		})
	}

	return records
}

func describeCreateFailure(err error, params shortlink.CreateParams) string {
	switch {
	case errors.Is(err, shortlink.ErrMissingURL):
		return "Missing required field: url"
	case errors.Is(err, shortlink.ErrInvalidURL):
		return "Invalid URL format: " + params.URL
	case errors.Is(err, shortlink.ErrInvalidValidity):
		return "Invalid validity (must be positive integer)"
	case errors.Is(err, shortlink.ErrInvalidCode):
		return "Invalid custom shortcode: " + params.CustomCode
	case errors.Is(err, shortlink.ErrCodeInUse):
		return "Shortcode already in use: " + params.CustomCode
	default:
		return "Failed to create short URL: " + err.Error()
	}
}
