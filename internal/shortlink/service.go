package shortlink

import (
	"context"
	"errors"
	"time"
)

// DirectReferrer is recorded when a redirect carries no Referer header.
const DirectReferrer = "Direct"

// CreateParams carries the validated-on-demand inputs of a create request.
type CreateParams struct {
	URL        string
	Validity   Minutes
	CustomCode string
}

// Service implements the short link lifecycle on top of a Repository.
type Service struct {
	store    Repository
	generate CodeGenerator
	geo      string
	now      func() time.Time
}

// NewService creates a service. A nil now defaults to time.Now.
func NewService(store Repository, generate CodeGenerator, geo string, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		store:    store,
		generate: generate,
		geo:      geo,
		now:      now,
	}
}

// Create validates params, resolves or generates a shortcode, and inserts a
// new entry with an empty click history.
//
// Validation order matches the API contract: missing url, malformed url,
// validity, then shortcode.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if params.URL == "" {
		return nil, ErrMissingURL
	}

	if !IsValidURL(params.URL) {
		return nil, ErrInvalidURL
	}

	minutes, err := params.Validity.Resolve()
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()

	entry := &Entry{
		OriginalURL: params.URL,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(time.Duration(minutes) * time.Minute),
		Clicks:      nil,
	}

	if params.CustomCode != "" {
		if !IsValidCode(params.CustomCode) {
			return nil, ErrInvalidCode
		}

		entry.Code = params.CustomCode

		if err := s.store.Create(ctx, entry); err != nil {
			return nil, err
		}

		return entry, nil
	}

	// Generated codes: retry until the store accepts one. Create is the
	// collision check, so concurrent creators cannot race past it. The key
	// space makes repeated collisions vanishingly unlikely, but there is no
	// retry cap.
	for {
		entry.Code = s.generate()

		err := s.store.Create(ctx, entry)
		if err == nil {
			return entry, nil
		}

		if !errors.Is(err, ErrCodeInUse) {
			return nil, err
		}
	}
}

// Stats returns a snapshot of the entry for a code, expired or not.
func (s *Service) Stats(ctx context.Context, code string) (*Entry, error) {
	return s.store.Get(ctx, code)
}

// List returns a snapshot of every entry, including expired ones.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.store.List(ctx)
}

// Resolve looks up the target of a redirect and records the click. An
// expired entry yields ErrExpired and records nothing. The referrer falls
// back to DirectReferrer when empty.
func (s *Service) Resolve(ctx context.Context, code, referrer string) (*Entry, error) {
	entry, err := s.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if entry.Expired(now) {
		return nil, ErrExpired
	}

	if referrer == "" {
		referrer = DirectReferrer
	}

	click := Click{
		Timestamp: now,
		Referrer:  referrer,
		Geo:       s.geo,
	}

	if err := s.store.AppendClick(ctx, code, click); err != nil {
		return nil, err
	}

	return entry, nil
}
