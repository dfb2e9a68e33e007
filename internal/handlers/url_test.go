package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snipurl/snipurl/internal/audit"
	"github.com/snipurl/snipurl/internal/handlers"
	"github.com/snipurl/snipurl/internal/shortlink"
	"github.com/snipurl/snipurl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBaseURL = "http://localhost:3000"

func newTestHandler(t *testing.T, repo shortlink.Repository) *handlers.ShortURLHandler {
	t.Helper()

	generate, err := shortlink.NewCodeGenerator(6)
	require.NoError(t, err)

	service := shortlink.NewService(repo, generate, "US", nil)

	return handlers.NewShortURLHandler(service, testBaseURL, audit.NopEmitter(), zap.NewNop())
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, status, statusErr.GetStatus())
}

func TestCreateShortURL(t *testing.T) {
	t.Run("creates a short url with a generated code", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL

		resp, err := handler.CreateShortURL(context.Background(), req)

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(resp.Body.ShortLink, testBaseURL+"/"))

		code := strings.TrimPrefix(resp.Body.ShortLink, testBaseURL+"/")
		assert.Len(t, code, 6)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), resp.Body.Expiry, 5*time.Second)
	})

	t.Run("honors a custom shortcode and validity", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL
		req.Body.Validity = shortlink.ValidityMinutes(10)
		req.Body.Shortcode = "abcd1234"

		resp, err := handler.CreateShortURL(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, testBaseURL+"/abcd1234", resp.Body.ShortLink)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), resp.Body.Expiry, 5*time.Second)
	})

	t.Run("returns 400 with the exact message for a missing url", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		resp, err := handler.CreateShortURL(context.Background(), &handlers.CreateShortURLRequest{})

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "Missing required field: url", err.Error())
	})

	t.Run("returns 400 for a malformed url", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = "not-a-url"

		_, err := handler.CreateShortURL(context.Background(), req)

		assertStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "Invalid URL format", err.Error())
	})

	t.Run("returns 400 for an invalid validity", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL
		req.Body.Validity = shortlink.ValidityMinutes(0)

		_, err := handler.CreateShortURL(context.Background(), req)

		assertStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "Validity must be a positive integer", err.Error())
	})

	t.Run("returns 400 for a too-short shortcode", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL
		req.Body.Shortcode = "ab"

		_, err := handler.CreateShortURL(context.Background(), req)

		assertStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "Shortcode must be alphanumeric and 4-20 characters long", err.Error())
	})

	t.Run("returns 409 for a duplicate shortcode", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL
		req.Body.Shortcode = "abcd1234"

		_, err := handler.CreateShortURL(context.Background(), req)
		require.NoError(t, err)

		_, err = handler.CreateShortURL(context.Background(), req)
		assertStatus(t, err, http.StatusConflict)
		assert.Equal(t, "Shortcode already in use", err.Error())
	})

	t.Run("returns 500 on a store failure", func(t *testing.T) {
		handler := newTestHandler(t, &mockStore{createErr: errMock})

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL
		req.Body.Shortcode = "abcd1234"

		_, err := handler.CreateShortURL(context.Background(), req)

		assertStatus(t, err, http.StatusInternalServerError)
	})

	t.Run("emits audit events on success", func(t *testing.T) {
		recorder := &recordingEmitter{}

		generate, err := shortlink.NewCodeGenerator(6)
		require.NoError(t, err)

		service := shortlink.NewService(store.NewMemoryStore(), generate, "US", nil)
		handler := handlers.NewShortURLHandler(service, testBaseURL, recorder.emit, zap.NewNop())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL

		_, err = handler.CreateShortURL(context.Background(), req)

		require.NoError(t, err)
		require.Len(t, recorder.messages, 2)
		assert.Contains(t, recorder.messages[0], "Generated unique shortcode")
		assert.Contains(t, recorder.messages[1], "Created short URL")
	})
}

func TestGetStats(t *testing.T) {
	t.Run("returns stats for an existing code", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(t, memStore)

		createReq := &handlers.CreateShortURLRequest{}
		createReq.Body.URL = testURL
		createReq.Body.Shortcode = "abcd1234"

		_, err := handler.CreateShortURL(context.Background(), createReq)
		require.NoError(t, err)

		resp, err := handler.GetStats(context.Background(), &handlers.StatsRequest{Shortcode: "abcd1234"})

		require.NoError(t, err)
		assert.Equal(t, 0, resp.Body.TotalClicks)
		assert.Equal(t, testURL, resp.Body.OriginalURL)
		assert.NotNil(t, resp.Body.Clicks)
		assert.Empty(t, resp.Body.Clicks)
	})

	t.Run("counts clicks recorded by redirects", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(t, memStore)

		createReq := &handlers.CreateShortURLRequest{}
		createReq.Body.URL = testURL
		createReq.Body.Shortcode = "abcd1234"

		_, err := handler.CreateShortURL(context.Background(), createReq)
		require.NoError(t, err)

		_, err = handler.Redirect(context.Background(), &handlers.RedirectRequest{Shortcode: "abcd1234"})
		require.NoError(t, err)

		resp, err := handler.GetStats(context.Background(), &handlers.StatsRequest{Shortcode: "abcd1234"})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Body.TotalClicks)
		require.Len(t, resp.Body.Clicks, 1)
		assert.Equal(t, shortlink.DirectReferrer, resp.Body.Clicks[0].Referrer)
		assert.Equal(t, "US", resp.Body.Clicks[0].Geo)
	})

	t.Run("returns 404 for an unknown code", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		_, err := handler.GetStats(context.Background(), &handlers.StatsRequest{Shortcode: "missing1"})

		assertStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "Shortcode not found", err.Error())
	})

	t.Run("audits a missing shortcode", func(t *testing.T) {
		recorder := &recordingEmitter{}

		generate, err := shortlink.NewCodeGenerator(6)
		require.NoError(t, err)

		service := shortlink.NewService(store.NewMemoryStore(), generate, "US", nil)
		handler := handlers.NewShortURLHandler(service, testBaseURL, recorder.emit, zap.NewNop())

		_, err = handler.GetStats(context.Background(), &handlers.StatsRequest{Shortcode: "missing1"})

		assertStatus(t, err, http.StatusNotFound)
		require.Len(t, recorder.messages, 1)
		assert.Contains(t, recorder.messages[0], "Non-existent shortcode for stats: missing1")
	})

	t.Run("does not mislabel a store failure as a missing shortcode", func(t *testing.T) {
		recorder := &recordingEmitter{}

		generate, err := shortlink.NewCodeGenerator(6)
		require.NoError(t, err)

		service := shortlink.NewService(&mockStore{getErr: errMock}, generate, "US", nil)
		handler := handlers.NewShortURLHandler(service, testBaseURL, recorder.emit, zap.NewNop())

		_, err = handler.GetStats(context.Background(), &handlers.StatsRequest{Shortcode: "abcd1234"})

		assertStatus(t, err, http.StatusInternalServerError)
		assert.Empty(t, recorder.messages)
	})
}

func TestListShortURLs(t *testing.T) {
	t.Run("returns summaries for every entry", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		for _, code := range []string{"abcd1234", "wxyz5678"} {
			req := &handlers.CreateShortURLRequest{}
			req.Body.URL = testURL
			req.Body.Shortcode = code

			_, err := handler.CreateShortURL(context.Background(), req)
			require.NoError(t, err)
		}

		resp, err := handler.ListShortURLs(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, resp.Body, 2)
	})

	t.Run("returns an empty list for an empty store", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		resp, err := handler.ListShortURLs(context.Background(), nil)

		require.NoError(t, err)
		assert.NotNil(t, resp.Body)
		assert.Empty(t, resp.Body)
	})
}

func TestRedirect(t *testing.T) {
	create := func(t *testing.T, handler *handlers.ShortURLHandler, code string) {
		t.Helper()

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = testURL
		req.Body.Shortcode = code

		_, err := handler.CreateShortURL(context.Background(), req)
		require.NoError(t, err)
	}

	t.Run("redirects with 302 to the original url", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())
		create(t, handler, "abcd1234")

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Shortcode: "abcd1234"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, testURL, resp.Location)
	})

	t.Run("records the referrer from request metadata", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(t, memStore)
		create(t, handler, "abcd1234")

		ctx := handlers.ContextWithRequestMeta(context.Background(), handlers.RequestMeta{
			Referrer: "https://referrer.example",
		})

		_, err := handler.Redirect(ctx, &handlers.RedirectRequest{Shortcode: "abcd1234"})
		require.NoError(t, err)

		entry, err := memStore.Get(context.Background(), "abcd1234")
		require.NoError(t, err)
		require.Len(t, entry.Clicks, 1)
		assert.Equal(t, "https://referrer.example", entry.Clicks[0].Referrer)
	})

	t.Run("returns 404 for an unknown code", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		_, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Shortcode: "missing1"})

		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("returns 410 for an expired code without recording a click", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		current := &clock

		generate, err := shortlink.NewCodeGenerator(6)
		require.NoError(t, err)

		service := shortlink.NewService(memStore, generate, "US", func() time.Time { return *current })
		handler := handlers.NewShortURLHandler(service, testBaseURL, audit.NopEmitter(), zap.NewNop())

		createReq := &handlers.CreateShortURLRequest{}
		createReq.Body.URL = testURL
		createReq.Body.Shortcode = "abcd1234"
		createReq.Body.Validity = shortlink.ValidityMinutes(10)

		_, err = handler.CreateShortURL(context.Background(), createReq)
		require.NoError(t, err)

		expired := clock.Add(10*time.Minute + time.Second)
		current = &expired

		_, err = handler.Redirect(context.Background(), &handlers.RedirectRequest{Shortcode: "abcd1234"})

		assertStatus(t, err, http.StatusGone)
		assert.Equal(t, "Link has expired", err.Error())

		entry, err := memStore.Get(context.Background(), "abcd1234")
		require.NoError(t, err)
		assert.Empty(t, entry.Clicks)
	})
}
