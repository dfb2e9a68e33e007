package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all routes and installs the flat error body.
//
// The redirect route is a root-level catch-all, so the static routes must
// win exact matches; chi guarantees that ordering.
func RegisterRoutes(api huma.API, urlHandler *ShortURLHandler, healthHandler *HealthHandler) {
	huma.NewError = newError

	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/shorturls",
		Summary:       "Create short URL",
		Description:   "Creates a shortened URL with an optional custom shortcode and validity.",
		Tags:          []string{"Short URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-short-urls",
		Method:      http.MethodGet,
		Path:        "/shorturls",
		Summary:     "List all short URLs",
		Description: "Returns a summary of every short URL, including expired ones.",
		Tags:        []string{"Short URLs"},
	}, urlHandler.ListShortURLs)

	huma.Register(api, huma.Operation{
		OperationID: "get-short-url-stats",
		Method:      http.MethodGet,
		Path:        "/shorturls/{shortcode}",
		Summary:     "Get short URL statistics",
		Description: "Returns click statistics for one shortcode.",
		Tags:        []string{"Short URLs"},
	}, urlHandler.GetStats)

	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, healthHandler.Check)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-short-url",
		Method:      http.MethodGet,
		Path:        "/{shortcode}",
		Summary:     "Redirect to original URL",
		Description: "Records a click and redirects to the original URL.",
		Tags:        []string{"Short URLs"},
	}, urlHandler.Redirect)
}
