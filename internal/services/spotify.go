// Spotify catalog search.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tokens"
	"golang.org/x/time/rate"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// DefaultSearchLimit matches the page size the search view displays.
const DefaultSearchLimit = 10

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	URI     string          `json:"uri"`
}

type searchTracks struct {
	Items []SpotifyTrack `json:"items"`
	Total int            `json:"total"`
}

type searchResponse struct {
	Tracks searchTracks `json:"tracks"`
}

// TokenSource supplies a credential valid for catalog requests.
// Implemented by auth.Flow, which prefers the delegated token and falls
// back to the anonymous client-credentials one.
type TokenSource interface {
	SearchToken(ctx context.Context) (tokens.Credential, error)
}

// SearchService queries the Spotify catalog.
type SearchService struct {
	source  TokenSource
	client  *http.Client
	limiter *rate.Limiter
}

// NewSearchService creates a catalog search client. Requests are rate
// limited to stay under Spotify's per-client quota while a user types.
func NewSearchService(source TokenSource) *SearchService {
	return &SearchService{
		source:  source,
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

// WithClient swaps the underlying HTTP client. Used by tests.
func (s *SearchService) WithClient(client *http.Client) *SearchService {
	s.client = client
	return s
}

// Search queries the catalog for tracks matching the text. A limit of 0
// uses [DefaultSearchLimit]. Results are flattened into models.CatalogTrack
// with the primary artist and the smallest album image.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]models.CatalogTrack, error) {
	if query == "" {
		return nil, nil
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	cred, err := s.source.SearchToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"q":     {query},
		"type":  {"track"},
		"limit": {strconv.Itoa(limit)},
	}

	endpoint := spotifyBaseURL + "/search?" + params.Encode()

	var resp searchResponse

	if err := doJSON(ctx, s.client, http.MethodGet, endpoint, cred.Value, nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: spotify search: %w", shared.ErrServiceUnavailable, err)
	}

	results := make([]models.CatalogTrack, 0, len(resp.Tracks.Items))
	for _, track := range resp.Tracks.Items {
		results = append(results, flatten(track))
	}

	return results, nil
}

func flatten(track SpotifyTrack) models.CatalogTrack {
	result := models.CatalogTrack{
		ID:    track.ID,
		Title: track.Name,
		Album: track.Album.Name,
		URI:   track.URI,
	}

	if len(track.Artists) > 0 {
		result.Artist = track.Artists[0].Name
	}

	result.Cover = smallestImage(track.Album.Images)

	return result
}

// smallestImage picks the lowest-resolution album art, which is plenty
// for a list row.
func smallestImage(images []SpotifyImage) string {
	if len(images) == 0 {
		return ""
	}

	best := images[0]
	for _, img := range images[1:] {
		if img.Height > 0 && (best.Height == 0 || img.Height < best.Height) {
			best = img
		}
	}

	return best.URL
}
