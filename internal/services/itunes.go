// iTunes Search API implementation of [Provider]
//
// Response types based on https://performance-partners.apple.com/search-api
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nexusaudio/nexus/internal/shared"
)

const itunesBaseURL = "https://itunes.apple.com"

// defaultSearchLimit is used when the caller passes a non-positive limit.
const defaultSearchLimit = 25

// ITunesResult represents a single track entry in a search response.
type ITunesResult struct {
	TrackID          int64   `json:"trackId"`
	TrackName        string  `json:"trackName"`
	ArtistName       string  `json:"artistName"`
	CollectionName   string  `json:"collectionName"`
	TrackTimeMillis  int     `json:"trackTimeMillis"`
	PreviewURL       string  `json:"previewUrl"`
	ArtworkURL100    string  `json:"artworkUrl100"`
	ReleaseDate      string  `json:"releaseDate"`
	Kind             string  `json:"kind"`
	TrackPrice       float64 `json:"trackPrice"`
	Country          string  `json:"country"`
	PrimaryGenreName string  `json:"primaryGenreName"`
}

// ITunesSearchResponse represents the envelope of a search response.
type ITunesSearchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []ITunesResult `json:"results"`
}

// ITunesService implements the Provider interface for the iTunes Search API.
// The API requires no authentication.
type ITunesService struct {
	baseURL    string
	httpClient *http.Client
}

// NewITunesService creates a new iTunes provider. An empty baseURL selects the
// public API endpoint; tests point it at a local server.
func NewITunesService(baseURL string, client *http.Client) *ITunesService {
	if baseURL == "" {
		baseURL = itunesBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ITunesService{baseURL: baseURL, httpClient: client}
}

func (s *ITunesService) Name() string {
	return "iTunes"
}

// doRequest performs an HTTP GET against the iTunes API and decodes the JSON
// response into result.
func (s *ITunesService) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search performs a raw track search and returns the decoded envelope.
func (s *ITunesService) Search(ctx context.Context, term string, limit int) (*ITunesSearchResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term is required", shared.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query := url.Values{}
	query.Set("term", term)
	query.Set("media", "music")
	query.Set("entity", "song")
	query.Set("limit", strconv.Itoa(limit))

	var response ITunesSearchResponse
	if err := s.doRequest(ctx, "/search?"+query.Encode(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// Provider interface implementation

// SearchTracks searches the iTunes catalog and maps results to
// [CatalogTrack]. Entries without a track id or title are dropped.
func (s *ITunesService) SearchTracks(ctx context.Context, term string, limit int) ([]CatalogTrack, error) {
	response, err := s.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}

	tracks := make([]CatalogTrack, 0, len(response.Results))
	for _, result := range response.Results {
		if result.TrackID == 0 || result.TrackName == "" {
			continue
		}

		tracks = append(tracks, CatalogTrack{
			ExternalID:      result.TrackID,
			Title:           result.TrackName,
			Artist:          result.ArtistName,
			DurationSec:     result.TrackTimeMillis / 1000,
			PreviewURL:      result.PreviewURL,
			ArtworkURLSmall: result.ArtworkURL100,
			ArtworkURLLarge: upscaleArtworkURL(result.ArtworkURL100),
			CollectionName:  result.CollectionName,
			ReleaseDate:     result.ReleaseDate,
		})
	}

	return tracks, nil
}

// upscaleArtworkURL derives a 600x600 artwork URL from the 100x100 variant the
// search API returns. Apple's image CDN serves any requested size by path
// substitution.
func upscaleArtworkURL(artworkURL100 string) string {
	if artworkURL100 == "" {
		return ""
	}
	return strings.Replace(artworkURL100, "100x100", "600x600", 1)
}
