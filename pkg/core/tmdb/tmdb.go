package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/angelospk/streailer/internal/constants"
	"github.com/angelospk/streailer/internal/httpclient"
	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
)

// baseURL is a variable to allow modification during tests.
var baseURL = constants.DefaultTMDBBaseURL

// SetBaseURLForTesting allows tests to temporarily override the API base URL
// used by clients created without an explicit BaseURL.
// It returns the original URL so it can be restored.
func SetBaseURLForTesting(newURL string) string {
	oldURL := baseURL
	baseURL = newURL
	return oldURL
}

// MediaType is the TMDB path segment for a title kind.
type MediaType string

const (
	Movie MediaType = "movie"
	TV    MediaType = "tv"
)

// FallbackCountry is the watch-provider catalog retried when the requested
// country has no subscription offer.
const FallbackCountry = "US"

// providerNames overrides TMDB provider names with the names people search for.
var providerNames = map[int]string{
	8:    "Netflix",
	119:  "Prime Video",
	9:    "Prime Video",
	337:  "Disney Plus",
	384:  "HBO Max",
	1899: "Max",
	15:   "Hulu",
	350:  "Apple TV",
	531:  "Paramount Plus",
	283:  "Crunchyroll",
	2:    "Apple TV",
	3:    "Google Play",
	10:   "Amazon Video",
}

// --- Structs to decode TMDB API JSON responses ---

// Video mirrors an entry of a TMDB videos listing.
type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"` // Platform video id
	Name        string `json:"name"`
	Site        string `json:"site"` // e.g. "YouTube", "Vimeo"
	Type        string `json:"type"` // e.g. "Trailer", "Teaser", "Clip", "Featurette"
	Official    bool   `json:"official"`
	Size        int    `json:"size,omitempty"`
	Language    string `json:"iso_639_1,omitempty"`
	Country     string `json:"iso_3166_1,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

type videosResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

type findItem struct {
	ID    int    `json:"id"`
	Title string `json:"title,omitempty"` // Movies
	Name  string `json:"name,omitempty"`  // TV
}

type findResponse struct {
	MovieResults []findItem `json:"movie_results"`
	TVResults    []findItem `json:"tv_results"`
}

type detailsResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title,omitempty"`
	Name  string `json:"name,omitempty"`
}

type watchProvider struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	DisplayPriority int    `json:"display_priority"`
}

type watchCountry struct {
	Link     string          `json:"link,omitempty"`
	Flatrate []watchProvider `json:"flatrate,omitempty"`
	Rent     []watchProvider `json:"rent,omitempty"`
	Buy      []watchProvider `json:"buy,omitempty"`
}

type watchProvidersResponse struct {
	ID      int                     `json:"id"`
	Results map[string]watchCountry `json:"results"`
}

type languageParams struct {
	Language string `url:"language,omitempty"`
}

type findParams struct {
	ExternalSource string `url:"external_source"`
	Language       string `url:"language,omitempty"`
}

// CrossRef is the canonical id and localized title for an external id.
type CrossRef struct {
	ID    int
	Title string
}

// --- Client Implementation ---

// Config holds the configuration for the TMDB client.
type Config struct {
	APIKey     string       // v3 key or v4 read access token
	BaseURL    string       // Optional, defaults to the public API
	UserAgent  string       // Optional, defaults to constants.DefaultUserAgent
	HTTPClient *http.Client // Optional, defaults to a client with a 15s timeout
}

// Client handles communication with the TMDB API.
type Client struct {
	http *httpclient.Client
}

// NewClient creates a new TMDB API client. A missing API key is not an error:
// Available reports false and every call fails with ErrConfigurationMissing.
func NewClient(cfg Config) (*Client, error) {
	apiURL := cfg.BaseURL
	if apiURL == "" {
		apiURL = baseURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid TMDB base URL %q", apiURL)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		http: httpclient.New(apiURL, strings.TrimSpace(cfg.APIKey), userAgent, httpClient),
	}, nil
}

// Available reports whether a credential is configured.
func (c *Client) Available() bool {
	return c != nil && c.http.HasCredential()
}

// Ping checks the credential against the configuration endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.http.Get(ctx, "/configuration", nil, nil); err != nil {
		return fmt.Errorf("tmdb ping failed: %w", err)
	}
	return nil
}

// --- API Call Methods ---

// CrossReference resolves an IMDb id to the TMDB id and a title localized per lang.
// Returns ErrUpstreamEmpty when TMDB knows no title of that kind for the id.
func (c *Client) CrossReference(ctx context.Context, imdbID string, mediaType MediaType, lang string) (*CrossRef, error) {
	if strings.TrimSpace(imdbID) == "" {
		return nil, fmt.Errorf("empty external id: %w", coreerrors.ErrUpstreamEmpty)
	}

	var resp findResponse
	path := "/find/" + url.PathEscape(imdbID)
	if err := c.http.Get(ctx, path, findParams{ExternalSource: "imdb_id", Language: lang}, &resp); err != nil {
		return nil, fmt.Errorf("tmdb find %s: %w", imdbID, err)
	}

	results := resp.MovieResults
	if mediaType == TV {
		results = resp.TVResults
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("tmdb find %s: no %s results: %w", imdbID, mediaType, coreerrors.ErrUpstreamEmpty)
	}

	item := results[0]
	title := item.Title
	if title == "" {
		title = item.Name
	}
	return &CrossRef{ID: item.ID, Title: title}, nil
}

// ListVideos lists the videos for a title. For TV with season > 0 the
// season-scoped listing is queried; the series-level retry is the caller's
// decision. An empty listing is returned as an empty slice with no error.
func (c *Client) ListVideos(ctx context.Context, id int, mediaType MediaType, lang string, season int) ([]Video, error) {
	var path string
	if mediaType == TV && season > 0 {
		path = fmt.Sprintf("/tv/%d/season/%d/videos", id, season)
	} else {
		path = fmt.Sprintf("/%s/%d/videos", mediaType, id)
	}

	var resp videosResponse
	if err := c.http.Get(ctx, path, languageParams{Language: lang}, &resp); err != nil {
		return nil, fmt.Errorf("tmdb videos %s: %w", path, err)
	}
	if resp.Results == nil {
		return []Video{}, nil
	}
	return resp.Results, nil
}

// FetchTitle returns the localized title (movies) or name (TV) for id.
func (c *Client) FetchTitle(ctx context.Context, id int, mediaType MediaType, lang string) (string, error) {
	var resp detailsResponse
	path := fmt.Sprintf("/%s/%d", mediaType, id)
	if err := c.http.Get(ctx, path, languageParams{Language: lang}, &resp); err != nil {
		return "", fmt.Errorf("tmdb details %s: %w", path, err)
	}

	title := resp.Title
	if title == "" {
		title = resp.Name
	}
	if title == "" {
		return "", fmt.Errorf("tmdb details %s: empty title: %w", path, coreerrors.ErrUpstreamEmpty)
	}
	return title, nil
}

// WatchProvider returns the display name of the first subscription provider
// for a series in country, retrying the US catalog once when country has none.
func (c *Client) WatchProvider(ctx context.Context, id int, country string) (string, error) {
	var resp watchProvidersResponse
	path := fmt.Sprintf("/tv/%d/watch/providers", id)
	if err := c.http.Get(ctx, path, nil, &resp); err != nil {
		return "", fmt.Errorf("tmdb watch providers %d: %w", id, err)
	}

	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		country = FallbackCountry
	}
	if name, ok := firstFlatrate(resp.Results, country); ok {
		return name, nil
	}
	if country != FallbackCountry {
		if name, ok := firstFlatrate(resp.Results, FallbackCountry); ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("tmdb watch providers %d: no flatrate offer in %s: %w", id, country, coreerrors.ErrUpstreamEmpty)
}

func firstFlatrate(results map[string]watchCountry, country string) (string, bool) {
	entry, ok := results[country]
	if !ok || len(entry.Flatrate) == 0 {
		return "", false
	}
	return ProviderName(entry.Flatrate[0].ProviderID, entry.Flatrate[0].ProviderName), true
}

// ProviderName returns the override for id, else raw.
func ProviderName(id int, raw string) string {
	if name, ok := providerNames[id]; ok {
		return name
	}
	return raw
}

// IsStatus reports whether err carries an HTTP status of code.
func IsStatus(err error, code int) bool {
	var statusErr *httpclient.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
