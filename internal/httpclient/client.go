package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
	"github.com/google/go-querystring/query"
)

// maxErrorBody caps how much of a non-2xx body is kept on StatusError.
const maxErrorBody = 512

// StatusError reports a non-2xx response. It unwraps to ErrUpstreamUnavailable.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "http status error"
	}
	if e.Body == "" {
		return fmt.Sprintf("api request failed: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api request failed: status %d, body: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return coreerrors.ErrUpstreamUnavailable }

// Client manages making JSON GET requests to the metadata API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	mu         sync.RWMutex // Protects baseURL
}

// New creates a new internal HTTP client. A nil httpClient uses http.DefaultClient.
func New(baseURL, apiKey, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// SetBaseURL updates the base URL used for requests.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// HasCredential reports whether an API credential was supplied.
func (c *Client) HasCredential() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Get makes a GET request. params may be nil or a struct with `url` tags.
func (c *Client) Get(ctx context.Context, path string, params interface{}, target interface{}) error {
	c.mu.RLock()
	currentBaseURL := c.baseURL
	c.mu.RUnlock()

	if !c.HasCredential() {
		return coreerrors.ErrConfigurationMissing
	}

	fullURL, err := url.Parse(currentBaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid request URL: %w", err)
	}

	values := url.Values{}
	if params != nil {
		v, err := query.Values(params)
		if err != nil {
			return fmt.Errorf("failed to encode query parameters: %w", err)
		}
		values = v
	}

	// v4 read access tokens are JWTs and go in the Authorization header;
	// v3 keys travel as the api_key query parameter.
	bearer := strings.HasPrefix(c.apiKey, "eyJ")
	if !bearer {
		values.Set("api_key", c.apiKey)
	}
	fullURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w: %w", coreerrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w: %w", coreerrors.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return &StatusError{URL: path, StatusCode: resp.StatusCode, Body: snippet}
	}

	if target != nil {
		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w: %w", coreerrors.ErrExtractionFailed, err)
		}
	}

	return nil
}
