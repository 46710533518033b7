// Package youtube finds videos by scraping the public YouTube search page.
//
// There is no API contract behind this: extraction runs regular expressions
// over the raw page, so markup changes degrade it to "no result".
package youtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/angelospk/streailer/internal/constants"
	"github.com/angelospk/streailer/internal/httpclient"
	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
	"github.com/angelospk/streailer/pkg/core/locale"
)

const searchPath = "/results"

var (
	videoIDPattern = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)
	// Structured renderer title, then the flat title field.
	runsTitlePattern   = regexp.MustCompile(`"title":\s*{\s*"runs":\s*\[\s*{\s*"text":\s*"([^"]+)"`)
	simpleTitlePattern = regexp.MustCompile(`"title":\s*"([^"]+)"`)
)

// titleUnescapes are applied in order; the backslash pair must come last.
var titleUnescapes = [][2]string{
	{`\u0026`, "&"},
	{`\"`, `"`},
	{`\\`, `\`},
}

// BlockedError reports that YouTube served an interstitial (consent wall or
// captcha) instead of results. It unwraps to ErrUpstreamUnavailable.
type BlockedError struct {
	URL    string
	Reason string // "consent" or "captcha"
}

func (e *BlockedError) Error() string {
	if e == nil || strings.TrimSpace(e.Reason) == "" {
		return "blocked"
	}
	return "blocked: " + strings.TrimSpace(e.Reason)
}

func (e *BlockedError) Unwrap() error { return coreerrors.ErrUpstreamUnavailable }

// Result is the first video found for a query.
type Result struct {
	VideoID string
	Title   string
}

// Config holds the configuration for the scraper.
type Config struct {
	BaseURL    string       // Optional, defaults to https://www.youtube.com
	UserAgent  string       // Optional, defaults to a desktop browser agent
	HTTPClient *http.Client // Optional, defaults to a client with a 15s timeout
}

// Scraper searches YouTube without credentials.
type Scraper struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewScraper creates a new Scraper.
func NewScraper(cfg Config) (*Scraper, error) {
	base := cfg.BaseURL
	if base == "" {
		base = constants.DefaultYouTubeBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid YouTube base URL %q", base)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = constants.BrowserUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Scraper{
		baseURL:    strings.TrimRight(base, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}, nil
}

// Search returns the first video on the results page for query, localized
// per lang ("it-IT" searches with hl=it and gl=IT).
// Failures never retry; the error wraps ErrUpstreamUnavailable or
// ErrExtractionFailed.
func (s *Scraper) Search(ctx context.Context, query, lang string) (*Result, error) {
	hl, gl := locale.Split(lang)

	params := url.Values{}
	params.Set("search_query", query)
	params.Set("gl", gl)
	params.Set("hl", hl)
	reqURL := s.baseURL + searchPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube search request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", hl)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: %w: %w", query, coreerrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: read body: %w: %w", query, coreerrors.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &httpclient.StatusError{URL: searchPath, StatusCode: resp.StatusCode}
	}

	result, err := Extract(body)
	if err != nil {
		if blocked := diagnose(body); blocked != nil {
			blocked.URL = resp.Request.URL.String()
			return nil, fmt.Errorf("youtube search %q: %w", query, blocked)
		}
		return nil, fmt.Errorf("youtube search %q: %w", query, err)
	}
	return result, nil
}

// Extract pulls the first video id and a title out of a results page.
// A page with an id but no title yields ErrExtractionFailed.
func Extract(body []byte) (*Result, error) {
	idMatch := videoIDPattern.FindSubmatch(body)
	if idMatch == nil {
		return nil, fmt.Errorf("no video id in page: %w", coreerrors.ErrExtractionFailed)
	}

	var title string
	if m := runsTitlePattern.FindSubmatch(body); m != nil {
		title = string(m[1])
	} else if m := simpleTitlePattern.FindSubmatch(body); m != nil {
		title = string(m[1])
	}
	if title == "" {
		return nil, fmt.Errorf("no title in page: %w", coreerrors.ErrExtractionFailed)
	}

	return &Result{VideoID: string(idMatch[1]), Title: unescapeTitle(title)}, nil
}

func unescapeTitle(title string) string {
	for _, r := range titleUnescapes {
		title = strings.ReplaceAll(title, r[0], r[1])
	}
	return title
}

// diagnose tells an interstitial apart from markup drift once extraction failed.
func diagnose(body []byte) *BlockedError {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	if doc.Find(`form[action*="consent"]`).Length() > 0 {
		return &BlockedError{Reason: "consent"}
	}
	if doc.Find("form#captcha-form").Length() > 0 {
		return &BlockedError{Reason: "captcha"}
	}

	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	switch {
	case strings.Contains(title, "before you continue"):
		return &BlockedError{Reason: "consent"}
	case strings.Contains(strings.ToLower(doc.Find("body").Text()), "unusual traffic"):
		return &BlockedError{Reason: "captcha"}
	}
	return nil
}
