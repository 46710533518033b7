package streailer

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/angelospk/streailer/pkg/core/metadata"
	"github.com/angelospk/streailer/pkg/core/resolver"
	"github.com/angelospk/streailer/pkg/core/tmdb"
	"github.com/angelospk/streailer/pkg/core/youtube"
	"github.com/angelospk/streailer/pkg/processor"
	log "github.com/sirupsen/logrus"
)

// Config holds the configuration for the trailer client.
type Config struct {
	APIKey          string       // TMDB credential; empty disables resolution
	BaseURL         string       // Optional: Override the TMDB base URL
	SearchBaseURL   string       // Optional: Override the YouTube base URL
	UserAgent       string       // Optional: User-Agent for TMDB requests
	SearchUserAgent string       // Optional: User-Agent for search requests
	HTTPClient      *http.Client // Optional: shared by both upstreams
	Logger          *log.Logger  // Optional
}

// Client resolves trailers and recaps for catalog items.
type Client struct {
	metadata  *tmdb.Client
	search    *youtube.Scraper
	resolver  *resolver.Resolver
	processor *processor.Processor
}

// New creates a Client. A missing APIKey is not an error: the client is built
// but Available reports false and every lookup yields no streams.
func New(cfg Config) (*Client, error) {
	md, err := tmdb.NewClient(tmdb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata client: %w", err)
	}

	search, err := youtube.NewScraper(youtube.Config{
		BaseURL:    cfg.SearchBaseURL,
		UserAgent:  cfg.SearchUserAgent,
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(log.InfoLevel)
	}

	clients := metadata.Clients{Metadata: md, Search: search}
	return &Client{
		metadata:  md,
		search:    search,
		resolver:  resolver.New(clients, logger),
		processor: processor.NewProcessor(clients, logger),
	}, nil
}

// Available reports whether a metadata credential is configured.
func (c *Client) Available() bool {
	return c.processor.Available()
}

// Ping checks the credential against the metadata API.
func (c *Client) Ping(ctx context.Context) error {
	return c.metadata.Ping(ctx)
}

// Streams returns the trailer and recap streams for ref. Never nil.
func (c *Client) Streams(ctx context.Context, ref metadata.ContentRef, cfg metadata.ResolutionConfig) []metadata.StreamResult {
	return c.processor.Streams(ctx, ref, cfg)
}

// Trailer resolves only the trailer for ref, including the attempt trail.
func (c *Client) Trailer(ctx context.Context, ref metadata.ContentRef, cfg metadata.ResolutionConfig) resolver.TrailerResolution {
	return c.resolver.ResolveTrailer(ctx, resolver.TrailerRequest{
		Ref:                ref,
		Language:           cfg.Language,
		PreferExternalLink: cfg.PreferExternalLink,
	})
}

// Recaps resolves recap streams for the seasons before season.
// canonicalID may be zero, in which case no provider hint is used.
func (c *Client) Recaps(ctx context.Context, canonicalID int, title string, season int, cfg metadata.ResolutionConfig) []metadata.StreamResult {
	return c.resolver.ResolveRecaps(ctx, resolver.RecapRequest{
		CanonicalID:        canonicalID,
		Title:              title,
		Season:             season,
		Language:           cfg.Language,
		PreferExternalLink: cfg.PreferExternalLink,
	})
}
