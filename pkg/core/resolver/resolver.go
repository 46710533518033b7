// Package resolver turns a content reference into trailer and recap streams
// by walking a fixed sequence of metadata and search lookups.
//
// Resolvers never return errors. Every collaborator failure is logged,
// counted and treated as "no candidate from this step".
package resolver

import (
	"os"

	"github.com/angelospk/streailer/internal/metrics"
	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
	"github.com/angelospk/streailer/pkg/core/metadata"
	log "github.com/sirupsen/logrus"
)

const (
	upstreamTMDB    = "tmdb"
	upstreamYouTube = "youtube"
)

// Attempt records the outcome of one resolution step.
type Attempt struct {
	Step  string
	Query string
	Err   error
}

// Accepted reports whether the step produced the result.
func (a Attempt) Accepted() bool { return a.Err == nil }

// Resolver coordinates the metadata client and the search scraper.
type Resolver struct {
	metadata metadata.MetadataClient
	search   metadata.SearchClient
	logger   *log.Logger
}

// New creates a new Resolver. A nil logger falls back to a text logger at Info level.
func New(clients metadata.Clients, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(log.InfoLevel)
	}
	return &Resolver{
		metadata: clients.Metadata,
		search:   clients.Search,
		logger:   logger,
	}
}

// Available reports whether the metadata credential is configured.
func (r *Resolver) Available() bool {
	return r.metadata != nil && r.metadata.Available()
}

// swallow logs and counts a collaborator failure.
func (r *Resolver) swallow(upstream string, fields log.Fields, err error) {
	kind := coreerrors.Kind(err)
	metrics.RecordUpstreamFailure(upstream, kind)

	entry := r.logger.WithFields(fields).WithField("upstream", upstream).WithField("kind", kind)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("Step produced no candidate")
}
