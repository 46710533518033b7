package processor

import (
	"context"
	"os"
	"strings"

	"github.com/angelospk/streailer/pkg/core/metadata"
	"github.com/angelospk/streailer/pkg/core/resolver"
	log "github.com/sirupsen/logrus"
)

// ProcessorInterface defines the methods for turning a content reference into streams.
type ProcessorInterface interface {
	Available() bool
	Streams(ctx context.Context, ref metadata.ContentRef, cfg metadata.ResolutionConfig) []metadata.StreamResult
}

// Ensure Processor implements ProcessorInterface
var _ ProcessorInterface = (*Processor)(nil)

// Processor assembles trailer and recap streams for a stream request.
type Processor struct {
	resolver *resolver.Resolver
	logger   *log.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(clients metadata.Clients, logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(log.InfoLevel)
	}
	return &Processor{
		resolver: resolver.New(clients, logger),
		logger:   logger,
	}
}

// Available reports whether the metadata credential is configured. Callers
// check it once per request; when false every request yields no streams.
func (p *Processor) Available() bool {
	return p.resolver.Available()
}

// Streams resolves the trailer and, when configured, the recaps for ref.
// The result is never nil.
func (p *Processor) Streams(ctx context.Context, ref metadata.ContentRef, cfg metadata.ResolutionConfig) []metadata.StreamResult {
	logger := p.logger.WithFields(log.Fields{
		"kind":         ref.Kind,
		"external_id":  ref.ExternalID,
		"canonical_id": ref.CanonicalID,
		"season":       ref.Season,
		"language":     cfg.Language,
	})

	if !p.Available() {
		logger.Warn("Metadata credential not configured, returning no streams")
		return []metadata.StreamResult{}
	}
	if !ref.Valid() {
		logger.Info("Content reference has no usable id, returning no streams")
		return []metadata.StreamResult{}
	}

	trailer := p.resolver.ResolveTrailer(ctx, resolver.TrailerRequest{
		Ref:                ref,
		Language:           cfg.Language,
		PreferExternalLink: cfg.PreferExternalLink,
	})

	var recaps []metadata.StreamResult
	if cfg.WantRecaps() && ref.Kind == metadata.Series && ref.Season >= 2 {
		recaps = p.resolver.ResolveRecaps(ctx, resolver.RecapRequest{
			CanonicalID:        trailer.CanonicalID,
			Title:              recapTitle(trailer),
			Season:             ref.Season,
			Language:           cfg.Language,
			PreferExternalLink: cfg.PreferExternalLink,
		})
	}

	streams := Assemble(trailer.Streams, recaps, cfg)
	logger.WithFields(log.Fields{
		"trailers": len(trailer.Streams),
		"recaps":   len(recaps),
		"returned": len(streams),
	}).Info("Streams assembled")
	return streams
}

// Assemble merges trailer and recap streams. With RecapsOnly and at least one
// recap only the recaps are returned; otherwise trailers come first.
func Assemble(trailers, recaps []metadata.StreamResult, cfg metadata.ResolutionConfig) []metadata.StreamResult {
	if cfg.RecapsOnly && len(recaps) > 0 {
		out := make([]metadata.StreamResult, len(recaps))
		copy(out, recaps)
		return out
	}

	out := make([]metadata.StreamResult, 0, len(trailers)+len(recaps))
	out = append(out, trailers...)
	if cfg.WantRecaps() {
		out = append(out, recaps...)
	}
	return out
}

// recapTitle prefers the working title and falls back to the trailer's title.
func recapTitle(trailer resolver.TrailerResolution) string {
	if t := strings.TrimSpace(trailer.Title); t != "" {
		return t
	}
	if len(trailer.Streams) > 0 {
		return trailer.Streams[0].Title
	}
	return ""
}
