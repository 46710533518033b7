package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelospk/streailer/internal/constants"
	"github.com/angelospk/streailer/internal/metrics"
	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
	"github.com/angelospk/streailer/pkg/core/locale"
	"github.com/angelospk/streailer/pkg/core/metadata"
	"github.com/angelospk/streailer/pkg/core/tmdb"
	log "github.com/sirupsen/logrus"
)

// TrailerRequest describes a trailer lookup.
type TrailerRequest struct {
	Ref                metadata.ContentRef
	Title              string // Optional caller-supplied working title
	Language           string
	PreferExternalLink bool
}

// TrailerResolution is the outcome of ResolveTrailer.
type TrailerResolution struct {
	// Streams holds at most one stream.
	Streams     []metadata.StreamResult
	CanonicalID int
	Title       string // Working title
	Candidate   *metadata.VideoCandidate
	Attempts    []Attempt
}

// trailerStep is one entry of the fallback sequence. run returns a candidate
// or an error wrapping one of the core sentinels.
type trailerStep struct {
	source   metadata.SourceKind
	upstream string
	skip     bool
	run      func(ctx context.Context) (*metadata.VideoCandidate, string, error)
}

// ResolveTrailer finds at most one trailer for req.
// Steps run in order and the first candidate wins:
//  1. TMDB videos in the requested language
//  2. YouTube search with a localized query, validated against the title
//  3. TMDB videos in English, skipped for English requests
func (r *Resolver) ResolveTrailer(ctx context.Context, req TrailerRequest) TrailerResolution {
	res := TrailerResolution{Streams: []metadata.StreamResult{}}
	lang := req.Language
	if strings.TrimSpace(lang) == "" {
		lang = constants.DefaultLanguage
	}

	logger := r.logger.WithFields(log.Fields{
		"external_id": req.Ref.ExternalID,
		"season":      req.Ref.Season,
		"language":    lang,
	})

	if !r.Available() {
		logger.Warn("Metadata credential missing, skipping trailer resolution")
		metrics.RecordTrailerResolution("")
		return res
	}

	id, title, ok := r.identify(ctx, req, lang)
	if !ok {
		metrics.RecordTrailerResolution("")
		return res
	}
	res.CanonicalID = id
	res.Title = title
	logger = logger.WithField("canonical_id", id)

	profile := locale.Lookup(lang)
	kind := req.Ref.Kind.TMDBType()
	season := 0
	if req.Ref.HasSeason() {
		season = req.Ref.Season
	}
	canonicalTitle := title
	if season > 0 {
		canonicalTitle = fmt.Sprintf("%s %s %d", title, profile.SeasonWord, season)
	}

	canonical := func(stepLang string, source metadata.SourceKind) func(context.Context) (*metadata.VideoCandidate, string, error) {
		return func(ctx context.Context) (*metadata.VideoCandidate, string, error) {
			videos, err := r.listVideos(ctx, id, kind, stepLang, season, logger)
			if err != nil {
				return nil, "", err
			}
			best := tmdb.SelectBestTrailer(videos)
			if best == nil {
				return nil, "", fmt.Errorf("no playable trailer among %d videos: %w", len(videos), coreerrors.ErrUpstreamEmpty)
			}
			return &metadata.VideoCandidate{
				VideoID:  best.Key,
				Title:    canonicalTitle,
				Source:   source,
				Official: best.Official,
				Category: best.Type,
			}, "", nil
		}
	}

	steps := []trailerStep{
		{
			source:   metadata.SourceCanonicalLocalized,
			upstream: upstreamTMDB,
			run:      canonical(lang, metadata.SourceCanonicalLocalized),
		},
		{
			source:   metadata.SourceSearchFallback,
			upstream: upstreamYouTube,
			// An empty title cannot be validated.
			skip: title == "" || r.search == nil,
			run: func(ctx context.Context) (*metadata.VideoCandidate, string, error) {
				query := TrailerQuery(title, profile, season)
				found, err := r.search.Search(ctx, query, lang)
				if err != nil {
					return nil, query, err
				}
				if !titleMatches(found.Title, title) {
					return nil, query, fmt.Errorf("result %q does not contain %q: %w", found.Title, title, coreerrors.ErrValidationRejected)
				}
				return &metadata.VideoCandidate{
					VideoID: found.VideoID,
					Title:   found.Title,
					Source:  metadata.SourceSearchFallback,
				}, query, nil
			},
		},
		{
			source:   metadata.SourceCanonicalEnglish,
			upstream: upstreamTMDB,
			skip:     locale.IsEnglish(lang),
			run:      canonical(constants.FallbackLanguage, metadata.SourceCanonicalEnglish),
		},
	}

	for _, step := range steps {
		if step.skip {
			logger.WithField("step", step.source).Debug("Skipping step")
			continue
		}
		if ctx.Err() != nil {
			logger.WithError(ctx.Err()).Info("Context cancelled during trailer resolution")
			break
		}

		candidate, query, err := step.run(ctx)
		res.Attempts = append(res.Attempts, Attempt{Step: string(step.source), Query: query, Err: err})
		if err != nil {
			r.swallow(step.upstream, log.Fields{
				"step":         step.source,
				"query":        query,
				"canonical_id": id,
				"language":     lang,
			}, err)
			continue
		}

		res.Candidate = candidate
		break
	}

	if res.Candidate == nil {
		logger.WithField("title", title).Info("No trailer found")
		metrics.RecordTrailerResolution("")
		return res
	}

	c := res.Candidate
	logger.WithFields(log.Fields{
		"step":     c.Source,
		"video_id": c.VideoID,
		"title":    c.Title,
	}).Info("Trailer accepted")
	metrics.RecordTrailerResolution(string(c.Source))

	res.Streams = append(res.Streams, metadata.NewStream(c.Source.Label(), c.Title, c.VideoID, metadata.GroupTrailer, req.PreferExternalLink))
	return res
}

// identify resolves the canonical id and the working title.
// ok is false only when no canonical id can be established.
func (r *Resolver) identify(ctx context.Context, req TrailerRequest, lang string) (int, string, bool) {
	kind := req.Ref.Kind.TMDBType()
	title := strings.TrimSpace(req.Title)
	fields := log.Fields{"step": "identify", "language": lang, "external_id": req.Ref.ExternalID}

	var id int
	switch {
	case req.Ref.CanonicalID > 0:
		id = req.Ref.CanonicalID
	case strings.TrimSpace(req.Ref.ExternalID) != "":
		ref, err := r.metadata.CrossReference(ctx, req.Ref.ExternalID, kind, lang)
		if err != nil {
			r.swallow(upstreamTMDB, fields, err)
			return 0, "", false
		}
		id = ref.ID
		if title == "" {
			title = ref.Title
		}
	default:
		r.logger.WithFields(fields).Warn("Content reference has no usable id")
		return 0, "", false
	}
	fields["canonical_id"] = id

	if title == "" && req.Ref.CanonicalID > 0 {
		t, err := r.metadata.FetchTitle(ctx, id, kind, lang)
		if err != nil {
			r.swallow(upstreamTMDB, fields, err)
		}
		title = t
	}
	if title == "" && !locale.IsEnglish(lang) {
		t, err := r.metadata.FetchTitle(ctx, id, kind, constants.FallbackLanguage)
		if err != nil {
			fields["language"] = constants.FallbackLanguage
			r.swallow(upstreamTMDB, fields, err)
		}
		title = t
	}
	return id, title, true
}

// listVideos queries season-scoped videos first and retries at series level
// when the season listing is empty or fails.
func (r *Resolver) listVideos(ctx context.Context, id int, kind tmdb.MediaType, lang string, season int, logger *log.Entry) ([]tmdb.Video, error) {
	if kind == tmdb.TV && season > 0 {
		videos, err := r.metadata.ListVideos(ctx, id, kind, lang, season)
		if err == nil && len(videos) > 0 {
			return videos, nil
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).WithField("language", lang).Debug("Season videos unavailable, retrying at series level")
		}
	}
	return r.metadata.ListVideos(ctx, id, kind, lang, 0)
}

// TrailerQuery builds the localized search query for a trailer.
func TrailerQuery(title string, profile locale.Profile, season int) string {
	if season > 0 {
		return fmt.Sprintf("%s %s %d %s", title, profile.SeasonWord, season, profile.TrailerKeyword)
	}
	return fmt.Sprintf("%s %s", title, profile.TrailerKeyword)
}

// titleMatches accepts a scraped title containing the working title,
// ignoring case. The season number is not checked.
func titleMatches(scraped, title string) bool {
	return strings.Contains(strings.ToLower(scraped), strings.ToLower(title))
}
