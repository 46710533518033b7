package metadata

import (
	"context"
	"strings"

	"github.com/angelospk/streailer/internal/constants"
	"github.com/angelospk/streailer/pkg/core/tmdb"
	"github.com/angelospk/streailer/pkg/core/youtube"
)

// MediaKind is the catalog type of a title.
type MediaKind string

const (
	Movie  MediaKind = "movie"
	Series MediaKind = "series"
)

// ParseMediaKind maps a catalog type to a MediaKind. Anything but "series"
// is treated as a movie.
func ParseMediaKind(s string) MediaKind {
	if strings.EqualFold(strings.TrimSpace(s), string(Series)) {
		return Series
	}
	return Movie
}

// TMDBType returns the TMDB path segment for k.
func (k MediaKind) TMDBType() tmdb.MediaType {
	if k == Series {
		return tmdb.TV
	}
	return tmdb.Movie
}

// ContentRef identifies the title a stream request is about.
type ContentRef struct {
	CanonicalID int       `json:"canonicalId,omitempty"` // TMDB id
	ExternalID  string    `json:"externalId,omitempty"`  // IMDb id, e.g. "tt0944947"
	Kind        MediaKind `json:"kind"`
	Season      int       `json:"season,omitempty"` // 0 when absent
	Episode     int       `json:"episode,omitempty"`
}

// HasSeason reports whether r targets a specific season of a series.
func (r ContentRef) HasSeason() bool {
	return r.Kind == Series && r.Season > 0
}

// Valid reports whether r carries at least one usable id.
func (r ContentRef) Valid() bool {
	return r.CanonicalID > 0 || strings.TrimSpace(r.ExternalID) != ""
}

// SourceKind records which resolution step produced a trailer.
type SourceKind string

const (
	SourceCanonicalLocalized SourceKind = "canonical-localized"
	SourceSearchFallback     SourceKind = "search-fallback"
	SourceCanonicalEnglish   SourceKind = "canonical-english"
)

// Label returns the stream name shown for a trailer from s.
func (s SourceKind) Label() string {
	switch s {
	case SourceSearchFallback:
		return "🎬▶️ Trailer"
	case SourceCanonicalEnglish:
		return "🎬🇬🇧 Trailer"
	default:
		return "🎬 Trailer"
	}
}

// VideoCandidate is a video found by any step, before it becomes a stream.
type VideoCandidate struct {
	VideoID  string
	Title    string
	Source   SourceKind
	Official bool   // Canonical sources only
	Category string // Canonical sources only: Trailer, Teaser or Clip
}

// Binge groups let clients keep trailers and recaps apart.
const (
	GroupTrailer = "trailer"
	GroupRecap   = "recap"
)

// BehaviorHints are the fixed playback hints attached to every stream.
type BehaviorHints struct {
	NotWebReady bool   `json:"notWebReady"`
	BingeGroup  string `json:"bingeGroup"`
}

// StreamResult is a stream entry as returned by the addon.
// Exactly one of YtID and ExternalURL is set.
type StreamResult struct {
	Name          string        `json:"name"`
	Title         string        `json:"title"`
	YtID          string        `json:"ytId,omitempty"`
	ExternalURL   string        `json:"externalUrl,omitempty"`
	BehaviorHints BehaviorHints `json:"behaviorHints"`
}

// NewStream builds a StreamResult whose play reference is either the embedded
// video id or a watch URL, never both.
func NewStream(name, title, videoID, group string, external bool) StreamResult {
	s := StreamResult{
		Name:  name,
		Title: title,
		BehaviorHints: BehaviorHints{
			NotWebReady: true,
			BingeGroup:  group,
		},
	}
	if external {
		s.ExternalURL = WatchURL(videoID)
	} else {
		s.YtID = videoID
	}
	return s
}

// WatchURL returns the public watch page for a video id.
func WatchURL(videoID string) string {
	return constants.YouTubeWatchURL + videoID
}

// ResolutionConfig holds the per-request user options.
type ResolutionConfig struct {
	Language           string `json:"language"`
	PreferExternalLink bool   `json:"externalLink"`
	IncludeRecaps      bool   `json:"includeRecaps"`
	RecapsOnly         bool   `json:"recapsOnly"`
}

// DefaultResolutionConfig returns the options used when a request carries none.
func DefaultResolutionConfig() ResolutionConfig {
	return ResolutionConfig{Language: constants.DefaultLanguage}
}

// WantRecaps reports whether recap resolution should run.
func (c ResolutionConfig) WantRecaps() bool {
	return c.IncludeRecaps || c.RecapsOnly
}

// --- Client Interfaces for Dependency Injection ---

// MetadataClient defines the methods needed from the TMDB client.
type MetadataClient interface {
	// Available reports whether a credential is configured.
	Available() bool
	CrossReference(ctx context.Context, imdbID string, mediaType tmdb.MediaType, lang string) (*tmdb.CrossRef, error)
	ListVideos(ctx context.Context, id int, mediaType tmdb.MediaType, lang string, season int) ([]tmdb.Video, error)
	FetchTitle(ctx context.Context, id int, mediaType tmdb.MediaType, lang string) (string, error)
	WatchProvider(ctx context.Context, id int, country string) (string, error)
}

// SearchClient defines the methods needed from the video search scraper.
type SearchClient interface {
	Search(ctx context.Context, query, lang string) (*youtube.Result, error)
}

// Clients groups the collaborators used by the resolvers.
type Clients struct {
	Metadata MetadataClient
	Search   SearchClient
}
