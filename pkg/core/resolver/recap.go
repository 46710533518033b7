package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelospk/streailer/internal/constants"
	"github.com/angelospk/streailer/internal/metrics"
	"github.com/angelospk/streailer/pkg/core/locale"
	"github.com/angelospk/streailer/pkg/core/metadata"
	"github.com/angelospk/streailer/pkg/core/youtube"
	log "github.com/sirupsen/logrus"
)

// RecapRequest describes a recap lookup for a series season.
type RecapRequest struct {
	CanonicalID        int // Optional; enables the watch-provider hint
	Title              string
	Season             int // Requested season; recaps cover earlier ones
	Language           string
	PreferExternalLink bool
}

// RecapQuery is one search attempt for a season recap.
type RecapQuery struct {
	Query    string
	Language string
}

// RecapSeasons returns the seasons to look up for requested, in output
// order: the previous season first, then 1..requested-2 ascending.
func RecapSeasons(requested int) []int {
	if requested < 2 {
		return nil
	}
	previous := requested - 1
	seasons := make([]int, 0, previous)
	seasons = append(seasons, previous)
	for s := 1; s < previous; s++ {
		seasons = append(seasons, s)
	}
	return seasons
}

// RecapQueries returns the search attempts for one season, most specific first.
// English requests get no English fallback attempts.
func RecapQueries(title string, season int, provider, lang string) []RecapQuery {
	profile := locale.Lookup(lang)
	localized := fmt.Sprintf("%s %s %s %d", title, profile.RecapKeyword, profile.SeasonWord, season)
	english := fmt.Sprintf("%s recap Season %d", title, season)

	var queries []RecapQuery
	if provider != "" {
		queries = append(queries, RecapQuery{Query: localized + " " + provider, Language: lang})
	}
	queries = append(queries, RecapQuery{Query: localized, Language: lang})

	if locale.IsEnglish(lang) {
		return queries
	}
	if provider != "" {
		queries = append(queries, RecapQuery{Query: english + " " + provider, Language: constants.FallbackLanguage})
	}
	return append(queries, RecapQuery{Query: english, Language: constants.FallbackLanguage})
}

// RecapLabel returns the stream name for a recap of season.
func RecapLabel(lang string, season int, external bool) string {
	label := fmt.Sprintf("📝 Recap %s %d", locale.Lookup(lang).SeasonWord, season)
	if external {
		return "🔗 " + label
	}
	return label
}

// ResolveRecaps finds recap videos for every season before req.Season.
// Seasons without a recap are left out; the result is empty for season 1,
// for an empty title, and when every search fails.
func (r *Resolver) ResolveRecaps(ctx context.Context, req RecapRequest) []metadata.StreamResult {
	streams := []metadata.StreamResult{}
	if req.Season < 2 {
		return streams
	}

	lang := req.Language
	if strings.TrimSpace(lang) == "" {
		lang = constants.DefaultLanguage
	}
	title := strings.TrimSpace(req.Title)
	logger := r.logger.WithFields(log.Fields{
		"canonical_id": req.CanonicalID,
		"season":       req.Season,
		"language":     lang,
	})
	if title == "" || r.search == nil {
		logger.Warn("No series title or search client, skipping recaps")
		return streams
	}

	provider := r.watchProvider(ctx, req.CanonicalID, lang)
	logger = logger.WithField("provider", provider)

	for _, season := range RecapSeasons(req.Season) {
		if ctx.Err() != nil {
			logger.WithError(ctx.Err()).Info("Context cancelled during recap resolution")
			break
		}

		found := r.searchRecap(ctx, title, season, provider, lang, req.CanonicalID)
		metrics.RecordRecapSeason(found != nil)
		if found == nil {
			logger.WithField("recap_season", season).Info("No recap found")
			continue
		}

		logger.WithFields(log.Fields{
			"recap_season": season,
			"video_id":     found.VideoID,
			"title":        found.Title,
		}).Info("Recap accepted")
		streams = append(streams, metadata.NewStream(
			RecapLabel(lang, season, req.PreferExternalLink),
			found.Title,
			found.VideoID,
			metadata.GroupRecap,
			req.PreferExternalLink,
		))
	}
	return streams
}

// watchProvider returns the subscription provider name used to sharpen recap
// queries, or "" when unknown.
func (r *Resolver) watchProvider(ctx context.Context, id int, lang string) string {
	if id <= 0 || !r.Available() {
		return ""
	}
	country := locale.Country(lang)
	name, err := r.metadata.WatchProvider(ctx, id, country)
	if err != nil {
		r.swallow(upstreamTMDB, log.Fields{
			"step":         "watch-provider",
			"canonical_id": id,
			"language":     lang,
			"country":      country,
		}, err)
		return ""
	}
	return name
}

// searchRecap runs the recap queries for one season until one returns a
// video. Recap results are not validated against the title.
func (r *Resolver) searchRecap(ctx context.Context, title string, season int, provider, lang string, id int) *youtube.Result {
	for _, q := range RecapQueries(title, season, provider, lang) {
		found, err := r.search.Search(ctx, q.Query, q.Language)
		if err == nil && found != nil {
			return found
		}
		r.swallow(upstreamYouTube, log.Fields{
			"step":         "recap",
			"query":        q.Query,
			"canonical_id": id,
			"language":     q.Language,
		}, err)
		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}
