// Package metrics provides Prometheus metrics for trailer and recap resolution.
//
// Labels are bounded enums (step, upstream, error kind); titles and ids never
// become label values.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TrailerResolutionsTotal counts finished trailer resolutions by the step that produced the result.
	// source is one of canonical-localized, search-fallback, canonical-english or none.
	TrailerResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streailer_trailer_resolutions_total",
		Help: "Total number of trailer resolutions, by accepted source (none when exhausted).",
	}, []string{"source"})

	// RecapSeasonsTotal counts recap season lookups by outcome (found/missing).
	RecapSeasonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streailer_recap_seasons_total",
		Help: "Total number of recap season lookups, by outcome.",
	}, []string{"outcome"})

	// UpstreamFailuresTotal counts swallowed collaborator failures by upstream and error kind.
	UpstreamFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streailer_upstream_failures_total",
		Help: "Total number of swallowed upstream failures, by upstream and error kind.",
	}, []string{"upstream", "kind"})

	// StreamRequestsTotal counts stream endpoint requests by media type and whether any stream was returned.
	StreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streailer_stream_requests_total",
		Help: "Total number of stream requests, by media type and result (hit/empty).",
	}, []string{"type", "result"})
)

// RecordTrailerResolution increments the trailer outcome counter.
func RecordTrailerResolution(source string) {
	if source == "" {
		source = "none"
	}
	TrailerResolutionsTotal.WithLabelValues(source).Inc()
}

// RecordRecapSeason increments the recap outcome counter.
func RecordRecapSeason(found bool) {
	outcome := "missing"
	if found {
		outcome = "found"
	}
	RecapSeasonsTotal.WithLabelValues(outcome).Inc()
}

// RecordUpstreamFailure increments the swallowed-failure counter.
func RecordUpstreamFailure(upstream, kind string) {
	UpstreamFailuresTotal.WithLabelValues(upstream, kind).Inc()
}

// RecordStreamRequest increments the stream request counter.
func RecordStreamRequest(mediaType string, streams int) {
	result := "empty"
	if streams > 0 {
		result = "hit"
	}
	StreamRequestsTotal.WithLabelValues(mediaType, result).Inc()
}
