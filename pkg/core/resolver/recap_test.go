package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
	"github.com/angelospk/streailer/pkg/core/youtube"
)

var errNoVideo = fmt.Errorf("no video id: %w", coreerrors.ErrExtractionFailed)

func TestRecapSeasons(t *testing.T) {
	assert.Nil(t, RecapSeasons(0))
	assert.Nil(t, RecapSeasons(1))
	assert.Equal(t, []int{1}, RecapSeasons(2))
	assert.Equal(t, []int{2, 1}, RecapSeasons(3))
	assert.Equal(t, []int{3, 1, 2}, RecapSeasons(4))
	assert.Equal(t, []int{5, 1, 2, 3, 4}, RecapSeasons(6))
}

func TestRecapQueries(t *testing.T) {
	t.Run("Localized with provider and English fallback", func(t *testing.T) {
		got := RecapQueries("Dark", 2, "Netflix", "de-DE")
		assert.Equal(t, []RecapQuery{
			{Query: "Dark Recap Staffel 2 Netflix", Language: "de-DE"},
			{Query: "Dark Recap Staffel 2", Language: "de-DE"},
			{Query: "Dark recap Season 2 Netflix", Language: "en-US"},
			{Query: "Dark recap Season 2", Language: "en-US"},
		}, got)
	})

	t.Run("No provider", func(t *testing.T) {
		got := RecapQueries("Çukur", 1, "", "tr-TR")
		assert.Equal(t, []RecapQuery{
			{Query: "Çukur özet Sezon 1", Language: "tr-TR"},
			{Query: "Çukur recap Season 1", Language: "en-US"},
		}, got)
	})

	t.Run("English has no fallback", func(t *testing.T) {
		got := RecapQueries("Severance", 1, "Apple TV", "en-US")
		assert.Equal(t, []RecapQuery{
			{Query: "Severance recap Season 1 Apple TV", Language: "en-US"},
			{Query: "Severance recap Season 1", Language: "en-US"},
		}, got)
	})

	t.Run("Unknown language uses English vocabulary but keeps the tag", func(t *testing.T) {
		got := RecapQueries("Dark", 1, "", "nl-NL")
		require.Len(t, got, 2)
		assert.Equal(t, RecapQuery{Query: "Dark recap Season 1", Language: "nl-NL"}, got[0])
		assert.Equal(t, RecapQuery{Query: "Dark recap Season 1", Language: "en-US"}, got[1])
	})
}

func TestRecapLabel(t *testing.T) {
	assert.Equal(t, "📝 Recap Stagione 2", RecapLabel("it-IT", 2, false))
	assert.Equal(t, "🔗 📝 Recap Stagione 2", RecapLabel("it-IT", 2, true))
	assert.Equal(t, "📝 Recap Season 1", RecapLabel("xx", 1, false))
}

func TestResolveRecaps_SeasonOneMakesNoCalls(t *testing.T) {
	r, md, search, _ := newTestResolver(t)

	for _, season := range []int{-1, 0, 1} {
		got := r.ResolveRecaps(context.Background(), RecapRequest{CanonicalID: 1399, Title: "Dark", Season: season, Language: "de-DE"})
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}

	assert.Empty(t, md.Calls)
	assert.Empty(t, search.Calls)
}

func TestResolveRecaps_Order(t *testing.T) {
	r, md, search, _ := newTestResolver(t)
	ctx := context.Background()

	md.On("Available").Return(true)
	md.On("WatchProvider", ctx, 1399, "IT").Return("HBO Max", nil)
	for _, s := range []int{1, 2, 3} {
		query := fmt.Sprintf("Il Trono di Spade recap Stagione %d HBO Max", s)
		search.On("Search", ctx, query, "it-IT").
			Return(&youtube.Result{VideoID: fmt.Sprintf("recap%06d", s), Title: fmt.Sprintf("Riassunto stagione %d", s)}, nil)
	}

	got := r.ResolveRecaps(ctx, RecapRequest{
		CanonicalID: 1399,
		Title:       "Il Trono di Spade",
		Season:      4,
		Language:    "it-IT",
	})

	require.Len(t, got, 3)
	assert.Equal(t, "📝 Recap Stagione 3", got[0].Name)
	assert.Equal(t, "📝 Recap Stagione 1", got[1].Name)
	assert.Equal(t, "📝 Recap Stagione 2", got[2].Name)
	assert.Equal(t, "Riassunto stagione 3", got[0].Title)
	for _, s := range got {
		assert.Equal(t, "recap", s.BehaviorHints.BingeGroup)
		assert.True(t, s.BehaviorHints.NotWebReady)
		assert.NotEmpty(t, s.YtID)
		assert.Empty(t, s.ExternalURL)
	}

	md.AssertExpectations(t)
	search.AssertExpectations(t)
	search.AssertNumberOfCalls(t, "Search", 3)
}

func TestResolveRecaps_FallbackSequence(t *testing.T) {
	r, md, search, hook := newTestResolver(t)
	ctx := context.Background()

	md.On("Available").Return(true)
	md.On("WatchProvider", ctx, 70523, "DE").Return("Netflix", nil)
	search.On("Search", ctx, "Dark Recap Staffel 1 Netflix", "de-DE").Return(nil, errNoVideo).Once()
	search.On("Search", ctx, "Dark Recap Staffel 1", "de-DE").Return(nil, errNoVideo).Once()
	search.On("Search", ctx, "Dark recap Season 1 Netflix", "en-US").Return(nil, errNoVideo).Once()
	search.On("Search", ctx, "Dark recap Season 1", "en-US").
		Return(&youtube.Result{VideoID: "darkrecap01", Title: "DARK Season 1 Recap"}, nil).Once()

	got := r.ResolveRecaps(ctx, RecapRequest{
		CanonicalID:        70523,
		Title:              "Dark",
		Season:             2,
		Language:           "de-DE",
		PreferExternalLink: true,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "🔗 📝 Recap Staffel 1", got[0].Name)
	assert.Equal(t, "DARK Season 1 Recap", got[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=darkrecap01", got[0].ExternalURL)
	assert.Empty(t, got[0].YtID)

	search.AssertExpectations(t)
	assert.Equal(t, 3, warnings(hook))
}

func TestResolveRecaps_EnglishNeverFallsBack(t *testing.T) {
	r, md, search, _ := newTestResolver(t)
	ctx := context.Background()

	md.On("Available").Return(true)
	md.On("WatchProvider", ctx, 95396, "US").Return("Apple TV", nil)
	search.On("Search", ctx, mock.Anything, "en-US").Return(nil, errNoVideo)

	got := r.ResolveRecaps(ctx, RecapRequest{
		CanonicalID: 95396,
		Title:       "Severance",
		Season:      3,
		Language:    "en-US",
	})

	assert.Empty(t, got)
	// Two seasons, two localized attempts each.
	search.AssertNumberOfCalls(t, "Search", 4)
}

func TestResolveRecaps_WithoutCanonicalIDSkipsProvider(t *testing.T) {
	r, md, search, _ := newTestResolver(t)
	ctx := context.Background()

	search.On("Search", ctx, "Dark resumen Temporada 1", "es-ES").
		Return(&youtube.Result{VideoID: "resumen0001", Title: "Dark resumen"}, nil)

	got := r.ResolveRecaps(ctx, RecapRequest{Title: "Dark", Season: 2, Language: "es-ES"})

	require.Len(t, got, 1)
	assert.Equal(t, "📝 Recap Temporada 1", got[0].Name)
	assert.Empty(t, md.Calls)
}

func TestResolveRecaps_ProviderFailureIsNotTerminal(t *testing.T) {
	r, md, search, hook := newTestResolver(t)
	ctx := context.Background()

	md.On("Available").Return(true)
	md.On("WatchProvider", ctx, 1, "BR").Return("", fmt.Errorf("none: %w", coreerrors.ErrUpstreamEmpty))
	search.On("Search", ctx, "Sintonia recap Temporada 1", "pt-BR").
		Return(&youtube.Result{VideoID: "sintonia001", Title: "Sintonia T1"}, nil)

	got := r.ResolveRecaps(ctx, RecapRequest{CanonicalID: 1, Title: "Sintonia", Season: 2, Language: "pt-BR"})

	require.Len(t, got, 1)
	assert.Equal(t, 1, warnings(hook))
	search.AssertNumberOfCalls(t, "Search", 1)
}

func TestResolveRecaps_EmptyTitle(t *testing.T) {
	r, md, search, _ := newTestResolver(t)

	got := r.ResolveRecaps(context.Background(), RecapRequest{CanonicalID: 1, Title: "  ", Season: 3, Language: "it-IT"})

	assert.Empty(t, got)
	assert.Empty(t, md.Calls)
	assert.Empty(t, search.Calls)
}

func TestResolveRecaps_MissingSeasonsAreSkipped(t *testing.T) {
	r, md, search, _ := newTestResolver(t)
	ctx := context.Background()

	md.On("Available").Return(true)
	md.On("WatchProvider", ctx, 1, "FR").Return("", fmt.Errorf("none: %w", coreerrors.ErrUpstreamEmpty))
	search.On("Search", ctx, "Lupin recap Saison 1", "fr-FR").
		Return(&youtube.Result{VideoID: "lupinrecap1", Title: "Lupin saison 1 résumé"}, nil)
	search.On("Search", ctx, mock.Anything, mock.Anything).Return(nil, errNoVideo)

	got := r.ResolveRecaps(ctx, RecapRequest{CanonicalID: 1, Title: "Lupin", Season: 3, Language: "fr-FR"})

	require.Len(t, got, 1)
	assert.Equal(t, "📝 Recap Saison 1", got[0].Name)
}
