package resolver

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/angelospk/streailer/pkg/core/tmdb"
	"github.com/angelospk/streailer/pkg/core/youtube"
)

// MockMetadataClient is a mock implementation of metadata.MetadataClient.
type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMetadataClient) CrossReference(ctx context.Context, imdbID string, mediaType tmdb.MediaType, lang string) (*tmdb.CrossRef, error) {
	args := m.Called(ctx, imdbID, mediaType, lang)
	var ref *tmdb.CrossRef
	if v := args.Get(0); v != nil {
		ref = v.(*tmdb.CrossRef)
	}
	return ref, args.Error(1)
}

func (m *MockMetadataClient) ListVideos(ctx context.Context, id int, mediaType tmdb.MediaType, lang string, season int) ([]tmdb.Video, error) {
	args := m.Called(ctx, id, mediaType, lang, season)
	var videos []tmdb.Video
	if v := args.Get(0); v != nil {
		videos = v.([]tmdb.Video)
	}
	return videos, args.Error(1)
}

func (m *MockMetadataClient) FetchTitle(ctx context.Context, id int, mediaType tmdb.MediaType, lang string) (string, error) {
	args := m.Called(ctx, id, mediaType, lang)
	return args.String(0), args.Error(1)
}

func (m *MockMetadataClient) WatchProvider(ctx context.Context, id int, country string) (string, error) {
	args := m.Called(ctx, id, country)
	return args.String(0), args.Error(1)
}

// MockSearchClient is a mock implementation of metadata.SearchClient.
type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query, lang string) (*youtube.Result, error) {
	args := m.Called(ctx, query, lang)
	var res *youtube.Result
	if v := args.Get(0); v != nil {
		res = v.(*youtube.Result)
	}
	return res, args.Error(1)
}
