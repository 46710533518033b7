package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBestTrailer(t *testing.T) {
	tests := []struct {
		name    string
		videos  []Video
		wantKey string // empty means nil
	}{
		{
			name:    "Empty listing",
			videos:  nil,
			wantKey: "",
		},
		{
			name: "Only non-YouTube entries",
			videos: []Video{
				{Key: "v1", Site: "Vimeo", Type: "Trailer", Official: true},
			},
			wantKey: "",
		},
		{
			name: "Category beats official flag",
			videos: []Video{
				{Key: "clip", Site: "YouTube", Type: "Clip", Official: true},
				{Key: "trailer", Site: "YouTube", Type: "Trailer", Official: false},
			},
			wantKey: "trailer",
		},
		{
			name: "Official beats first seen within category",
			videos: []Video{
				{Key: "fan", Site: "YouTube", Type: "Trailer"},
				{Key: "studio", Site: "YouTube", Type: "Trailer", Official: true},
			},
			wantKey: "studio",
		},
		{
			name: "First seen when nothing is official",
			videos: []Video{
				{Key: "t1", Site: "YouTube", Type: "Teaser"},
				{Key: "t2", Site: "YouTube", Type: "Teaser"},
			},
			wantKey: "t1",
		},
		{
			name: "Teaser beats clip",
			videos: []Video{
				{Key: "clip", Site: "YouTube", Type: "Clip", Official: true},
				{Key: "teaser", Site: "YouTube", Type: "Teaser"},
			},
			wantKey: "teaser",
		},
		{
			name: "Non-YouTube trailer is ignored",
			videos: []Video{
				{Key: "vimeo", Site: "Vimeo", Type: "Trailer", Official: true},
				{Key: "yt", Site: "YouTube", Type: "Clip"},
			},
			wantKey: "yt",
		},
		{
			name: "Unknown categories fall back to first hosted",
			videos: []Video{
				{Key: "vimeo", Site: "Vimeo", Type: "Featurette"},
				{Key: "bts", Site: "YouTube", Type: "Behind the Scenes", Official: true},
				{Key: "feat", Site: "YouTube", Type: "Featurette"},
			},
			wantKey: "bts",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectBestTrailer(tc.videos)
			if tc.wantKey == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantKey, got.Key)
		})
	}
}
