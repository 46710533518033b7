package addon

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/angelospk/streailer/pkg/core/metadata"
)

const tmdbPrefix = "tmdb:"

// ErrUnsupportedID is returned for ids that are neither IMDb nor TMDB ids.
var ErrUnsupportedID = errors.New("unsupported content id")

// ParseContentID parses a catalog id of the forms
//
//	tmdb:{id}[:{season}[:{episode}]]
//	tt{digits}[:{season}[:{episode}]]
//	{id}[:{season}[:{episode}]]
//
// A season or episode that is not a positive number is treated as absent.
func ParseContentID(kind metadata.MediaKind, id string) (metadata.ContentRef, error) {
	ref := metadata.ContentRef{Kind: kind}
	id = strings.TrimSpace(id)

	var parts []string
	switch {
	case strings.HasPrefix(id, tmdbPrefix):
		parts = strings.Split(strings.TrimPrefix(id, tmdbPrefix), ":")
		n, err := strconv.Atoi(parts[0])
		if err != nil || n <= 0 {
			return ref, fmt.Errorf("%w: %q", ErrUnsupportedID, id)
		}
		ref.CanonicalID = n
	case strings.HasPrefix(id, "tt"):
		parts = strings.Split(id, ":")
		if !isDigits(parts[0][2:]) {
			return ref, fmt.Errorf("%w: %q", ErrUnsupportedID, id)
		}
		ref.ExternalID = parts[0]
	default:
		parts = strings.Split(id, ":")
		n, err := strconv.Atoi(parts[0])
		if err != nil || n <= 0 {
			return ref, fmt.Errorf("%w: %q", ErrUnsupportedID, id)
		}
		ref.CanonicalID = n
	}

	if len(parts) >= 2 {
		ref.Season = positive(parts[1])
	}
	if len(parts) >= 3 && ref.Season > 0 {
		ref.Episode = positive(parts[2])
	}
	return ref, nil
}

func positive(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
