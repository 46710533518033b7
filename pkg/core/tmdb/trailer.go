package tmdb

// SupportedSite is the only video host whose keys are playable by clients.
const SupportedSite = "YouTube"

// typePriority orders video categories; category outranks the official flag.
var typePriority = []string{"Trailer", "Teaser", "Clip"}

// SelectBestTrailer picks the video to play from a TMDB listing.
// Only YouTube-hosted entries are considered. Category decides first
// (Trailer, Teaser, Clip), then the official flag within a category, then
// listing order. When no entry has a known category the first hosted entry
// wins. Returns nil when nothing is hosted on YouTube.
func SelectBestTrailer(videos []Video) *Video {
	hosted := make([]Video, 0, len(videos))
	for _, v := range videos {
		if v.Site == SupportedSite {
			hosted = append(hosted, v)
		}
	}
	if len(hosted) == 0 {
		return nil
	}

	for _, category := range typePriority {
		first := -1
		for i := range hosted {
			if hosted[i].Type != category {
				continue
			}
			if hosted[i].Official {
				return &hosted[i]
			}
			if first < 0 {
				first = i
			}
		}
		if first >= 0 {
			return &hosted[first]
		}
	}

	return &hosted[0]
}
