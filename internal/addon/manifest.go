package addon

import (
	"github.com/angelospk/streailer/pkg/core/locale"
	"github.com/angelospk/streailer/pkg/core/metadata"
)

const (
	ManifestID      = "org.streailer.trailer"
	ManifestVersion = "1.1.3"
	ManifestName    = "Streailer - Trailer Provider"
)

// Manifest describes the addon to the player.
type Manifest struct {
	ID            string        `json:"id"`
	Version       string        `json:"version"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Resources     []string      `json:"resources"`
	Types         []string      `json:"types"`
	IDPrefixes    []string      `json:"idPrefixes"`
	Catalogs      []interface{} `json:"catalogs"`
	BehaviorHints ManifestHints `json:"behaviorHints"`
	Config        []ConfigEntry `json:"config"`
}

type ManifestHints struct {
	Configurable bool `json:"configurable"`
}

// ConfigEntry is one user option shown by the player's configuration UI.
type ConfigEntry struct {
	Key      string      `json:"key"`
	Type     string      `json:"type"` // "select" or "checkbox"
	Title    string      `json:"title"`
	Options  []string    `json:"options,omitempty"`
	Default  interface{} `json:"default"`
	Required bool        `json:"required,omitempty"`
}

// NewManifest builds the manifest with defaultLanguage preselected.
func NewManifest(defaultLanguage string) Manifest {
	profiles := locale.Supported()
	tags := make([]string, 0, len(profiles))
	for _, p := range profiles {
		tags = append(tags, p.Tag)
	}

	return Manifest{
		ID:          ManifestID,
		Version:     ManifestVersion,
		Name:        ManifestName,
		Description: "Trailer provider with multi-language support. TMDB → YouTube fallback → TMDB en-US",
		Resources:   []string{"stream"},
		Types:       []string{string(metadata.Movie), string(metadata.Series)},
		IDPrefixes:  []string{"tt", tmdbPrefix},
		Catalogs:    []interface{}{},
		BehaviorHints: ManifestHints{
			Configurable: true,
		},
		Config: []ConfigEntry{
			{Key: "language", Type: "select", Title: "Trailer Language", Options: tags, Default: defaultLanguage, Required: true},
			{Key: "externalLink", Type: "checkbox", Title: "External Link", Default: false},
			{Key: "includeRecaps", Type: "checkbox", Title: "Include Recaps", Default: false},
			{Key: "recapsOnly", Type: "checkbox", Title: "Recaps Only", Default: false},
		},
	}
}
