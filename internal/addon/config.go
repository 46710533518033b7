package addon

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/angelospk/streailer/pkg/core/metadata"
)

// flexBool accepts JSON booleans as well as "true"/"false" strings.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.TrimSpace(string(data)), `"`) {
	case "true", "1", "on":
		*b = true
	default:
		*b = false
	}
	return nil
}

type rawConfig struct {
	Language      string   `json:"language"`
	ExternalLink  flexBool `json:"externalLink"`
	IncludeRecaps flexBool `json:"includeRecaps"`
	RecapsOnly    flexBool `json:"recapsOnly"`
}

// DecodeConfig parses the URL-encoded JSON path segment carrying the user's
// options. An empty segment yields the defaults; a malformed one is an error
// and the caller should fall back to the defaults.
func DecodeConfig(segment, defaultLanguage string) (metadata.ResolutionConfig, error) {
	cfg := metadata.DefaultResolutionConfig()
	if defaultLanguage != "" {
		cfg.Language = defaultLanguage
	}
	if strings.TrimSpace(segment) == "" {
		return cfg, nil
	}

	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return cfg, fmt.Errorf("failed to unescape config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal([]byte(decoded), &raw); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	if lang := strings.TrimSpace(raw.Language); lang != "" {
		cfg.Language = lang
	}
	cfg.PreferExternalLink = bool(raw.ExternalLink)
	cfg.IncludeRecaps = bool(raw.IncludeRecaps)
	cfg.RecapsOnly = bool(raw.RecapsOnly)
	return cfg, nil
}
