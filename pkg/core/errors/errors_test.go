package errors_test

import (
	"context"
	"fmt"
	"testing"

	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"config", coreerrors.ErrConfigurationMissing, "configuration_missing"},
		{"wrapped unavailable", fmt.Errorf("tmdb find: %w", coreerrors.ErrUpstreamUnavailable), "upstream_unavailable"},
		{"wrapped empty", fmt.Errorf("no results: %w", coreerrors.ErrUpstreamEmpty), "upstream_empty"},
		{"extraction", fmt.Errorf("no video id: %w", coreerrors.ErrExtractionFailed), "extraction_failed"},
		{"validation", coreerrors.ErrValidationRejected, "validation_rejected"},
		{"foreign", context.Canceled, "other"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coreerrors.Kind(tc.err))
		})
	}
}
