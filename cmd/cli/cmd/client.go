package cmd

import (
	"context"

	"github.com/angelospk/streailer"
	"github.com/angelospk/streailer/pkg/core/metadata"
)

// StreamClient is the subset of *streailer.Client used by the commands.
type StreamClient interface {
	Available() bool
	Ping(ctx context.Context) error
	Streams(ctx context.Context, ref metadata.ContentRef, cfg metadata.ResolutionConfig) []metadata.StreamResult
}

// NewClientFunc allows overriding the client creation for testing.
var NewClientFunc = func(cfg streailer.Config) (StreamClient, error) {
	client, err := streailer.New(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
