package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"

	"github.com/angelospk/streailer"
	"github.com/angelospk/streailer/pkg/core/metadata"
)

// MockStreamClient is a mock implementation of StreamClient using testify/mock
type MockStreamClient struct {
	mock.Mock
}

// Ensure MockStreamClient satisfies StreamClient
var _ StreamClient = (*MockStreamClient)(nil)

func (m *MockStreamClient) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockStreamClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStreamClient) Streams(ctx context.Context, ref metadata.ContentRef, cfg metadata.ResolutionConfig) []metadata.StreamResult {
	args := m.Called(ctx, ref, cfg)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]metadata.StreamResult)
}

// resetFlags restores every subcommand flag to its default, since cobra keeps
// flag state between Execute calls.
func resetFlags() {
	for _, c := range RootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

// executeCommand runs the root command with args against mockClient.
func executeCommand(t *testing.T, mockClient *MockStreamClient, args ...string) (string, string, error) {
	t.Helper()

	originalNewClientFunc := NewClientFunc
	t.Cleanup(func() { NewClientFunc = originalNewClientFunc })
	NewClientFunc = func(cfg streailer.Config) (StreamClient, error) {
		return mockClient, nil
	}

	viper.Set(CfgKeyTMDBAPIKey, "test-api-key")
	viper.Set(CfgKeyLogLevel, "error")
	t.Cleanup(func() {
		viper.Set(CfgKeyTMDBAPIKey, "")
		viper.Set(CfgKeyLogLevel, "info")
	})

	resetFlags()
	outBuf := bytes.NewBufferString("")
	errBuf := bytes.NewBufferString("")
	RootCmd.SetOut(outBuf)
	RootCmd.SetErr(errBuf)
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()

	RootCmd.SetArgs([]string{})
	return outBuf.String(), errBuf.String(), err
}
