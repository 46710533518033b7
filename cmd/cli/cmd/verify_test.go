package cmd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/angelospk/streailer/pkg/core/errors"
)

func TestVerifyCommand_Success(t *testing.T) {
	mockClient := new(MockStreamClient)
	mockClient.On("Available").Return(true)
	mockClient.On("Ping", mock.Anything).Return(nil).Once()

	output, _, err := executeCommand(t, mockClient, "verify")

	require.NoError(t, err)
	assert.Contains(t, output, "Verifying TMDB API key...")
	assert.Contains(t, output, "API key verified successfully.")
	mockClient.AssertExpectations(t)
}

func TestVerifyCommand_Failure(t *testing.T) {
	mockClient := new(MockStreamClient)
	mockClient.On("Available").Return(true)
	mockClient.On("Ping", mock.Anything).Return(fmt.Errorf("status 401: %w", coreerrors.ErrUpstreamUnavailable)).Once()

	_, _, err := executeCommand(t, mockClient, "verify")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key verification failed")
	assert.ErrorIs(t, err, coreerrors.ErrUpstreamUnavailable)
}

func TestVerifyCommand_NotConfigured(t *testing.T) {
	mockClient := new(MockStreamClient)
	mockClient.On("Available").Return(false)

	_, _, err := executeCommand(t, mockClient, "verify")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "STREAILER_TMDB_APIKEY")
	mockClient.AssertNotCalled(t, "Ping", mock.Anything)
}
