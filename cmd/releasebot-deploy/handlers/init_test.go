package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/config/wizard"
)

// useMockWizard wires a non-interactive wizard that yields the test
// configuration.
func useMockWizard(t *testing.T) *[]string {
	t.Helper()

	written := &[]string{}
	isInteractiveTTY = func() bool { return true }
	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context, _ bool) (*wizard.WizardResult, error) {
		return &wizard.WizardResult{}, nil
	}
	buildWizardConfig = func(_ *wizard.WizardResult) *config.Config {
		return testConfig()
	}
	writeConfigFile = func(_ *config.Config, outputPath string, _ bool) error {
		*written = append(*written, outputPath)
		return nil
	}
	return written
}

func TestInit_Success(t *testing.T) {
	saveAndRestoreFactories(t)

	written := useMockWizard(t)

	err := Init(context.Background(), "releasebot.yaml", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"releasebot.yaml"}, *written)
}

func TestInit_NotATerminal(t *testing.T) {
	saveAndRestoreFactories(t)

	isInteractiveTTY = func() bool { return false }

	err := Init(context.Background(), "releasebot.yaml", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestInit_OverwriteDeclined(t *testing.T) {
	saveAndRestoreFactories(t)

	useMockWizard(t)
	fileExists = func(_ string) bool { return true }
	confirmOverwrite = func(_ string) (bool, error) { return false, nil }
	runWizard = func(_ context.Context, _ bool) (*wizard.WizardResult, error) {
		t.Fatal("wizard must not run after a declined overwrite")
		return nil, nil
	}

	err := Init(context.Background(), "releasebot.yaml", false, false)
	require.NoError(t, err)
}

func TestInit_OverwriteAccepted(t *testing.T) {
	saveAndRestoreFactories(t)

	written := useMockWizard(t)
	fileExists = func(_ string) bool { return true }
	confirmOverwrite = func(_ string) (bool, error) { return true, nil }

	err := Init(context.Background(), "releasebot.yaml", false, false)
	require.NoError(t, err)
	assert.Len(t, *written, 1)
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreFactories(t)

	useMockWizard(t)
	runWizard = func(_ context.Context, _ bool) (*wizard.WizardResult, error) {
		return nil, errors.New("user aborted")
	}

	err := Init(context.Background(), "releasebot.yaml", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_WriteError(t *testing.T) {
	saveAndRestoreFactories(t)

	useMockWizard(t)
	writeConfigFile = func(_ *config.Config, _ string, _ bool) error {
		return errors.New("permission denied")
	}

	err := Init(context.Background(), "releasebot.yaml", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write configuration")
}
