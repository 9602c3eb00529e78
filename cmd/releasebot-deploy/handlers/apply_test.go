package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	templatev1 "github.com/openshift/api/template/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shresthagrawal/release-bot/internal/cluster"
	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/manifest"
	"github.com/shresthagrawal/release-bot/internal/util/labels"
)

// saveAndRestoreFactories saves all factory function variables and
// restores them when the test finishes. Tests in this package mutate
// package state and must not run in parallel.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origNewClusterClient := newClusterClient
	origLoadConfigFile := loadConfigFile
	origFileExists := fileExists
	origNewManagedClient := newManagedClient
	origRunWizard := runWizard
	origBuildWizardConfig := buildWizardConfig
	origWriteConfigFile := writeConfigFile
	origConfirmOverwrite := confirmOverwrite
	origIsInteractiveTTY := isInteractiveTTY
	origReadFile := readFile
	origConfirmDelete := confirmDelete

	t.Cleanup(func() {
		newClusterClient = origNewClusterClient
		loadConfigFile = origLoadConfigFile
		fileExists = origFileExists
		newManagedClient = origNewManagedClient
		runWizard = origRunWizard
		buildWizardConfig = origBuildWizardConfig
		writeConfigFile = origWriteConfigFile
		confirmOverwrite = origConfirmOverwrite
		isInteractiveTTY = origIsInteractiveTTY
		readFile = origReadFile
		confirmDelete = origConfirmDelete
	})
}

// mockClusterClient implements clusterClient for testing.
type mockClusterClient struct {
	namespace string

	applyResults []cluster.Result
	applyErr     error
	appliedSpecs []manifest.Spec

	secretExists bool
	secretErr    error

	waitBuildErr     error
	waitImageErr     error
	waitRolloutErr   error
	waitedForBuild   bool
	waitedForImage   bool
	waitedForRollout bool

	status    *cluster.Status
	statusErr error

	deleteResults []cluster.Result
	deleteErr     error
	deletedApps   []string

	fleetResults []cluster.Result
	fleetErr     error
	fleetDeleted bool

	pushResult cluster.Result
	pushErr    error
	pushed     *templatev1.Template
}

func (m *mockClusterClient) Namespace() string {
	if m.namespace == "" {
		return "release-bots"
	}
	return m.namespace
}

func (m *mockClusterClient) Apply(_ context.Context, spec manifest.Spec) ([]cluster.Result, error) {
	m.appliedSpecs = append(m.appliedSpecs, spec)
	return m.applyResults, m.applyErr
}

func (m *mockClusterClient) SecretExists(_ context.Context, _ string) (bool, error) {
	return m.secretExists, m.secretErr
}

func (m *mockClusterClient) WaitForBuild(_ context.Context, _ string, _ time.Duration) error {
	m.waitedForBuild = true
	return m.waitBuildErr
}

func (m *mockClusterClient) WaitForImage(_ context.Context, _ string, _ time.Duration) error {
	m.waitedForImage = true
	return m.waitImageErr
}

func (m *mockClusterClient) WaitForRollout(_ context.Context, _ string, _ time.Duration) error {
	m.waitedForRollout = true
	return m.waitRolloutErr
}

func (m *mockClusterClient) Status(_ context.Context, _ string) (*cluster.Status, error) {
	return m.status, m.statusErr
}

func (m *mockClusterClient) Delete(_ context.Context, app string) ([]cluster.Result, error) {
	m.deletedApps = append(m.deletedApps, app)
	return m.deleteResults, m.deleteErr
}

func (m *mockClusterClient) DeleteFleet(_ context.Context) ([]cluster.Result, error) {
	m.fleetDeleted = true
	return m.fleetResults, m.fleetErr
}

func (m *mockClusterClient) PushTemplate(_ context.Context, desired *templatev1.Template) (cluster.Result, error) {
	m.pushed = desired
	return m.pushResult, m.pushErr
}

// useMockCluster points the factories at a mock client and a fixed
// configuration file.
func useMockCluster(mock *mockClusterClient, cfg *config.Config) {
	newClusterClient = func(_, _ string) (clusterClient, error) {
		return mock, nil
	}
	fileExists = func(_ string) bool { return true }
	loadConfigFile = func(_ string) (*config.Config, error) {
		return cfg, nil
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{
		AppName:                 "ochotnice",
		ConfigurationRepository: "https://github.com/example/ochotnice-conf",
		Namespace:               "release-bots",
	}
	cfg.ApplyDefaults()
	return cfg
}

func applyResults() []cluster.Result {
	return []cluster.Result{
		{Kind: "imagestream", Name: "ochotnice-builder", Action: cluster.ActionCreated},
		{Kind: "imagestream", Name: "ochotnice", Action: cluster.ActionCreated},
		{Kind: "buildconfig", Name: "ochotnice", Action: cluster.ActionCreated},
		{Kind: "deploymentconfig", Name: "ochotnice", Action: cluster.ActionCreated},
	}
}

func TestApply_Success(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &mockClusterClient{applyResults: applyResults(), secretExists: true}
	useMockCluster(mock, testConfig())

	err := Apply(context.Background(), ApplyOptions{})
	require.NoError(t, err)

	require.Len(t, mock.appliedSpecs, 1)
	assert.Equal(t, "ochotnice", mock.appliedSpecs[0].AppName)
	assert.Equal(t, "release-bots", mock.appliedSpecs[0].Namespace)
	assert.Equal(t, labels.ManagedByCLI, mock.appliedSpecs[0].Labels[labels.KeyManagedBy])
	assert.False(t, mock.waitedForBuild, "should not wait without --wait")
}

func TestApply_NamespaceFlagOverridesConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &mockClusterClient{applyResults: applyResults(), secretExists: true}
	useMockCluster(mock, testConfig())

	err := Apply(context.Background(), ApplyOptions{Namespace: "staging"})
	require.NoError(t, err)

	require.Len(t, mock.appliedSpecs, 1)
	assert.Equal(t, "staging", mock.appliedSpecs[0].Namespace)
}

func TestApply_MissingConfigFile(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }

	err := Apply(context.Background(), ApplyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "releasebot.yaml not found")
	assert.Contains(t, err.Error(), "releasebot-deploy init")
}

func TestApply_ConfigLoadError(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return true }
	loadConfigFile = func(_ string) (*config.Config, error) {
		return nil, errors.New("app_name is required")
	}

	err := Apply(context.Background(), ApplyOptions{ConfigPath: "broken.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApply_ClusterError(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &mockClusterClient{applyErr: errors.New("connection refused"), secretExists: true}
	useMockCluster(mock, testConfig())

	err := Apply(context.Background(), ApplyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply failed")
}

func TestApply_MissingSecretIsOnlyAWarning(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &mockClusterClient{applyResults: applyResults(), secretExists: false}
	useMockCluster(mock, testConfig())

	err := Apply(context.Background(), ApplyOptions{})
	require.NoError(t, err)
	require.Len(t, mock.appliedSpecs, 1)
}

func TestApply_WaitRunsAllPhases(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &mockClusterClient{applyResults: applyResults(), secretExists: true}
	useMockCluster(mock, testConfig())

	err := Apply(context.Background(), ApplyOptions{Wait: true, Timeout: time.Minute})
	require.NoError(t, err)

	assert.True(t, mock.waitedForBuild)
	assert.True(t, mock.waitedForImage)
	assert.True(t, mock.waitedForRollout)
}

func TestApply_WaitBuildFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &mockClusterClient{
		applyResults: applyResults(),
		secretExists: true,
		waitBuildErr: errors.New("build ochotnice-1 ended with phase Failed"),
	}
	useMockCluster(mock, testConfig())

	err := Apply(context.Background(), ApplyOptions{Wait: true, Timeout: time.Minute})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build did not complete")
	assert.False(t, mock.waitedForImage, "should not wait for the image after a failed build")
	assert.False(t, mock.waitedForRollout, "should not wait for rollout after a failed build")
}

func TestApply_WaitRolloutFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &mockClusterClient{
		applyResults:   applyResults(),
		secretExists:   true,
		waitRolloutErr: errors.New("deployment ochotnice failed to progress"),
	}
	useMockCluster(mock, testConfig())

	err := Apply(context.Background(), ApplyOptions{Wait: true, Timeout: time.Minute})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollout did not complete")
}

func TestPrintResults(t *testing.T) {
	// Only verifies the print helpers do not panic on edge inputs.
	printResults(nil)
	printResults(applyResults())
	printApplySuccess("ochotnice", "release-bots", true)
	printApplySuccess("ochotnice", "release-bots", false)
}
