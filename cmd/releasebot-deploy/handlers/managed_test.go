package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/shresthagrawal/release-bot/api/v1alpha1"
	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/util/labels"
)

// useFakeManagedClient points the managed factory at a fake
// controller-runtime client.
func useFakeManagedClient(namespace string) client.Client {
	fakeClient := fake.NewClientBuilder().WithScheme(v1alpha1.Scheme).Build()
	newManagedClient = func(_ string) (client.Client, string, error) {
		return fakeClient, namespace, nil
	}
	return fakeClient
}

func TestApply_ManagedCreatesResource(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	cfg.GithubWebhookSecret = "hunter2"
	useMockCluster(&mockClusterClient{}, cfg)
	fakeClient := useFakeManagedClient("release-bots")

	err := Apply(context.Background(), ApplyOptions{Managed: true})
	require.NoError(t, err)

	got := &v1alpha1.ReleaseBotDeployment{}
	key := types.NamespacedName{Namespace: "release-bots", Name: "ochotnice"}
	require.NoError(t, fakeClient.Get(context.Background(), key, got))

	assert.Equal(t, "https://github.com/example/ochotnice-conf", got.Spec.ConfigurationRepository)
	assert.Equal(t, "hunter2", got.Spec.WebhookSecret)
	assert.Equal(t, labels.Fleet(), got.Labels)
	require.NotNil(t, got.Spec.Replicas)
	assert.Equal(t, int32(1), *got.Spec.Replicas)
	assert.Empty(t, got.Spec.AppName, "resource name carries the app name")
	assert.Equal(t, "ochotnice", got.EffectiveAppName())
}

func TestApply_ManagedUpdatesResource(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	useMockCluster(&mockClusterClient{}, cfg)
	fakeClient := useFakeManagedClient("release-bots")

	require.NoError(t, Apply(context.Background(), ApplyOptions{Managed: true}))

	cfg.Replicas = 3
	cfg.ConfigurationDir = "bots/ochotnice"
	require.NoError(t, Apply(context.Background(), ApplyOptions{Managed: true}))

	got := &v1alpha1.ReleaseBotDeployment{}
	key := types.NamespacedName{Namespace: "release-bots", Name: "ochotnice"}
	require.NoError(t, fakeClient.Get(context.Background(), key, got))

	assert.Equal(t, "bots/ochotnice", got.Spec.ConfigurationDir)
	require.NotNil(t, got.Spec.Replicas)
	assert.Equal(t, int32(3), *got.Spec.Replicas)
}

func TestApply_ManagedNamespaceFallback(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	cfg.Namespace = ""
	useMockCluster(&mockClusterClient{}, cfg)
	fakeClient := useFakeManagedClient("current-context")

	err := Apply(context.Background(), ApplyOptions{Managed: true})
	require.NoError(t, err)

	got := &v1alpha1.ReleaseBotDeployment{}
	key := types.NamespacedName{Namespace: "current-context", Name: "ochotnice"}
	require.NoError(t, fakeClient.Get(context.Background(), key, got))
}

func TestManagedResource_Resources(t *testing.T) {
	cfg := testConfig()
	cfg.Resources.Requests = config.ResourceList{CPU: "100m", Memory: "128Mi"}

	cr, err := managedResource(cfg, "release-bots")
	require.NoError(t, err)

	require.NotNil(t, cr.Spec.Resources)
	assert.Equal(t, "100m", cr.Spec.Resources.Requests.Cpu().String())
}

func TestManagedResource_NoResources(t *testing.T) {
	cr, err := managedResource(testConfig(), "release-bots")
	require.NoError(t, err)
	assert.Nil(t, cr.Spec.Resources)
}

func TestManagedResource_InvalidQuantity(t *testing.T) {
	cfg := testConfig()
	cfg.Resources.Limits = config.ResourceList{CPU: "not-a-cpu"}

	_, err := managedResource(cfg, "release-bots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resources")
}
