//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shresthagrawal/release-bot/internal/cluster"
	"github.com/shresthagrawal/release-bot/internal/manifest"
)

// TestDeployLifecycle deploys a bot against a real cluster and walks it
// through the full lifecycle: apply, re-apply, status, delete.
func TestDeployLifecycle(t *testing.T) {
	cfg := LoadConfig()
	client := newTestClient(t, cfg)

	app := uniqueAppName("e2e-bot")
	t.Logf("Deploying test application %s into namespace %s", app, client.Namespace())

	spec := manifest.Spec{
		AppName:                 app,
		ConfigurationRepository: cfg.Repository,
	}.WithDefaults()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if !cfg.KeepApps {
		defer func() {
			t.Log("Cleaning up test application...")
			if _, err := client.Delete(context.Background(), app); err != nil {
				t.Logf("cleanup failed: %v", err)
			}
		}()
	}

	// Apply must create all four objects.
	results, err := client.Apply(ctx, spec)
	require.NoError(t, err, "initial apply failed")
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, cluster.ActionCreated, r.Action, "%s %s should have been created", r.Kind, r.Name)
	}
	t.Logf("Created objects: %v", resultNames(results))

	// A second apply must converge without churn.
	results, err = client.Apply(ctx, spec)
	require.NoError(t, err, "second apply failed")
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, cluster.ActionConfigured, r.Action, "%s %s should have been configured", r.Kind, r.Name)
	}

	// Status must see the freshly deployed application.
	status, err := client.Status(ctx, app)
	require.NoError(t, err, "status failed")
	assert.Equal(t, app, status.AppName)
	assert.Equal(t, client.Namespace(), status.Namespace)
	assert.Equal(t, manifest.DefaultBuilderImage, status.BuilderImage)

	if cfg.WaitForBuild {
		t.Log("Waiting for the first build to complete...")
		buildCtx, buildCancel := context.WithTimeout(context.Background(), 20*time.Minute)
		defer buildCancel()
		require.NoError(t, client.WaitForBuild(buildCtx, app, 20*time.Minute), "build did not complete")

		status, err = client.Status(buildCtx, app)
		require.NoError(t, err)
		require.NotNil(t, status.LatestBuild)
		t.Logf("Build %s finished with phase %s", status.LatestBuild.Name, status.LatestBuild.Phase)
	}

	// Delete must remove everything apply created.
	deleted, err := client.Delete(ctx, app)
	require.NoError(t, err, "delete failed")
	assert.Len(t, deleted, 4)
	for _, r := range deleted {
		assert.Equal(t, cluster.ActionDeleted, r.Action)
	}

	_, err = client.Status(ctx, app)
	assert.Error(t, err, "status should fail once the application is gone")
}

// TestStatusUnknownApp verifies that asking for a never-deployed
// application fails instead of returning an empty status.
func TestStatusUnknownApp(t *testing.T) {
	cfg := LoadConfig()
	client := newTestClient(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err := client.Status(ctx, uniqueAppName("e2e-ghost"))
	assert.Error(t, err)
}

// TestTemplatePush installs the template object so it shows up in the
// cluster catalog. The template is deliberately left in place: pushing
// is idempotent and a present template is the normal state of a
// namespace managed by this tool.
func TestTemplatePush(t *testing.T) {
	cfg := LoadConfig()
	client := newTestClient(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := client.PushTemplate(ctx, manifest.Template())
	require.NoError(t, err, "template push failed")
	assert.Equal(t, manifest.TemplateName, result.Name)

	// Pushing again must update, not fail on the existing object.
	result, err = client.PushTemplate(ctx, manifest.Template())
	require.NoError(t, err, "second template push failed")
	assert.Equal(t, cluster.ActionConfigured, result.Action)
}
