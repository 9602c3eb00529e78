package cluster

import (
	"context"
	"testing"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/shresthagrawal/release-bot/internal/manifest"
)

// deployApp applies the test spec and fakes the status a cluster would
// report after one build and one successful rollout.
func deployApp(t *testing.T, c *Client, buildPhase buildv1.BuildPhase) {
	t.Helper()
	ctx := context.Background()

	_, err := c.Apply(ctx, testClusterSpec())
	require.NoError(t, err)

	bc, err := c.build.BuildV1().BuildConfigs(testNamespace).Get(ctx, "greeter", metav1.GetOptions{})
	require.NoError(t, err)
	bc.Status.LastVersion = 1
	_, err = c.build.BuildV1().BuildConfigs(testNamespace).Update(ctx, bc, metav1.UpdateOptions{})
	require.NoError(t, err)

	build := &buildv1.Build{
		ObjectMeta: metav1.ObjectMeta{Name: "greeter-1", Namespace: testNamespace},
		Status:     buildv1.BuildStatus{Phase: buildPhase},
	}
	_, err = c.build.BuildV1().Builds(testNamespace).Create(ctx, build, metav1.CreateOptions{})
	require.NoError(t, err)

	dc, err := c.apps.AppsV1().DeploymentConfigs(testNamespace).Get(ctx, "greeter", metav1.GetOptions{})
	require.NoError(t, err)
	dc.Status.LatestVersion = 1
	dc.Status.ReadyReplicas = 1
	dc.Status.UpdatedReplicas = 1
	dc.Status.Conditions = []appsv1.DeploymentCondition{
		{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
	}
	_, err = c.apps.AppsV1().DeploymentConfigs(testNamespace).Update(ctx, dc, metav1.UpdateOptions{})
	require.NoError(t, err)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient()
	deployApp(t, c, buildv1.BuildPhaseComplete)

	status, err := c.Status(context.Background(), "greeter")
	require.NoError(t, err)

	assert.Equal(t, "greeter", status.AppName)
	assert.Equal(t, testNamespace, status.Namespace)
	assert.Equal(t, manifest.DefaultBuilderImage, status.BuilderImage)

	require.NotNil(t, status.LatestBuild)
	assert.Equal(t, "greeter-1", status.LatestBuild.Name)
	assert.Equal(t, string(buildv1.BuildPhaseComplete), status.LatestBuild.Phase)

	require.NotNil(t, status.Deployment)
	assert.Equal(t, int64(1), status.Deployment.LatestVersion)
	assert.Equal(t, int32(1), status.Deployment.ReadyReplicas)
	assert.True(t, status.Deployment.Available)

	assert.True(t, status.Ready)
}

func TestStatusNotReadyWhileBuilding(t *testing.T) {
	t.Parallel()

	c := newTestClient()
	deployApp(t, c, buildv1.BuildPhaseRunning)

	status, err := c.Status(context.Background(), "greeter")
	require.NoError(t, err)

	require.NotNil(t, status.LatestBuild)
	assert.Equal(t, string(buildv1.BuildPhaseRunning), status.LatestBuild.Phase)
	assert.False(t, status.Ready)
}

func TestStatusBeforeFirstBuild(t *testing.T) {
	t.Parallel()

	c := newTestClient()
	_, err := c.Apply(context.Background(), testClusterSpec())
	require.NoError(t, err)

	status, err := c.Status(context.Background(), "greeter")
	require.NoError(t, err)

	assert.Nil(t, status.LatestBuild)
	require.NotNil(t, status.Deployment)
	assert.False(t, status.Deployment.Available)
	assert.False(t, status.Ready)
}

func TestStatusNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient()

	_, err := c.Status(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
