package cluster

import (
	"context"
	"fmt"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/shresthagrawal/release-bot/internal/util/naming"
)

// Status is a point-in-time summary of one deployed application.
type Status struct {
	AppName      string            `json:"appName"`
	Namespace    string            `json:"namespace"`
	BuilderImage string            `json:"builderImage,omitempty"`
	LatestBuild  *BuildStatus      `json:"latestBuild,omitempty"`
	Deployment   *DeploymentStatus `json:"deployment,omitempty"`
	Ready        bool              `json:"ready"`
}

// BuildStatus describes the most recent build of the application.
type BuildStatus struct {
	Name      string       `json:"name"`
	Phase     string       `json:"phase"`
	StartedAt *metav1.Time `json:"startedAt,omitempty"`
}

// DeploymentStatus describes the state of the deployment config.
type DeploymentStatus struct {
	LatestVersion   int64 `json:"latestVersion"`
	Replicas        int32 `json:"replicas"`
	ReadyReplicas   int32 `json:"readyReplicas"`
	UpdatedReplicas int32 `json:"updatedReplicas"`
	Available       bool  `json:"available"`
}

// Status reports the current state of the named application. It returns
// an error when none of the application's objects exist in the namespace.
func (c *Client) Status(ctx context.Context, app string) (*Status, error) {
	status := &Status{AppName: app, Namespace: c.namespace}
	found := false

	is, err := c.image.ImageV1().ImageStreams(c.namespace).Get(ctx, naming.BuilderImageStream(app), metav1.GetOptions{})
	switch {
	case err == nil:
		found = true
		status.BuilderImage = builderSource(is)
	case !apierrors.IsNotFound(err):
		return nil, fmt.Errorf("failed to get builder image stream: %w", err)
	}

	bc, err := c.build.BuildV1().BuildConfigs(c.namespace).Get(ctx, naming.BuildConfig(app), metav1.GetOptions{})
	switch {
	case err == nil:
		found = true
		if bc.Status.LastVersion > 0 {
			status.LatestBuild = c.latestBuild(ctx, app, bc.Status.LastVersion)
		}
	case !apierrors.IsNotFound(err):
		return nil, fmt.Errorf("failed to get build config: %w", err)
	}

	dc, err := c.apps.AppsV1().DeploymentConfigs(c.namespace).Get(ctx, naming.DeploymentConfig(app), metav1.GetOptions{})
	switch {
	case err == nil:
		found = true
		status.Deployment = deploymentStatus(dc)
	case !apierrors.IsNotFound(err):
		return nil, fmt.Errorf("failed to get deployment config: %w", err)
	}

	if !found {
		return nil, fmt.Errorf("application %s not found in namespace %s", app, c.namespace)
	}

	status.Ready = isReady(status)
	return status, nil
}

// latestBuild looks up the numbered build the build config last
// instantiated. Builds can be pruned, in which case no build information
// is reported.
func (c *Client) latestBuild(ctx context.Context, app string, version int64) *BuildStatus {
	name := naming.Build(app, version)
	build, err := c.build.BuildV1().Builds(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil
	}
	return &BuildStatus{
		Name:      name,
		Phase:     string(build.Status.Phase),
		StartedAt: build.Status.StartTimestamp,
	}
}

func deploymentStatus(dc *appsv1.DeploymentConfig) *DeploymentStatus {
	available := false
	for _, cond := range dc.Status.Conditions {
		if cond.Type == appsv1.DeploymentAvailable && cond.Status == corev1.ConditionTrue {
			available = true
		}
	}
	return &DeploymentStatus{
		LatestVersion:   dc.Status.LatestVersion,
		Replicas:        dc.Spec.Replicas,
		ReadyReplicas:   dc.Status.ReadyReplicas,
		UpdatedReplicas: dc.Status.UpdatedReplicas,
		Available:       available,
	}
}

// isReady reports whether the application as a whole is up: the
// deployment must be available and the latest build, if there is one,
// must have completed.
func isReady(status *Status) bool {
	if status.Deployment == nil || !status.Deployment.Available {
		return false
	}
	if status.LatestBuild != nil && status.LatestBuild.Phase != string(buildv1.BuildPhaseComplete) {
		return false
	}
	return true
}

// builderSource returns the upstream image the builder stream tracks.
func builderSource(is *imagev1.ImageStream) string {
	for _, tag := range is.Spec.Tags {
		if tag.Name == naming.BuilderTag && tag.From != nil {
			return tag.From.Name
		}
	}
	return ""
}
