package cluster

import (
	"context"
	"fmt"
	"time"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/shresthagrawal/release-bot/internal/util/naming"
)

const pollInterval = 5 * time.Second

// newRCAvailableReason is the progressing condition reason set once the
// latest replication controller of a deployment config is fully available.
const newRCAvailableReason = "NewReplicationControllerAvailable"

// WaitForBuild waits until the most recent build of the application's
// build config completes. It fails as soon as the build enters a terminal
// failure phase.
func (c *Client) WaitForBuild(ctx context.Context, app string, timeout time.Duration) error {
	var buildName string
	return wait.PollImmediate(pollInterval, timeout, func() (bool, error) {
		if buildName == "" {
			bc, err := c.build.BuildV1().BuildConfigs(c.namespace).Get(ctx, naming.BuildConfig(app), metav1.GetOptions{})
			if err != nil || bc.Status.LastVersion == 0 {
				return false, nil
			}
			buildName = naming.Build(app, bc.Status.LastVersion)
		}

		build, err := c.build.BuildV1().Builds(c.namespace).Get(ctx, buildName, metav1.GetOptions{})
		if err != nil {
			return false, nil
		}

		switch build.Status.Phase {
		case buildv1.BuildPhaseComplete:
			return true, nil
		case buildv1.BuildPhaseFailed, buildv1.BuildPhaseError, buildv1.BuildPhaseCancelled:
			return false, fmt.Errorf("build %s ended with phase %s", buildName, build.Status.Phase)
		}
		return false, nil
	})
}

// WaitForImage waits until the application's image stream holds a tag
// event for the output tag, meaning a built image has landed in the
// registry and the deployment trigger can fire.
func (c *Client) WaitForImage(ctx context.Context, app string, timeout time.Duration) error {
	return wait.PollImmediate(pollInterval, timeout, func() (bool, error) {
		is, err := c.image.ImageV1().ImageStreams(c.namespace).Get(ctx, naming.AppImageStream(app), metav1.GetOptions{})
		if err != nil {
			return false, nil
		}
		return hasTagEvent(is, naming.OutputTag), nil
	})
}

// hasTagEvent reports whether the stream has recorded at least one
// event for the named tag.
func hasTagEvent(is *imagev1.ImageStream, tag string) bool {
	for _, t := range is.Status.Tags {
		if t.Tag == tag && len(t.Items) > 0 {
			return true
		}
	}
	return false
}

// WaitForRollout waits until the application's deployment config has
// rolled out its latest version and all replicas are available.
func (c *Client) WaitForRollout(ctx context.Context, app string, timeout time.Duration) error {
	return wait.PollImmediate(pollInterval, timeout, func() (bool, error) {
		dc, err := c.apps.AppsV1().DeploymentConfigs(c.namespace).Get(ctx, naming.DeploymentConfig(app), metav1.GetOptions{})
		if err != nil {
			return false, nil
		}
		return isRolloutComplete(dc)
	})
}

// isRolloutComplete checks the deployment config conditions. A rollout is
// complete when the deployment is available and the progressing condition
// reports the new replication controller as available. A progressing
// condition of False means the rollout failed and will not recover.
func isRolloutComplete(dc *appsv1.DeploymentConfig) (bool, error) {
	var available, progressing *appsv1.DeploymentCondition
	for i := range dc.Status.Conditions {
		switch dc.Status.Conditions[i].Type {
		case appsv1.DeploymentAvailable:
			available = &dc.Status.Conditions[i]
		case appsv1.DeploymentProgressing:
			progressing = &dc.Status.Conditions[i]
		}
	}

	if progressing != nil && progressing.Status == corev1.ConditionFalse {
		return false, fmt.Errorf("deployment %s failed to progress: %s", dc.Name, progressing.Message)
	}
	if available == nil || available.Status != corev1.ConditionTrue {
		return false, nil
	}
	if progressing == nil || progressing.Status != corev1.ConditionTrue || progressing.Reason != newRCAvailableReason {
		return false, nil
	}
	return true, nil
}
