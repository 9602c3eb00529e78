package cluster

import (
	"context"
	"fmt"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/util/retry"

	"github.com/shresthagrawal/release-bot/internal/manifest"
)

// Action describes what an operation did with a single object.
type Action string

const (
	ActionCreated    Action = "created"
	ActionConfigured Action = "configured"
	ActionDeleted    Action = "deleted"
)

// Result reports the outcome of an operation on a single object.
type Result struct {
	Kind   string
	Name   string
	Action Action
}

// Apply creates or updates the deployment objects for the given spec.
// Existing objects are overwritten with the desired spec and labels,
// anything else on them is left alone. Image streams are applied before
// the build config so the build strategy never references a stream that
// does not exist yet.
func (c *Client) Apply(ctx context.Context, spec manifest.Spec) ([]Result, error) {
	var results []Result
	for _, obj := range spec.Objects() {
		result, err := c.applyObject(ctx, obj)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (c *Client) applyObject(ctx context.Context, obj runtime.Object) (Result, error) {
	switch o := obj.(type) {
	case *imagev1.ImageStream:
		return c.applyImageStream(ctx, o)
	case *buildv1.BuildConfig:
		return c.applyBuildConfig(ctx, o)
	case *appsv1.DeploymentConfig:
		return c.applyDeploymentConfig(ctx, o)
	default:
		return Result{}, fmt.Errorf("unsupported object type %T", obj)
	}
}

func (c *Client) applyImageStream(ctx context.Context, desired *imagev1.ImageStream) (Result, error) {
	desired.Namespace = c.namespace
	result := Result{Kind: "imagestream", Name: desired.Name, Action: ActionCreated}

	_, err := c.image.ImageV1().ImageStreams(c.namespace).Create(ctx, desired, metav1.CreateOptions{})
	if err == nil {
		return result, nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return result, fmt.Errorf("failed to create image stream %s: %w", desired.Name, err)
	}

	result.Action = ActionConfigured
	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		existing, err := c.image.ImageV1().ImageStreams(c.namespace).Get(ctx, desired.Name, metav1.GetOptions{})
		if err != nil {
			return err
		}
		existing.Labels = desired.Labels
		existing.Spec = desired.Spec
		_, err = c.image.ImageV1().ImageStreams(c.namespace).Update(ctx, existing, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return result, fmt.Errorf("failed to update image stream %s: %w", desired.Name, err)
	}
	return result, nil
}

func (c *Client) applyBuildConfig(ctx context.Context, desired *buildv1.BuildConfig) (Result, error) {
	desired.Namespace = c.namespace
	result := Result{Kind: "buildconfig", Name: desired.Name, Action: ActionCreated}

	_, err := c.build.BuildV1().BuildConfigs(c.namespace).Create(ctx, desired, metav1.CreateOptions{})
	if err == nil {
		return result, nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return result, fmt.Errorf("failed to create build config %s: %w", desired.Name, err)
	}

	result.Action = ActionConfigured
	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		existing, err := c.build.BuildV1().BuildConfigs(c.namespace).Get(ctx, desired.Name, metav1.GetOptions{})
		if err != nil {
			return err
		}
		lastTriggered := buildTriggerState(existing)
		existing.Labels = desired.Labels
		existing.Spec = desired.Spec
		restoreBuildTriggerState(existing, lastTriggered)
		_, err = c.build.BuildV1().BuildConfigs(c.namespace).Update(ctx, existing, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return result, fmt.Errorf("failed to update build config %s: %w", desired.Name, err)
	}
	return result, nil
}

func (c *Client) applyDeploymentConfig(ctx context.Context, desired *appsv1.DeploymentConfig) (Result, error) {
	desired.Namespace = c.namespace
	result := Result{Kind: "deploymentconfig", Name: desired.Name, Action: ActionCreated}

	_, err := c.apps.AppsV1().DeploymentConfigs(c.namespace).Create(ctx, desired, metav1.CreateOptions{})
	if err == nil {
		return result, nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return result, fmt.Errorf("failed to create deployment config %s: %w", desired.Name, err)
	}

	result.Action = ActionConfigured
	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		existing, err := c.apps.AppsV1().DeploymentConfigs(c.namespace).Get(ctx, desired.Name, metav1.GetOptions{})
		if err != nil {
			return err
		}
		lastTriggered := deployTriggerState(existing)
		existing.Labels = desired.Labels
		existing.Spec = desired.Spec
		restoreDeployTriggerState(existing, lastTriggered)
		_, err = c.apps.AppsV1().DeploymentConfigs(c.namespace).Update(ctx, existing, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return result, fmt.Errorf("failed to update deployment config %s: %w", desired.Name, err)
	}
	return result, nil
}

// The platform records which image last fired an image change trigger
// inside the spec. Overwriting the spec must carry that record over,
// or every apply would retrigger a build or rollout.

func buildTriggerState(bc *buildv1.BuildConfig) string {
	for i := range bc.Spec.Triggers {
		if bc.Spec.Triggers[i].ImageChange != nil {
			return bc.Spec.Triggers[i].ImageChange.LastTriggeredImageID
		}
	}
	return ""
}

func restoreBuildTriggerState(bc *buildv1.BuildConfig, lastTriggered string) {
	for i := range bc.Spec.Triggers {
		if bc.Spec.Triggers[i].ImageChange != nil {
			bc.Spec.Triggers[i].ImageChange.LastTriggeredImageID = lastTriggered
		}
	}
}

func deployTriggerState(dc *appsv1.DeploymentConfig) string {
	for i := range dc.Spec.Triggers {
		if dc.Spec.Triggers[i].ImageChangeParams != nil {
			return dc.Spec.Triggers[i].ImageChangeParams.LastTriggeredImage
		}
	}
	return ""
}

func restoreDeployTriggerState(dc *appsv1.DeploymentConfig, lastTriggered string) {
	for i := range dc.Spec.Triggers {
		if dc.Spec.Triggers[i].ImageChangeParams != nil {
			dc.Spec.Triggers[i].ImageChangeParams.LastTriggeredImage = lastTriggered
		}
	}
}
