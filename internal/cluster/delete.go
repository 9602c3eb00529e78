package cluster

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/shresthagrawal/release-bot/internal/util/labels"
	"github.com/shresthagrawal/release-bot/internal/util/naming"
)

// Delete removes the objects belonging to a single application. The
// deployment config goes first so running pods stop before their image
// stream disappears. Objects that do not exist are skipped, so deleting
// twice is harmless.
func (c *Client) Delete(ctx context.Context, app string) ([]Result, error) {
	type deletion struct {
		kind   string
		name   string
		delete func(ctx context.Context, name string) error
	}
	deletions := []deletion{
		{"deploymentconfig", naming.DeploymentConfig(app), func(ctx context.Context, name string) error {
			return c.apps.AppsV1().DeploymentConfigs(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
		}},
		{"buildconfig", naming.BuildConfig(app), func(ctx context.Context, name string) error {
			return c.build.BuildV1().BuildConfigs(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
		}},
		{"imagestream", naming.AppImageStream(app), func(ctx context.Context, name string) error {
			return c.image.ImageV1().ImageStreams(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
		}},
		{"imagestream", naming.BuilderImageStream(app), func(ctx context.Context, name string) error {
			return c.image.ImageV1().ImageStreams(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
		}},
	}

	var results []Result
	for _, d := range deletions {
		err := d.delete(ctx, d.name)
		if apierrors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return results, fmt.Errorf("failed to delete %s %s: %w", d.kind, d.name, err)
		}
		results = append(results, Result{Kind: d.kind, Name: d.name, Action: ActionDeleted})
	}
	return results, nil
}

// DeleteFleet removes every object in the namespace that carries the
// shared template label, across all applications. Objects deployed by
// other means are left alone.
func (c *Client) DeleteFleet(ctx context.Context) ([]Result, error) {
	opts := metav1.ListOptions{LabelSelector: labels.SelectorForFleet()}
	var results []Result

	dcs, err := c.apps.AppsV1().DeploymentConfigs(c.namespace).List(ctx, opts)
	if err != nil {
		return results, fmt.Errorf("failed to list deployment configs: %w", err)
	}
	for _, dc := range dcs.Items {
		if err := c.apps.AppsV1().DeploymentConfigs(c.namespace).Delete(ctx, dc.Name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
			return results, fmt.Errorf("failed to delete deploymentconfig %s: %w", dc.Name, err)
		}
		results = append(results, Result{Kind: "deploymentconfig", Name: dc.Name, Action: ActionDeleted})
	}

	bcs, err := c.build.BuildV1().BuildConfigs(c.namespace).List(ctx, opts)
	if err != nil {
		return results, fmt.Errorf("failed to list build configs: %w", err)
	}
	for _, bc := range bcs.Items {
		if err := c.build.BuildV1().BuildConfigs(c.namespace).Delete(ctx, bc.Name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
			return results, fmt.Errorf("failed to delete buildconfig %s: %w", bc.Name, err)
		}
		results = append(results, Result{Kind: "buildconfig", Name: bc.Name, Action: ActionDeleted})
	}

	streams, err := c.image.ImageV1().ImageStreams(c.namespace).List(ctx, opts)
	if err != nil {
		return results, fmt.Errorf("failed to list image streams: %w", err)
	}
	for _, is := range streams.Items {
		if err := c.image.ImageV1().ImageStreams(c.namespace).Delete(ctx, is.Name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
			return results, fmt.Errorf("failed to delete imagestream %s: %w", is.Name, err)
		}
		results = append(results, Result{Kind: "imagestream", Name: is.Name, Action: ActionDeleted})
	}

	return results, nil
}
