package cluster

import (
	"context"
	"fmt"

	templatev1 "github.com/openshift/api/template/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/util/retry"
)

// PushTemplate creates or updates the template object in the client's
// namespace, making it instantiable from the web console and from oc.
func (c *Client) PushTemplate(ctx context.Context, desired *templatev1.Template) (Result, error) {
	desired.Namespace = c.namespace
	result := Result{Kind: "template", Name: desired.Name, Action: ActionCreated}

	_, err := c.template.TemplateV1().Templates(c.namespace).Create(ctx, desired, metav1.CreateOptions{})
	if err == nil {
		return result, nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return result, fmt.Errorf("failed to create template %s: %w", desired.Name, err)
	}

	result.Action = ActionConfigured
	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		existing, err := c.template.TemplateV1().Templates(c.namespace).Get(ctx, desired.Name, metav1.GetOptions{})
		if err != nil {
			return err
		}
		existing.Labels = desired.Labels
		existing.Annotations = desired.Annotations
		existing.Objects = desired.Objects
		existing.Parameters = desired.Parameters
		existing.ObjectLabels = desired.ObjectLabels
		existing.Message = desired.Message
		_, err = c.template.TemplateV1().Templates(c.namespace).Update(ctx, existing, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return result, fmt.Errorf("failed to update template %s: %w", desired.Name, err)
	}
	return result, nil
}
