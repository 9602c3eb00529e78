package cluster

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SecretExists reports whether the named secret exists in the client's
// namespace. Builds pull the configuration repository with this secret,
// so the CLI checks for it before applying and warns when it is missing.
func (c *Client) SecretExists(ctx context.Context, name string) (bool, error) {
	_, err := c.kube.CoreV1().Secrets(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get secret: %w", err)
	}
	return true, nil
}
