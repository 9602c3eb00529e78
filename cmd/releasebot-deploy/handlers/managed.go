package handlers

import (
	"context"
	"fmt"
	"log"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/shresthagrawal/release-bot/api/v1alpha1"
	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/util/labels"
	"github.com/shresthagrawal/release-bot/internal/util/ptr"
)

// newManagedClient creates the controller-runtime client used for
// managed deployments - can be replaced in tests for dependency
// injection. It returns the client and the namespace of the current
// kubeconfig context.
var newManagedClient = func(kubeconfigPath string) (client.Client, string, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		rules.ExplicitPath = kubeconfigPath
	}
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{})

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build kubeconfig: %w", err)
	}
	namespace, _, err := clientConfig.Namespace()
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve namespace: %w", err)
	}

	c, err := client.New(restConfig, client.Options{Scheme: v1alpha1.Scheme})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create client: %w", err)
	}
	return c, namespace, nil
}

// applyManaged writes a ReleaseBotDeployment resource instead of the
// raw objects and leaves reconciliation to the operator.
func applyManaged(ctx context.Context, cfg *config.Config, opts ApplyOptions) error {
	c, contextNamespace, err := newManagedClient(opts.Kubeconfig)
	if err != nil {
		return err
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = cfg.Namespace
	}
	if namespace == "" {
		namespace = contextNamespace
	}

	desired, err := managedResource(cfg, namespace)
	if err != nil {
		return err
	}

	log.Printf("Handing %s to the operator in namespace %s", desired.Name, namespace)

	existing := &v1alpha1.ReleaseBotDeployment{}
	err = c.Get(ctx, types.NamespacedName{Namespace: namespace, Name: desired.Name}, existing)
	switch {
	case apierrors.IsNotFound(err):
		if err := c.Create(ctx, desired); err != nil {
			return fmt.Errorf("failed to create releasebotdeployment %s: %w", desired.Name, err)
		}
		fmt.Printf("releasebotdeployment/%s created\n", desired.Name)
	case err != nil:
		return fmt.Errorf("failed to get releasebotdeployment %s: %w", desired.Name, err)
	default:
		existing.Labels = desired.Labels
		existing.Spec = desired.Spec
		if err := c.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update releasebotdeployment %s: %w", desired.Name, err)
		}
		fmt.Printf("releasebotdeployment/%s configured\n", desired.Name)
	}

	fmt.Println()
	fmt.Printf("The operator now owns this deployment.\n")
	fmt.Printf("Check it with: releasebot-deploy status %s\n", cfg.AppName)
	return nil
}

// managedResource converts a deployment configuration into the custom
// resource the operator reconciles. The resource is named after the
// application, so the spec's app name can stay empty.
func managedResource(cfg *config.Config, namespace string) (*v1alpha1.ReleaseBotDeployment, error) {
	cr := &v1alpha1.ReleaseBotDeployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.AppName,
			Namespace: namespace,
			Labels:    labels.Fleet(),
		},
		Spec: v1alpha1.ReleaseBotDeploymentSpec{
			ConfigurationRepository: cfg.ConfigurationRepository,
			ConfigurationDir:        cfg.ConfigurationDir,
			BuilderImage:            cfg.BuilderImage,
			SourceSecret:            cfg.SourceSecret,
			WebhookSecret:           cfg.GithubWebhookSecret,
			Replicas:                ptr.To(cfg.Replicas),
		},
	}

	if !cfg.Resources.Requests.IsZero() || !cfg.Resources.Limits.IsZero() {
		resources, err := cfg.Resources.ToRequirements()
		if err != nil {
			return nil, fmt.Errorf("invalid resources: %w", err)
		}
		cr.Spec.Resources = &resources
	}
	return cr, nil
}
