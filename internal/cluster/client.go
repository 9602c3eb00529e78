package cluster

import (
	"fmt"

	appsclient "github.com/openshift/client-go/apps/clientset/versioned"
	buildclient "github.com/openshift/client-go/build/clientset/versioned"
	imageclient "github.com/openshift/client-go/image/clientset/versioned"
	templateclient "github.com/openshift/client-go/template/clientset/versioned"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the Kubernetes and OpenShift API clients used to manage
// release-bot deployments in a single namespace.
type Client struct {
	namespace string

	kube     kubernetes.Interface
	image    imageclient.Interface
	build    buildclient.Interface
	apps     appsclient.Interface
	template templateclient.Interface
}

// NewClient creates a client from a kubeconfig file. An empty path falls
// back to $KUBECONFIG and then to the default kubeconfig location. An
// empty namespace falls back to the namespace of the current context.
func NewClient(kubeconfigPath, namespace string) (*Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		rules.ExplicitPath = kubeconfigPath
	}
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{})

	config, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}

	if namespace == "" {
		namespace, _, err = clientConfig.Namespace()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve namespace: %w", err)
		}
	}

	kube, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	imageClient, err := imageclient.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create image client: %w", err)
	}

	buildClient, err := buildclient.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create build client: %w", err)
	}

	appsClient, err := appsclient.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create apps client: %w", err)
	}

	templateClient, err := templateclient.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create template client: %w", err)
	}

	return &Client{
		namespace: namespace,
		kube:      kube,
		image:     imageClient,
		build:     buildClient,
		apps:      appsClient,
		template:  templateClient,
	}, nil
}

// NewFromClients creates a client from pre-built clientsets. Tests use it
// to inject fakes.
func NewFromClients(namespace string, kube kubernetes.Interface, image imageclient.Interface, build buildclient.Interface, apps appsclient.Interface, template templateclient.Interface) *Client {
	return &Client{
		namespace: namespace,
		kube:      kube,
		image:     image,
		build:     build,
		apps:      apps,
		template:  template,
	}
}

// Namespace returns the namespace the client operates in.
func (c *Client) Namespace() string {
	return c.namespace
}
