package config

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/shresthagrawal/release-bot/internal/manifest"
)

// DefaultConfigFile is the file name commands look for when no config
// path is given.
const DefaultConfigFile = "releasebot.yaml"

// Config holds the deployment configuration read from releasebot.yaml.
type Config struct {
	AppName                 string `mapstructure:"app_name" yaml:"app_name"`
	ConfigurationRepository string `mapstructure:"configuration_repository" yaml:"configuration_repository"`

	// ConfigurationDir selects a directory within the repository to
	// build from. Empty means the repository root.
	ConfigurationDir string `mapstructure:"configuration_dir" yaml:"configuration_dir,omitempty"`

	// Namespace the objects are created in. Empty means the current
	// kubeconfig context's namespace.
	Namespace string `mapstructure:"namespace" yaml:"namespace,omitempty"`

	BuilderImage string `mapstructure:"builder_image" yaml:"builder_image,omitempty"`
	SourceSecret string `mapstructure:"source_secret" yaml:"source_secret,omitempty"`

	// GithubWebhookSecret guards the build config's GitHub webhook.
	// Empty disables the webhook trigger.
	GithubWebhookSecret string `mapstructure:"github_webhook_secret" yaml:"github_webhook_secret,omitempty"`

	Replicas  int32           `mapstructure:"replicas" yaml:"replicas,omitempty"`
	Resources ResourcesConfig `mapstructure:"resources" yaml:"resources,omitempty"`

	// Labels are added to every object on top of the standard ones.
	Labels map[string]string `mapstructure:"labels" yaml:"labels,omitempty"`
}

// ResourcesConfig mirrors the pod resource envelope in the config file.
type ResourcesConfig struct {
	Requests ResourceList `mapstructure:"requests" yaml:"requests,omitempty"`
	Limits   ResourceList `mapstructure:"limits" yaml:"limits,omitempty"`
}

// ResourceList holds cpu and memory quantities as strings, the same
// notation Kubernetes manifests use.
type ResourceList struct {
	CPU    string `mapstructure:"cpu" yaml:"cpu,omitempty"`
	Memory string `mapstructure:"memory" yaml:"memory,omitempty"`
}

// IsZero reports whether no quantity is set.
func (r ResourceList) IsZero() bool {
	return r.CPU == "" && r.Memory == ""
}

// ApplyDefaults fills in defaults for every optional field.
func (c *Config) ApplyDefaults() {
	if c.BuilderImage == "" {
		c.BuilderImage = manifest.DefaultBuilderImage
	}
	if c.SourceSecret == "" {
		c.SourceSecret = manifest.DefaultSourceSecret
	}
	if c.Replicas == 0 {
		c.Replicas = manifest.DefaultReplicas
	}
}

// ManifestSpec converts the configuration into a manifest spec. The
// configuration must have been validated first.
func (c *Config) ManifestSpec() (manifest.Spec, error) {
	resources, err := c.Resources.ToRequirements()
	if err != nil {
		return manifest.Spec{}, fmt.Errorf("invalid resources: %w", err)
	}
	return manifest.Spec{
		AppName:                 c.AppName,
		ConfigurationRepository: c.ConfigurationRepository,
		ConfigurationDir:        c.ConfigurationDir,
		BuilderImage:            c.BuilderImage,
		SourceSecret:            c.SourceSecret,
		WebhookSecret:           c.GithubWebhookSecret,
		Namespace:               c.Namespace,
		Replicas:                c.Replicas,
		Resources:               resources,
		Labels:                  c.Labels,
	}.WithDefaults(), nil
}

// ToRequirements converts the string quantities into typed resource
// requirements. Empty lists convert to nil so downstream defaulting can
// tell "unset" from "set to nothing".
func (r ResourcesConfig) ToRequirements() (corev1.ResourceRequirements, error) {
	requests, err := r.Requests.toResourceList()
	if err != nil {
		return corev1.ResourceRequirements{}, fmt.Errorf("requests: %w", err)
	}
	limits, err := r.Limits.toResourceList()
	if err != nil {
		return corev1.ResourceRequirements{}, fmt.Errorf("limits: %w", err)
	}
	return corev1.ResourceRequirements{Requests: requests, Limits: limits}, nil
}

func (r ResourceList) toResourceList() (corev1.ResourceList, error) {
	if r.IsZero() {
		return nil, nil
	}
	out := corev1.ResourceList{}
	if r.CPU != "" {
		quantity, err := resource.ParseQuantity(r.CPU)
		if err != nil {
			return nil, fmt.Errorf("invalid cpu quantity %q: %w", r.CPU, err)
		}
		out[corev1.ResourceCPU] = quantity
	}
	if r.Memory != "" {
		quantity, err := resource.ParseQuantity(r.Memory)
		if err != nil {
			return nil, fmt.Errorf("invalid memory quantity %q: %w", r.Memory, err)
		}
		out[corev1.ResourceMemory] = quantity
	}
	return out, nil
}
