package wizard

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"k8s.io/apimachinery/pkg/api/resource"
)

// appNameRegex validates the application name: lowercase alphanumeric
// with hyphens, short enough that the derived -builder name stays a
// valid object name.
var appNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,53}[a-z0-9])?$`)

// runApplicationGroup prompts for the application name and the
// configuration repository.
func runApplicationGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Application Name").
				Description("Lowercase alphanumeric characters or hyphens. Names every object of the deployment.").
				Placeholder("release-bot").
				Value(&result.AppName).
				Validate(validateAppName),
			huh.NewInput().
				Title("Configuration Repository").
				Description("Git repository holding the release-bot configuration").
				Placeholder("https://github.com/user/release-conf.git").
				Value(&result.ConfigurationRepository).
				Validate(validateRepository),
			huh.NewInput().
				Title("Configuration Directory (Optional)").
				Description("Directory within the repository to build from. Leave empty for the repository root.").
				Placeholder("deploy/prod (or leave empty)").
				Value(&result.ConfigurationDir),
		).Title("Application"),
	).RunWithContext(ctx)
}

// runClusterGroup prompts for namespace, source secret and replicas.
func runClusterGroup(ctx context.Context, result *WizardResult) error {
	result.SourceSecret = DefaultSourceSecretOption
	result.Replicas = 1

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Namespace (Optional)").
				Description("OpenShift project to deploy into. Leave empty for the current project.").
				Placeholder("my-project (or leave empty)").
				Value(&result.Namespace),
			huh.NewInput().
				Title("Source Secret").
				Description("Secret used to clone the configuration repository").
				Value(&result.SourceSecret),
			huh.NewSelect[int]().
				Title("Replicas").
				Description("Number of release-bot pods to run").
				Options(ReplicaCountOptions...).
				Value(&result.Replicas),
		).Title("Cluster"),
	).RunWithContext(ctx)
}

// runBuildGroup prompts for the builder image and the GitHub webhook.
func runBuildGroup(ctx context.Context, result *WizardResult) error {
	result.BuilderImage = BuilderImages[0].Value

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Builder Image").
				Description("Source-to-image builder the bot image is built on").
				Options(BuilderImagesToOptions()...).
				Value(&result.BuilderImage),
			huh.NewConfirm().
				Title("Enable GitHub Webhook?").
				Description("Adds a webhook trigger so pushes to the configuration repository start a build").
				Value(&result.EnableWebhook),
		).Title("Build"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if result.EnableWebhook {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Webhook Secret (Optional)").
					Description("Secret guarding the webhook URL. Leave empty to generate one.").
					Value(&result.WebhookSecret),
			).Title("Webhook"),
		).RunWithContext(ctx)
	}

	return nil
}

// runResourcesGroup prompts for the pod resource envelope (advanced
// mode).
func runResourcesGroup(ctx context.Context, opts *AdvancedOptions) error {
	opts.CPURequest = "100m"
	opts.MemoryRequest = "128Mi"
	opts.CPULimit = "400m"
	opts.MemoryLimit = "512Mi"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("CPU Request").
				Description("CPU guaranteed to each pod").
				Value(&opts.CPURequest).
				Validate(validateQuantity),
			huh.NewInput().
				Title("Memory Request").
				Description("Memory guaranteed to each pod").
				Value(&opts.MemoryRequest).
				Validate(validateQuantity),
			huh.NewInput().
				Title("CPU Limit").
				Description("Maximum CPU each pod may use").
				Value(&opts.CPULimit).
				Validate(validateQuantity),
			huh.NewInput().
				Title("Memory Limit").
				Description("Maximum memory each pod may use").
				Value(&opts.MemoryLimit).
				Validate(validateQuantity),
		).Title("Resources"),
	).RunWithContext(ctx)
}

// validateAppName validates the application name format.
func validateAppName(s string) error {
	if s == "" {
		return errAppNameRequired
	}
	if !appNameRegex.MatchString(s) {
		return errAppNameInvalid
	}
	return nil
}

// validateRepository validates the configuration repository URL.
func validateRepository(s string) error {
	if s == "" {
		return errRepositoryRequired
	}
	if strings.HasPrefix(s, "git@") && strings.Contains(s, ":") {
		return nil
	}
	parsed, err := url.Parse(s)
	if err != nil || parsed.Host == "" {
		return errRepositoryInvalid
	}
	switch parsed.Scheme {
	case "http", "https", "git", "ssh":
		return nil
	default:
		return errRepositoryInvalid
	}
}

// validateQuantity validates a Kubernetes resource quantity string.
func validateQuantity(s string) error {
	if s == "" {
		return errQuantityRequired
	}
	if _, err := resource.ParseQuantity(s); err != nil {
		return errQuantityInvalid
	}
	return nil
}
