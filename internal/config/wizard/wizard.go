package wizard

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shresthagrawal/release-bot/internal/template/generator"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Application
	AppName                 string
	ConfigurationRepository string
	ConfigurationDir        string

	// Cluster
	Namespace    string
	SourceSecret string
	Replicas     int

	// Build
	BuilderImage  string
	EnableWebhook bool
	WebhookSecret string

	// Advanced options (only set in advanced mode)
	AdvancedOptions *AdvancedOptions
}

// AdvancedOptions holds advanced configuration options.
type AdvancedOptions struct {
	CPURequest    string
	MemoryRequest string
	CPULimit      string
	MemoryLimit   string

	Labels map[string]string
}

// RunWizard runs the interactive configuration wizard.
// If advanced is true, additional configuration options are shown.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runApplicationGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("application: %w", err)
	}

	if err := runClusterGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}

	if err := runBuildGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	// A webhook needs a secret; generate one when the user enabled the
	// webhook without typing their own.
	if result.EnableWebhook && result.WebhookSecret == "" {
		secret, err := generateWebhookSecret()
		if err != nil {
			return nil, fmt.Errorf("webhook secret: %w", err)
		}
		result.WebhookSecret = secret
	}

	if advanced {
		advOpts := &AdvancedOptions{}

		if err := runResourcesGroup(ctx, advOpts); err != nil {
			return nil, fmt.Errorf("resources: %w", err)
		}

		result.AdvancedOptions = advOpts
	}

	return result, nil
}

// generateWebhookSecret produces a 40 character alphanumeric secret,
// the same shape the cluster template generates.
func generateWebhookSecret() (string, error) {
	gen := generator.NewExpressionValueGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	value, err := gen.GenerateValue("[a-zA-Z0-9]{40}")
	if err != nil {
		return "", err
	}
	secret, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("generated secret is not a string")
	}
	return secret, nil
}
