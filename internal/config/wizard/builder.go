package wizard

import "github.com/shresthagrawal/release-bot/internal/config"

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		AppName:                 result.AppName,
		ConfigurationRepository: result.ConfigurationRepository,
		ConfigurationDir:        result.ConfigurationDir,
		Namespace:               result.Namespace,
		BuilderImage:            result.BuilderImage,
		SourceSecret:            result.SourceSecret,
		Replicas:                int32(result.Replicas),
	}

	if result.EnableWebhook {
		cfg.GithubWebhookSecret = result.WebhookSecret
	}

	if result.AdvancedOptions != nil {
		applyAdvancedOptions(cfg, result.AdvancedOptions)
	}

	return cfg
}

// applyAdvancedOptions applies advanced options to the config.
func applyAdvancedOptions(cfg *config.Config, opts *AdvancedOptions) {
	cfg.Resources = config.ResourcesConfig{
		Requests: config.ResourceList{
			CPU:    opts.CPURequest,
			Memory: opts.MemoryRequest,
		},
		Limits: config.ResourceList{
			CPU:    opts.CPULimit,
			Memory: opts.MemoryLimit,
		},
	}

	if len(opts.Labels) > 0 {
		cfg.Labels = opts.Labels
	}
}
