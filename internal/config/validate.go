package config

import (
	"fmt"
	"net/url"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apivalidation "k8s.io/apimachinery/pkg/util/validation"

	"github.com/shresthagrawal/release-bot/internal/util/naming"
)

// Validate checks the configuration for common errors and returns a
// detailed error if validation fails.
func (c *Config) Validate() error {
	if c.AppName == "" {
		return fmt.Errorf("app_name is required")
	}
	if err := c.validateAppName(); err != nil {
		return fmt.Errorf("app_name validation failed: %w", err)
	}

	if c.ConfigurationRepository == "" {
		return fmt.Errorf("configuration_repository is required")
	}
	if err := c.validateRepository(); err != nil {
		return fmt.Errorf("configuration_repository validation failed: %w", err)
	}

	if c.Replicas < 0 {
		return fmt.Errorf("replicas cannot be negative, got %d", c.Replicas)
	}

	requirements, err := c.Resources.ToRequirements()
	if err != nil {
		return fmt.Errorf("resources validation failed: %w", err)
	}
	if err := validateRequestsWithinLimits(requirements); err != nil {
		return fmt.Errorf("resources validation failed: %w", err)
	}

	return nil
}

// validateRequestsWithinLimits rejects requests above their limit. A
// pod spec built from such values never passes admission.
func validateRequestsWithinLimits(requirements corev1.ResourceRequirements) error {
	for name, request := range requirements.Requests {
		limit, ok := requirements.Limits[name]
		if !ok {
			continue
		}
		if request.Cmp(limit) > 0 {
			return fmt.Errorf("%s request %s exceeds limit %s", name, request.String(), limit.String())
		}
	}
	return nil
}

// validateAppName checks that every derived object name is a valid
// Kubernetes name. The builder image stream carries the longest suffix,
// so it is the one that binds the length.
func (c *Config) validateAppName() error {
	if errs := apivalidation.IsDNS1123Label(c.AppName); len(errs) > 0 {
		return fmt.Errorf("invalid app_name %q: %s", c.AppName, strings.Join(errs, ", "))
	}
	if errs := apivalidation.IsDNS1123Label(naming.BuilderImageStream(c.AppName)); len(errs) > 0 {
		return fmt.Errorf("app_name %q is too long: the derived name %q must be a valid object name",
			c.AppName, naming.BuilderImageStream(c.AppName))
	}
	return nil
}

// validateRepository checks the configuration repository looks like a
// clonable Git URL. SSH-style git@host:path addresses are accepted as
// well as http(s) and git schemes.
func (c *Config) validateRepository() error {
	repo := c.ConfigurationRepository
	if strings.HasPrefix(repo, "git@") && strings.Contains(repo, ":") {
		return nil
	}
	parsed, err := url.Parse(repo)
	if err != nil {
		return fmt.Errorf("invalid repository URL %q: %w", repo, err)
	}
	switch parsed.Scheme {
	case "http", "https", "git", "ssh":
		if parsed.Host == "" {
			return fmt.Errorf("repository URL %q has no host", repo)
		}
		return nil
	default:
		return fmt.Errorf("repository URL %q must use the http, https, git or ssh scheme", repo)
	}
}
