package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errAppNameRequired    = errors.New("application name is required")
	errAppNameInvalid     = errors.New("application name must be 1-55 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errRepositoryRequired = errors.New("configuration repository is required")
	errRepositoryInvalid  = errors.New("repository must be an http(s), git, ssh or git@host:path URL")
	errQuantityRequired   = errors.New("quantity is required")
	errQuantityInvalid    = errors.New("invalid quantity (expected Kubernetes notation, e.g. 100m or 128Mi)")
)
