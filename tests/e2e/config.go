//go:build e2e

package e2e

import (
	"os"
	"strings"
)

// Config controls how the end-to-end suite talks to the cluster and
// which optional phases it runs.
type Config struct {
	// Kubeconfig is the path to a kubeconfig with access to an
	// OpenShift cluster. The suite skips every test when it is unset.
	Kubeconfig string

	// Namespace is the namespace the suite deploys into.
	Namespace string

	// Repository is the configuration repository used for test
	// deployments. Builds triggered from it are expected to fail
	// unless WaitForBuild is set and the repository is real.
	Repository string

	// WaitForBuild makes the lifecycle test wait for the first build
	// to complete instead of only checking that objects exist.
	WaitForBuild bool

	// OperatorInstalled enables the operator tests. They require the
	// releasebot-operator to be running against the target cluster.
	OperatorInstalled bool

	// KeepApps leaves the deployed objects behind for inspection.
	KeepApps bool
}

// LoadConfig reads the suite configuration from environment variables.
func LoadConfig() *Config {
	namespace := os.Getenv("RELEASEBOT_E2E_NAMESPACE")
	repository := os.Getenv("RELEASEBOT_E2E_REPOSITORY")
	if repository == "" {
		repository = "https://github.com/user-cont/release-bot"
	}
	return &Config{
		Kubeconfig:        os.Getenv("RELEASEBOT_E2E_KUBECONFIG"),
		Namespace:         namespace,
		Repository:        repository,
		WaitForBuild:      getEnvBool("RELEASEBOT_E2E_WAIT_BUILD"),
		OperatorInstalled: getEnvBool("RELEASEBOT_E2E_OPERATOR"),
		KeepApps:          getEnvBool("RELEASEBOT_E2E_KEEP_APPS"),
	}
}

// getEnvBool returns true if the environment variable is set to a truthy
// value (case-insensitive).
func getEnvBool(key string) bool {
	val := strings.ToLower(os.Getenv(key))
	return val == "true" || val == "1" || val == "yes"
}
