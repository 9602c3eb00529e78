//go:build e2e

package e2e

import (
	"fmt"
	"testing"
	"time"

	"github.com/shresthagrawal/release-bot/internal/cluster"
)

// newTestClient builds a cluster client from the suite kubeconfig,
// skipping the test when none is configured.
func newTestClient(t *testing.T, cfg *Config) *cluster.Client {
	t.Helper()

	if cfg.Kubeconfig == "" {
		t.Skip("RELEASEBOT_E2E_KUBECONFIG not set, skipping e2e test")
	}

	client, err := cluster.NewClient(cfg.Kubeconfig, cfg.Namespace)
	if err != nil {
		t.Fatalf("failed to build cluster client: %v", err)
	}
	return client
}

// uniqueAppName returns a name that is unique across suite runs, so
// leftovers from an aborted run never collide with a fresh one.
func uniqueAppName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// resultNames collects the object names from a batch of results, keyed
// by kind, for log-friendly assertions.
func resultNames(results []cluster.Result) map[string][]string {
	names := make(map[string][]string)
	for _, r := range results {
		names[r.Kind] = append(names[r.Kind], r.Name)
	}
	return names
}
