// Package handlers implements the business logic for CLI commands.
// Handlers print progress with log and user-facing output with fmt, and
// reach the cluster through small interfaces so tests can swap in
// mocks.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	templatev1 "github.com/openshift/api/template/v1"

	"github.com/shresthagrawal/release-bot/internal/cluster"
	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/manifest"
	"github.com/shresthagrawal/release-bot/internal/util/labels"
)

// clusterClient is the part of cluster.Client the handlers use.
type clusterClient interface {
	Namespace() string
	Apply(ctx context.Context, spec manifest.Spec) ([]cluster.Result, error)
	SecretExists(ctx context.Context, name string) (bool, error)
	WaitForBuild(ctx context.Context, app string, timeout time.Duration) error
	WaitForImage(ctx context.Context, app string, timeout time.Duration) error
	WaitForRollout(ctx context.Context, app string, timeout time.Duration) error
	Status(ctx context.Context, app string) (*cluster.Status, error)
	Delete(ctx context.Context, app string) ([]cluster.Result, error)
	DeleteFleet(ctx context.Context) ([]cluster.Result, error)
	PushTemplate(ctx context.Context, desired *templatev1.Template) (cluster.Result, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newClusterClient creates the namespaced cluster client.
	newClusterClient = func(kubeconfigPath, namespace string) (clusterClient, error) {
		return cluster.NewClient(kubeconfigPath, namespace)
	}

	// loadConfigFile loads and validates a deployment configuration.
	loadConfigFile = config.LoadFile

	// fileExists checks whether a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
)

// ApplyOptions bundles the flags of the apply command.
type ApplyOptions struct {
	ConfigPath string
	Kubeconfig string
	Namespace  string
	Wait       bool
	Timeout    time.Duration
	Managed    bool
}

// Apply deploys a release-bot instance from the configuration file.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := loadDeployConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.Managed {
		return applyManaged(ctx, cfg, opts)
	}

	spec, err := cfg.ManifestSpec()
	if err != nil {
		return err
	}
	if opts.Namespace != "" {
		spec.Namespace = opts.Namespace
	}
	spec.Labels = withManagedBy(spec.Labels, labels.ManagedByCLI)

	client, err := newClusterClient(opts.Kubeconfig, spec.Namespace)
	if err != nil {
		return err
	}

	log.Printf("Deploying %s to namespace %s", spec.AppName, client.Namespace())

	checkSourceSecret(ctx, client, spec.SourceSecret)

	results, err := client.Apply(ctx, spec)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	printResults(results)

	if opts.Wait {
		if err := waitForDeployment(ctx, client, spec.AppName, opts.Timeout); err != nil {
			return err
		}
	}

	printApplySuccess(spec.AppName, client.Namespace(), opts.Wait)
	return nil
}

// withManagedBy returns the extra labels with the managed-by label
// set, without touching the input map.
func withManagedBy(extra map[string]string, manager string) map[string]string {
	merged := make(map[string]string, len(extra)+1)
	for k, v := range extra {
		merged[k] = v
	}
	merged[labels.KeyManagedBy] = manager
	return merged
}

// loadDeployConfig loads the configuration file, defaulting to
// releasebot.yaml in the current directory.
func loadDeployConfig(configPath string) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigFile
	}
	if !fileExists(path) {
		return nil, fmt.Errorf("configuration file %s not found. Run 'releasebot-deploy init' to create one", path)
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// checkSourceSecret warns when the build source secret is missing. The
// deployment still goes through, but builds cannot clone the
// configuration repository until the secret exists.
func checkSourceSecret(ctx context.Context, client clusterClient, name string) {
	exists, err := client.SecretExists(ctx, name)
	if err != nil {
		log.Printf("Could not check source secret %s: %v", name, err)
		return
	}
	if !exists {
		log.Printf("Warning: source secret %s not found in namespace %s", name, client.Namespace())
		log.Printf("Create it with: oc create secret generic %s --from-file=ssh-privatekey=<key>", name)
	}
}

// waitForDeployment blocks until the latest build finishes, its image
// lands in the output stream, and the rollout completes.
func waitForDeployment(ctx context.Context, client clusterClient, app string, timeout time.Duration) error {
	log.Printf("Waiting for build of %s to complete (timeout %s)", app, timeout)
	if err := client.WaitForBuild(ctx, app, timeout); err != nil {
		return fmt.Errorf("build did not complete: %w", err)
	}

	log.Printf("Build complete, waiting for the image to land")
	if err := client.WaitForImage(ctx, app, timeout); err != nil {
		return fmt.Errorf("built image did not appear: %w", err)
	}

	log.Printf("Image tagged, waiting for rollout")
	if err := client.WaitForRollout(ctx, app, timeout); err != nil {
		return fmt.Errorf("rollout did not complete: %w", err)
	}
	return nil
}

// printResults prints one line per object, oc style.
func printResults(results []cluster.Result) {
	for _, r := range results {
		fmt.Printf("%s/%s %s\n", r.Kind, r.Name, r.Action)
	}
}

// printApplySuccess prints the closing message of a deployment.
func printApplySuccess(app, namespace string, waited bool) {
	fmt.Println()
	if waited {
		fmt.Printf("%s is deployed and running in namespace %s.\n", app, namespace)
		return
	}
	fmt.Printf("%s is deployed to namespace %s.\n", app, namespace)
	fmt.Printf("Watch the first build with: releasebot-deploy status %s --watch\n", app)
}
