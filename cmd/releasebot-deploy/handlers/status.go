package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/shresthagrawal/release-bot/internal/cluster"
)

// watchInterval is how often --watch refreshes the status.
const watchInterval = 5 * time.Second

// isInteractiveTTY reports whether stdout is a terminal - can be
// replaced in tests.
var isInteractiveTTY = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// StatusOptions bundles the flags of the status command.
type StatusOptions struct {
	App        string
	ConfigPath string
	Kubeconfig string
	Namespace  string
	Watch      bool
	JSON       bool
}

// Status reports the deployment state of one application.
func Status(ctx context.Context, opts StatusOptions) error {
	app, namespace, err := resolveApp(opts.App, opts.ConfigPath, opts.Namespace)
	if err != nil {
		return err
	}

	client, err := newClusterClient(opts.Kubeconfig, namespace)
	if err != nil {
		return err
	}

	if opts.Watch {
		return statusWatch(ctx, client, app, opts.JSON)
	}
	return statusShow(ctx, client, app, opts.JSON)
}

// resolveApp determines the application name and namespace. An
// explicit app argument wins; otherwise both come from the
// configuration file.
func resolveApp(app, configPath, namespace string) (string, string, error) {
	if app != "" {
		return app, namespace, nil
	}

	cfg, err := loadDeployConfig(configPath)
	if err != nil {
		return "", "", err
	}
	if namespace == "" {
		namespace = cfg.Namespace
	}
	return cfg.AppName, namespace, nil
}

func statusShow(ctx context.Context, client clusterClient, app string, jsonOutput bool) error {
	status, err := client.Status(ctx, app)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printStatusJSON(status)
	}
	if isInteractiveTTY() {
		fmt.Print(renderStatus(status))
		return nil
	}
	printStatusPlain(status)
	return nil
}

// statusWatch reprints the status on a ticker until the context ends.
func statusWatch(ctx context.Context, client clusterClient, app string, jsonOutput bool) error {
	if err := statusShow(ctx, client, app, jsonOutput); err != nil {
		return err
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !jsonOutput {
				// Clear screen and move cursor to top
				fmt.Print("\033[H\033[2J")
			}
			if err := statusShow(ctx, client, app, jsonOutput); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}

func printStatusJSON(status *cluster.Status) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printStatusPlain is the output for pipes and dumb terminals.
func printStatusPlain(status *cluster.Status) {
	fmt.Printf("Application: %s (namespace %s)\n", status.AppName, status.Namespace)
	if status.BuilderImage != "" {
		fmt.Printf("Builder:     %s\n", status.BuilderImage)
	}
	if status.LatestBuild != nil {
		fmt.Printf("Build:       %s (%s)\n", status.LatestBuild.Name, status.LatestBuild.Phase)
	} else {
		fmt.Println("Build:       none yet")
	}
	if status.Deployment != nil {
		fmt.Printf("Deployment:  %d/%d replicas ready (version %d)\n",
			status.Deployment.ReadyReplicas, status.Deployment.Replicas, status.Deployment.LatestVersion)
	}
	if status.Ready {
		fmt.Println("Ready:       yes")
	} else {
		fmt.Println("Ready:       no")
	}
}
