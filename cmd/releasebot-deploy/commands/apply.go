package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/shresthagrawal/release-bot/cmd/releasebot-deploy/handlers"
)

// Apply returns the apply command.
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the deployment objects on the cluster",
		Long: `Deploy a release-bot instance from the configuration file.

Apply creates the image streams, the build config and the deployment
config for the application, or updates them in place when they already
exist. With --wait it blocks until the first build finishes and the
rollout completes.

With --managed the objects are not created directly. Instead a
ReleaseBotDeployment resource is written and the release-bot operator
reconciles the objects from it.

Examples:
  # Deploy from releasebot.yaml and wait for the rollout
  releasebot-deploy apply --wait

  # Deploy into a different namespace
  releasebot-deploy apply -c bots/ochotnice.yaml -n release-bots

  # Hand the deployment over to the operator
  releasebot-deploy apply --managed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the deployment configuration file")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (defaults to $KUBECONFIG)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace to deploy into (defaults to the current context)")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "Wait for the first build and the rollout to finish")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 10*time.Minute, "How long --wait waits before giving up")
	cmd.Flags().BoolVar(&opts.Managed, "managed", false, "Create a ReleaseBotDeployment for the operator instead of raw objects")

	return cmd
}
