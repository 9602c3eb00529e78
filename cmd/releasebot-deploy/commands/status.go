package commands

import (
	"github.com/spf13/cobra"

	"github.com/shresthagrawal/release-bot/cmd/releasebot-deploy/handlers"
)

// Status returns the status command.
func Status() *cobra.Command {
	var opts handlers.StatusOptions

	cmd := &cobra.Command{
		Use:   "status [app]",
		Short: "Show the deployment state of an application",
		Long: `Show the build and rollout state of a deployed application.

The application name can be given as an argument. Without one it is
taken from the configuration file in the current directory.

Examples:
  # Status of the application from releasebot.yaml
  releasebot-deploy status

  # Status of a specific application, refreshed every few seconds
  releasebot-deploy status ochotnice --watch

  # Machine-readable output
  releasebot-deploy status ochotnice --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.App = args[0]
			}
			return handlers.Status(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the deployment configuration file")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (defaults to $KUBECONFIG)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace to look in (defaults to the current context)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Keep refreshing the status until interrupted")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the status as JSON")

	return cmd
}
