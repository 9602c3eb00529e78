package commands

import (
	"github.com/spf13/cobra"

	"github.com/shresthagrawal/release-bot/cmd/releasebot-deploy/handlers"
)

// Delete returns the delete command.
func Delete() *cobra.Command {
	var opts handlers.DeleteOptions

	cmd := &cobra.Command{
		Use:   "delete [app]",
		Short: "Remove the deployment objects of an application",
		Long: `Remove the image streams, build config and deployment config of an
application. The source secret is left alone because other
applications may share it.

The application name can be given as an argument. Without one it is
taken from the configuration file in the current directory. With
--all every application deployed from the release-bot template in the
namespace is removed instead.

Examples:
  # Remove the application from releasebot.yaml, asking first
  releasebot-deploy delete

  # Remove a specific application without the prompt
  releasebot-deploy delete ochotnice --yes

  # Remove every release-bot deployment in the namespace
  releasebot-deploy delete --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.App = args[0]
			}
			return handlers.Delete(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the deployment configuration file")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (defaults to $KUBECONFIG)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace to delete from (defaults to the current context)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Delete every application deployed from the release-bot template")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
