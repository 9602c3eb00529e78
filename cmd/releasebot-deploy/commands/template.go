package commands

import (
	"github.com/spf13/cobra"

	"github.com/shresthagrawal/release-bot/cmd/releasebot-deploy/handlers"
)

// Template returns the template command with its subcommands.
func Template() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Work with the release-bot deployment template",
		Long: `Inspect the built-in deployment template or upload it to a cluster
so applications can be instantiated from the catalog with oc new-app.`,
	}

	cmd.AddCommand(
		templatePush(),
		templateShow(),
	)

	return cmd
}

func templatePush() *cobra.Command {
	var (
		kubeconfig string
		namespace  string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload the deployment template to the cluster",
		Long: `Upload the built-in deployment template to a namespace. Existing
copies are updated in place.

Examples:
  # Upload into the current namespace
  releasebot-deploy template push

  # Upload into the shared catalog namespace
  releasebot-deploy template push -n openshift`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.TemplatePush(cmd.Context(), kubeconfig, namespace)
		},
	}

	cmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (defaults to $KUBECONFIG)")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace to upload into (defaults to the current context)")

	return cmd
}

func templateShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the built-in deployment template as YAML",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.TemplateShow()
		},
	}
}
