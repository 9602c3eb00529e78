package commands

import (
	"github.com/spf13/cobra"

	"github.com/shresthagrawal/release-bot/cmd/releasebot-deploy/handlers"
)

// Render returns the render command.
func Render() *cobra.Command {
	var opts handlers.RenderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Process the deployment template locally and print the objects",
		Long: `Process the deployment template without talking to a cluster.

Parameter values come from the configuration file when one is found and
can be overridden with --param. The processed objects are printed to
stdout, ready for 'oc apply -f -' or for committing to a repository.

Examples:
  # Render from releasebot.yaml
  releasebot-deploy render

  # Render without a configuration file
  releasebot-deploy render -p APP_NAME=ochotnice \
    -p CONFIGURATION_REPOSITORY=https://github.com/example/ochotnice-conf

  # Render as a JSON object list
  releasebot-deploy render -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Render(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the deployment configuration file")
	cmd.Flags().StringVarP(&opts.TemplateFile, "template", "f", "", "Process this template file instead of the built-in one")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "yaml", "Output format: yaml or json")
	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "Set a template parameter as NAME=VALUE (repeatable)")

	return cmd
}
