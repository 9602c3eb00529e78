package commands

import (
	"github.com/spf13/cobra"

	"github.com/shresthagrawal/release-bot/cmd/releasebot-deploy/handlers"
)

// Init returns the init command.
func Init() *cobra.Command {
	var (
		outputPath string
		advanced   bool
		fullOutput bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactive setup wizard for the deployment configuration",
		Long: `Create a deployment configuration file through an interactive wizard.

The wizard asks for the application name and the configuration
repository, applies sensible defaults for everything else, and writes
the result to a YAML file that apply and render read.

Examples:
  # Create releasebot.yaml in the current directory
  releasebot-deploy init

  # Ask the advanced questions too (namespace, builder image, replicas)
  releasebot-deploy init --advanced

  # Write every field including defaults to a custom path
  releasebot-deploy init --full -o bots/ochotnice.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, advanced, fullOutput)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "releasebot.yaml", "Output path for the generated configuration")
	cmd.Flags().BoolVarP(&advanced, "advanced", "a", false, "Ask additional questions beyond the required fields")
	cmd.Flags().BoolVarP(&fullOutput, "full", "f", false, "Write the full configuration including defaulted fields")

	return cmd
}
