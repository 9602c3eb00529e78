// Package commands defines the CLI command structure and flag bindings
// for releasebot-deploy. Each command stays thin and delegates the
// actual work to the handlers package.
package commands

import (
	"github.com/spf13/cobra"
)

// Root returns the root command for the releasebot-deploy CLI.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "releasebot-deploy",
		Short: "Deploy release-bot instances to OpenShift",
		Long: `releasebot-deploy manages the OpenShift objects a release-bot
instance needs: the builder and application image streams, the build
config that bakes the bot's configuration repository into the image,
and the deployment config that runs it.

Start with 'releasebot-deploy init' to create a configuration file,
then 'releasebot-deploy apply' to deploy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		Init(),
		Render(),
		Apply(),
		Status(),
		Delete(),
		Template(),
		Version(),
		Completion(),
	)

	return root
}
