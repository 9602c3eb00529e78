package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Completion returns the completion command.
func Completion() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for releasebot-deploy.

To load completions:

Bash:
  $ source <(releasebot-deploy completion bash)

  # To load completions for each session, execute once:
  $ releasebot-deploy completion bash > /etc/bash_completion.d/releasebot-deploy

Zsh:
  $ source <(releasebot-deploy completion zsh)

  # To load completions for each session, execute once:
  $ releasebot-deploy completion zsh > "${fpath[1]}/_releasebot-deploy"

Fish:
  $ releasebot-deploy completion fish | source

  # To load completions for each session, execute once:
  $ releasebot-deploy completion fish > ~/.config/fish/completions/releasebot-deploy.fish

PowerShell:
  PS> releasebot-deploy completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
