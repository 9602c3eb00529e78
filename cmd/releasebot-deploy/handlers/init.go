package handlers

import (
	"context"
	"fmt"

	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests for dependency injection.
var (
	// runWizard runs the interactive question groups.
	runWizard = wizard.RunWizard

	// buildWizardConfig converts the wizard result into a configuration.
	buildWizardConfig = wizard.BuildConfig

	// writeConfigFile writes the configuration to a file.
	writeConfigFile = wizard.WriteConfig

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string, advanced, fullOutput bool) error {
	if !isInteractiveTTY() {
		return fmt.Errorf("init needs an interactive terminal. Write %s by hand instead", config.DefaultConfigFile)
	}

	if fileExists(outputPath) {
		overwrite, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
		if !overwrite {
			fmt.Println("Keeping the existing file.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx, advanced)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := buildWizardConfig(result)

	if err := writeConfigFile(cfg, outputPath, fullOutput); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the wizard intro.
func printWelcome() {
	fmt.Println()
	fmt.Println("release-bot deployment setup")
	fmt.Println("============================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment configuration with sensible defaults.")
	fmt.Println("Answer a few questions about your bot and its configuration repository.")
	fmt.Println()
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Application:   %s\n", cfg.AppName)
	fmt.Printf("  Repository:    %s\n", cfg.ConfigurationRepository)
	if cfg.ConfigurationDir != "" {
		fmt.Printf("  Directory:     %s\n", cfg.ConfigurationDir)
	}
	if cfg.Namespace != "" {
		fmt.Printf("  Namespace:     %s\n", cfg.Namespace)
	}
	fmt.Printf("  Builder image: %s\n", cfg.BuilderImage)
	fmt.Printf("  Replicas:      %d\n", cfg.Replicas)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Create the source secret if it does not exist yet:")
	fmt.Printf("     oc create secret generic %s --from-file=ssh-privatekey=<key>\n", cfg.SourceSecret)
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Deploy:")
	fmt.Println("     releasebot-deploy apply --wait")
	fmt.Println()
}
