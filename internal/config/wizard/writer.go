package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/manifest"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
// If fullOutput is false, fields still at their default value are left
// out so the file only shows what the user actually chose.
func WriteConfig(cfg *config.Config, outputPath string, fullOutput bool) error {
	out := cfg
	if !fullOutput {
		out = buildMinimalConfig(cfg)
	}

	yamlBytes, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath, fullOutput))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// buildMinimalConfig returns a copy of the config with default-valued
// fields cleared so omitempty drops them from the output.
func buildMinimalConfig(cfg *config.Config) *config.Config {
	minCfg := *cfg

	if minCfg.BuilderImage == manifest.DefaultBuilderImage {
		minCfg.BuilderImage = ""
	}
	if minCfg.SourceSecret == manifest.DefaultSourceSecret {
		minCfg.SourceSecret = ""
	}
	if minCfg.Replicas == manifest.DefaultReplicas {
		minCfg.Replicas = 0
	}

	return &minCfg
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string, fullOutput bool) string {
	mode := "minimal"
	note := "\n# Note: This is a minimal config. Use --full flag for all options."
	if fullOutput {
		mode = "full"
		note = ""
	}
	return fmt.Sprintf(`# release-bot deployment configuration
# Generated by: releasebot-deploy init
# Generated at: %s
# Output mode: %s
# Docs: https://github.com/shresthagrawal/release-bot%s
#
# The source secret must exist in the target project before the first
# build runs:
#   oc create secret generic release-bot-secret --from-file=...
#
# Usage:
#   releasebot-deploy apply -c %s
`, time.Now().Format(time.RFC3339), mode, note, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
