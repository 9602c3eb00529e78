package handlers

import (
	"context"
	"fmt"

	"github.com/shresthagrawal/release-bot/internal/manifest"
	"github.com/shresthagrawal/release-bot/internal/template"
)

// TemplatePush uploads the deployment template to the cluster so
// applications can be instantiated from the catalog.
func TemplatePush(ctx context.Context, kubeconfig, namespace string) error {
	client, err := newClusterClient(kubeconfig, namespace)
	if err != nil {
		return err
	}

	result, err := client.PushTemplate(ctx, manifest.Template())
	if err != nil {
		return fmt.Errorf("template push failed: %w", err)
	}
	fmt.Printf("%s/%s %s\n", result.Kind, result.Name, result.Action)

	fmt.Println()
	fmt.Println("Instantiate it with:")
	fmt.Printf("  oc new-app --template %s -p APP_NAME=<name> -p CONFIGURATION_REPOSITORY=<repo>\n", result.Name)
	return nil
}

// TemplateShow prints the built-in deployment template as YAML.
func TemplateShow() error {
	data, err := template.Encode(manifest.Template())
	if err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
