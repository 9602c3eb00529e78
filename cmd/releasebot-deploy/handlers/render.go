package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	templatev1 "github.com/openshift/api/template/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"github.com/shresthagrawal/release-bot/internal/config"
	"github.com/shresthagrawal/release-bot/internal/manifest"
	"github.com/shresthagrawal/release-bot/internal/template"
)

// readFile reads a template file - can be replaced in tests.
var readFile = os.ReadFile

// RenderOptions bundles the flags of the render command.
type RenderOptions struct {
	ConfigPath   string
	TemplateFile string
	Format       string
	Params       []string
}

// Render processes the deployment template locally and prints the
// resulting objects. No cluster connection is needed, so the output
// can be piped into oc apply or committed to a repository.
func Render(_ context.Context, opts RenderOptions) error {
	tmpl, err := renderTemplate(opts.TemplateFile)
	if err != nil {
		return err
	}

	params, err := renderParameters(opts.ConfigPath, opts.Params)
	if err != nil {
		return err
	}
	for name, value := range params {
		p := template.GetParameterByName(tmpl, name)
		if p == nil {
			return fmt.Errorf("unknown parameter %q", name)
		}
		p.Value = value
	}

	processor := template.NewProcessor(template.DefaultGenerators())
	if errs := processor.Process(tmpl); len(errs) > 0 {
		return fmt.Errorf("template processing failed: %v", errs.ToAggregate())
	}

	output, err := formatObjects(tmpl.Objects, opts.Format)
	if err != nil {
		return err
	}
	fmt.Print(output)
	return nil
}

// renderTemplate returns the template to process: the built-in one, or
// the contents of an explicit template file.
func renderTemplate(templateFile string) (*templatev1.Template, error) {
	if templateFile == "" {
		return manifest.Template(), nil
	}

	data, err := readFile(templateFile) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	tmpl, err := template.Decode(data)
	if err != nil {
		return nil, err
	}
	if errs := template.ValidateTemplate(tmpl); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template: %v", errs.ToAggregate())
	}
	return tmpl, nil
}

// renderParameters merges configuration file values with explicit
// --param overrides. The configuration file is optional here: with
// enough overrides a render needs no file at all.
func renderParameters(configPath string, overrides []string) (map[string]string, error) {
	params := map[string]string{}

	path := configPath
	if path == "" {
		path = config.DefaultConfigFile
	}
	if configPath != "" || fileExists(path) {
		cfg, err := loadDeployConfig(configPath)
		if err != nil {
			return nil, err
		}
		params = configParameters(cfg)
	}

	for _, override := range overrides {
		name, value, ok := strings.Cut(override, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q, expected NAME=VALUE", override)
		}
		params[name] = value
	}
	return params, nil
}

// configParameters maps configuration fields onto template parameters.
func configParameters(cfg *config.Config) map[string]string {
	params := map[string]string{
		manifest.ParamAppName:                 cfg.AppName,
		manifest.ParamConfigurationRepository: cfg.ConfigurationRepository,
		manifest.ParamConfigurationDir:        cfg.ConfigurationDir,
		manifest.ParamBuilderImage:            cfg.BuilderImage,
		manifest.ParamSourceSecret:            cfg.SourceSecret,
		manifest.ParamReplicas:                strconv.FormatInt(int64(cfg.Replicas), 10),
	}
	if cfg.GithubWebhookSecret != "" {
		params[manifest.ParamWebhookSecret] = cfg.GithubWebhookSecret
	}
	return params
}

// objectList is the subset of a v1 List needed for JSON output.
type objectList struct {
	Kind       string            `json:"kind"`
	APIVersion string            `json:"apiVersion"`
	Items      []json.RawMessage `json:"items"`
}

// formatObjects encodes the processed objects as multi-document YAML
// or as a single v1 List in JSON, mirroring what oc process emits.
func formatObjects(objects []runtime.RawExtension, format string) (string, error) {
	switch format {
	case "", "yaml":
		var b strings.Builder
		for i, obj := range objects {
			if i > 0 {
				b.WriteString("---\n")
			}
			data, err := yaml.JSONToYAML(obj.Raw)
			if err != nil {
				return "", fmt.Errorf("failed to encode object: %w", err)
			}
			b.Write(data)
		}
		return b.String(), nil

	case "json":
		list := objectList{
			Kind:       "List",
			APIVersion: "v1",
			Items:      make([]json.RawMessage, 0, len(objects)),
		}
		for _, obj := range objects {
			list.Items = append(list.Items, json.RawMessage(obj.Raw))
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode object list: %w", err)
		}
		return string(data) + "\n", nil

	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}
