package template

import (
	"fmt"

	templatev1 "github.com/openshift/api/template/v1"
	"sigs.k8s.io/yaml"
)

// Decode parses a template manifest in YAML or JSON form.
func Decode(data []byte) (*templatev1.Template, error) {
	t := &templatev1.Template{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if t.Kind != "" && t.Kind != "Template" {
		return nil, fmt.Errorf("expected a Template, got %s", t.Kind)
	}
	return t, nil
}

// Encode renders a template as YAML.
func Encode(t *templatev1.Template) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return data, nil
}
