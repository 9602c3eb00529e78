// Package template implements parameter substitution for OpenShift
// templates. A Processor takes a template carrying raw objects and a
// parameter list, generates values for parameters that ask for one,
// resolves every parameter reference inside the objects, and stamps the
// template's object labels onto each object.
package template

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	templatev1 "github.com/openshift/api/template/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/shresthagrawal/release-bot/internal/template/generator"
)

// GenerateExpression is the generate strategy name served by the
// expression value generator.
const GenerateExpression = "expression"

// Reference syntax accepted inside template objects:
//
//	${NAME}    splices the parameter value into the surrounding string
//	${{NAME}}  alone in a string, splices the value parsed as JSON so
//	           numbers and booleans keep their types
//	$${NAME}   escapes substitution and renders as a literal ${NAME}
//
// References to parameters the template does not declare are left
// untouched.
var (
	stringReferenceExp = regexp.MustCompile(`\$(\$?)\{([a-zA-Z0-9_]+)\}`)
	typedReferenceExp  = regexp.MustCompile(`^\$\{\{([a-zA-Z0-9_]+)\}\}$`)
)

// Processor transforms templates into concrete object lists.
type Processor struct {
	generators map[string]generator.Generator
}

// NewProcessor creates a Processor using the given value generators,
// keyed by generate strategy name.
func NewProcessor(generators map[string]generator.Generator) *Processor {
	return &Processor{generators: generators}
}

// DefaultGenerators returns the generator set a Processor normally runs
// with, seeded from the current time.
func DefaultGenerators() map[string]generator.Generator {
	return map[string]generator.Generator{
		GenerateExpression: generator.NewExpressionValueGenerator(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
}

// Process transforms the template in place. Parameter values are
// generated first; if any parameter marked required still has no value,
// processing stops before any object is touched. Objects are decoded
// from raw JSON and re-encoded after substitution, so a template may
// carry kinds this binary knows nothing about.
func (p *Processor) Process(t *templatev1.Template) field.ErrorList {
	errs := p.GenerateParameterValues(t)
	if len(errs) > 0 {
		return errs
	}

	params := parametersByName(t)
	for i := range t.Objects {
		path := field.NewPath("objects").Index(i)
		obj, err := decodeRawObject(t.Objects[i])
		if err != nil {
			errs = append(errs, field.Invalid(path, string(t.Objects[i].Raw), err.Error()))
			continue
		}
		substituted, err := substituteMap(obj, params)
		if err != nil {
			errs = append(errs, field.Invalid(path, obj["kind"], err.Error()))
			continue
		}
		applyObjectLabels(substituted, t.ObjectLabels)
		raw, err := json.Marshal(substituted)
		if err != nil {
			errs = append(errs, field.Invalid(path, obj["kind"], err.Error()))
			continue
		}
		t.Objects[i] = runtime.RawExtension{Raw: raw}
	}
	return errs
}

// GenerateParameterValues fills in values for parameters that declare a
// generate strategy and checks that every required parameter ends up
// with a value.
func (p *Processor) GenerateParameterValues(t *templatev1.Template) field.ErrorList {
	var errs field.ErrorList
	for i := range t.Parameters {
		param := &t.Parameters[i]
		path := field.NewPath("parameters").Index(i)
		if param.Generate != "" && param.Value == "" {
			gen, ok := p.generators[param.Generate]
			if !ok || gen == nil {
				errs = append(errs, field.Invalid(path.Child("generate"), param.Generate, "unknown generator name"))
				continue
			}
			value, err := gen.GenerateValue(param.From)
			if err != nil {
				errs = append(errs, field.Invalid(path.Child("from"), param.From, err.Error()))
				continue
			}
			s, ok := value.(string)
			if !ok {
				errs = append(errs, field.Invalid(path.Child("from"), param.From, "generated value must be a string"))
				continue
			}
			param.Value = s
		}
		if param.Required && param.Value == "" {
			errs = append(errs, field.Required(path.Child("value"),
				fmt.Sprintf("parameter %s is required and must be specified", param.Name)))
		}
	}
	return errs
}

// AddParameter adds a parameter to the template, replacing any existing
// parameter with the same name.
func AddParameter(t *templatev1.Template, param templatev1.Parameter) {
	if existing := GetParameterByName(t, param.Name); existing != nil {
		*existing = param
		return
	}
	t.Parameters = append(t.Parameters, param)
}

// GetParameterByName returns a pointer into the template's parameter
// list for the named parameter, or nil if it declares no such parameter.
func GetParameterByName(t *templatev1.Template, name string) *templatev1.Parameter {
	for i := range t.Parameters {
		if t.Parameters[i].Name == name {
			return &t.Parameters[i]
		}
	}
	return nil
}

func parametersByName(t *templatev1.Template) map[string]templatev1.Parameter {
	params := make(map[string]templatev1.Parameter, len(t.Parameters))
	for _, p := range t.Parameters {
		params[p.Name] = p
	}
	return params
}

// decodeRawObject unpacks a raw template object into a JSON map. An
// already-decoded runtime object is marshalled first so both raw and
// typed objects travel the same path.
func decodeRawObject(obj runtime.RawExtension) (map[string]interface{}, error) {
	raw := obj.Raw
	if len(raw) == 0 && obj.Object != nil {
		var err error
		raw, err = json.Marshal(obj.Object)
		if err != nil {
			return nil, fmt.Errorf("failed to encode object: %w", err)
		}
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode object: %w", err)
	}
	return out, nil
}

// substituteMap resolves parameter references in every string of a
// decoded JSON object, map keys included.
func substituteMap(obj map[string]interface{}, params map[string]templatev1.Parameter) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		sub, err := substituteValue(v, params)
		if err != nil {
			return nil, err
		}
		out[substituteString(k, params)] = sub
	}
	return out, nil
}

func substituteValue(v interface{}, params map[string]templatev1.Parameter) (interface{}, error) {
	switch tv := v.(type) {
	case map[string]interface{}:
		return substituteMap(tv, params)
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, item := range tv {
			sub, err := substituteValue(item, params)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case string:
		if m := typedReferenceExp.FindStringSubmatch(tv); m != nil {
			if param, ok := params[m[1]]; ok {
				var typed interface{}
				if err := json.Unmarshal([]byte(param.Value), &typed); err != nil {
					return nil, fmt.Errorf("parameter %s value %q is not valid for a ${{%s}} reference: %w",
						param.Name, param.Value, param.Name, err)
				}
				return typed, nil
			}
			return tv, nil
		}
		return substituteString(tv, params), nil
	default:
		return v, nil
	}
}

// substituteString resolves ${NAME} references and unwraps $${NAME}
// escapes in a single string.
func substituteString(s string, params map[string]templatev1.Parameter) string {
	return stringReferenceExp.ReplaceAllStringFunc(s, func(match string) string {
		groups := stringReferenceExp.FindStringSubmatch(match)
		if groups[1] == "$" {
			return "${" + groups[2] + "}"
		}
		if param, ok := params[groups[2]]; ok {
			return param.Value
		}
		return match
	})
}

// applyObjectLabels merges the template's object labels into the
// object's metadata labels. Template labels win on conflict.
func applyObjectLabels(obj map[string]interface{}, objectLabels map[string]string) {
	if len(objectLabels) == 0 {
		return
	}
	meta, ok := obj["metadata"].(map[string]interface{})
	if !ok {
		meta = map[string]interface{}{}
		obj["metadata"] = meta
	}
	labels, ok := meta["labels"].(map[string]interface{})
	if !ok {
		labels = map[string]interface{}{}
		meta["labels"] = labels
	}
	for k, v := range objectLabels {
		labels[k] = v
	}
}
