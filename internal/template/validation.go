package template

import (
	"regexp"

	templatev1 "github.com/openshift/api/template/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

var parameterNameExp = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateTemplate checks that a template is well formed before it is
// processed or pushed to a cluster.
func ValidateTemplate(t *templatev1.Template) field.ErrorList {
	var errs field.ErrorList
	if t.Name == "" {
		errs = append(errs, field.Required(field.NewPath("metadata", "name"), ""))
	}
	for i := range t.Parameters {
		errs = append(errs, validateParameter(&t.Parameters[i], field.NewPath("parameters").Index(i))...)
	}
	return errs
}

func validateParameter(param *templatev1.Parameter, path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if param.Name == "" {
		errs = append(errs, field.Required(path.Child("name"), ""))
		return errs
	}
	if !parameterNameExp.MatchString(param.Name) {
		errs = append(errs, field.Invalid(path.Child("name"), param.Name,
			"must contain only letters, digits and underscores"))
	}
	return errs
}

// ValidateProcessedTemplate checks a template after processing, when
// every parameter reference must have been resolvable.
func ValidateProcessedTemplate(t *templatev1.Template) field.ErrorList {
	var errs field.ErrorList
	for i := range t.Parameters {
		param := &t.Parameters[i]
		if param.Required && param.Value == "" {
			errs = append(errs, field.Required(field.NewPath("parameters").Index(i).Child("value"), param.Name))
		}
	}
	return errs
}
