package labels

// Standard label keys for deployment objects. The template label is shared
// by every application deployed from the same template, the app label
// scopes a single application's objects.
const (
	// KeyApp identifies which application an object belongs to
	KeyApp = "app"

	// KeyTemplate identifies the template family an object was created from
	KeyTemplate = "template"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "app.kubernetes.io/managed-by"
)

// TemplateName is the value of the template label on every object created
// from the release-bot template. Selecting on it finds all release-bot
// deployments in a namespace regardless of application name.
const TemplateName = "release-bot"

// ManagedBy values
const (
	ManagedByCLI      = "releasebot-deploy"
	ManagedByOperator = "releasebot-operator"
)

// LabelBuilder provides a fluent interface for building object labels.
// Labels are used to identify and group objects belonging to the same
// application deployment.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the app and template
// labels pre-set.
func NewLabelBuilder(appName string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyApp:      appName,
			KeyTemplate: TemplateName,
		},
	}
}

// WithManagedBy sets who manages this object.
func (lb *LabelBuilder) WithManagedBy(manager string) *LabelBuilder {
	lb.labels[KeyManagedBy] = manager
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
// Returns a copy to prevent external mutations.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// Fleet returns the labels stamped onto every object by the template,
// independent of application name.
func Fleet() map[string]string {
	return map[string]string{KeyTemplate: TemplateName}
}

// SelectorForApp returns a label selector string for all objects of one
// application.
func SelectorForApp(appName string) string {
	return KeyApp + "=" + appName + "," + KeyTemplate + "=" + TemplateName
}

// SelectorForFleet returns a label selector string for all objects created
// from the release-bot template.
func SelectorForFleet() string {
	return KeyTemplate + "=" + TemplateName
}
