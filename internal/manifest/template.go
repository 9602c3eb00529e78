package manifest

import (
	"encoding/json"

	templatev1 "github.com/openshift/api/template/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/shresthagrawal/release-bot/internal/util/labels"
)

// TemplateName is the name the release-bot template is registered under
// on a cluster.
const TemplateName = "release-bot"

// Parameter names of the release-bot template.
const (
	ParamAppName                 = "APP_NAME"
	ParamConfigurationRepository = "CONFIGURATION_REPOSITORY"
	ParamConfigurationDir        = "CONFIGURATION_DIR"
	ParamBuilderImage            = "BUILDER_IMAGE"
	ParamSourceSecret            = "SOURCE_SECRET"
	ParamReplicas                = "REPLICAS"
	ParamWebhookSecret           = "GITHUB_WEBHOOK_SECRET"
)

// Template returns the parameterized release-bot template. Processing it
// with APP_NAME and CONFIGURATION_REPOSITORY yields the same objects the
// typed builders produce, so both the CLI and a template instantiated
// through the console deploy identical manifests.
func Template() *templatev1.Template {
	placeholder := Spec{
		AppName:                 "${" + ParamAppName + "}",
		ConfigurationRepository: "${" + ParamConfigurationRepository + "}",
		ConfigurationDir:        "${" + ParamConfigurationDir + "}",
		BuilderImage:            "${" + ParamBuilderImage + "}",
		SourceSecret:            "${" + ParamSourceSecret + "}",
		WebhookSecret:           "${" + ParamWebhookSecret + "}",
		Replicas:                DefaultReplicas,
		Resources:               DefaultResources(),
	}

	objects := make([]runtime.RawExtension, 0, 4)
	for _, obj := range placeholder.Objects() {
		objects = append(objects, rawExtension(obj))
	}
	// The replicas field is numeric in the typed object, so the
	// parameter reference has to be spliced in after encoding.
	objects[3] = parameterizeReplicas(objects[3])

	return &templatev1.Template{
		TypeMeta: metav1.TypeMeta{
			APIVersion: templatev1.GroupVersion.String(),
			Kind:       "Template",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: TemplateName,
			Annotations: map[string]string{
				"description": "Deploys a release-bot instance watching a configuration repository.",
				"tags":        "release-bot,ci",
			},
		},
		ObjectLabels: labels.Fleet(),
		Parameters: []templatev1.Parameter{
			{
				Name:        ParamAppName,
				DisplayName: "Application Name",
				Description: "Names every object of the deployment.",
				Required:    true,
			},
			{
				Name:        ParamConfigurationRepository,
				DisplayName: "Configuration Repository",
				Description: "Git repository holding the release-bot configuration.",
				Required:    true,
			},
			{
				Name:        ParamConfigurationDir,
				DisplayName: "Configuration Directory",
				Description: "Directory within the repository to build from. Leave empty for the repository root.",
			},
			{
				Name:        ParamBuilderImage,
				DisplayName: "Builder Image",
				Description: "Source-to-image builder the bot image is built on.",
				Value:       DefaultBuilderImage,
			},
			{
				Name:        ParamSourceSecret,
				DisplayName: "Source Secret",
				Description: "Secret used to clone the configuration repository.",
				Value:       DefaultSourceSecret,
			},
			{
				Name:        ParamReplicas,
				DisplayName: "Replicas",
				Description: "Number of release-bot pods to run.",
				Value:       "1",
			},
			{
				Name:        ParamWebhookSecret,
				DisplayName: "GitHub Webhook Secret",
				Description: "Secret guarding the build config's GitHub webhook.",
				Generate:    "expression",
				From:        "[a-zA-Z0-9]{40}",
			},
		},
		Objects: objects,
	}
}

// rawExtension encodes a typed object for embedding in a template. The
// objects come from the builders above, so encoding cannot fail.
func rawExtension(obj runtime.Object) runtime.RawExtension {
	raw, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	return runtime.RawExtension{Raw: raw}
}

// parameterizeReplicas rewrites the deployment config's numeric replicas
// field into a ${{REPLICAS}} reference.
func parameterizeReplicas(obj runtime.RawExtension) runtime.RawExtension {
	decoded := map[string]interface{}{}
	if err := json.Unmarshal(obj.Raw, &decoded); err != nil {
		panic(err)
	}
	decoded["spec"].(map[string]interface{})["replicas"] = "${{" + ParamReplicas + "}}"
	raw, err := json.Marshal(decoded)
	if err != nil {
		panic(err)
	}
	return runtime.RawExtension{Raw: raw}
}
