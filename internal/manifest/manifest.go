// Package manifest builds the OpenShift objects that make up a
// release-bot deployment: a builder image stream tracking the bot base
// image, an application image stream receiving built images, a
// source-to-image build config, and a rolling deployment config. All
// object names derive from the application name so the build output tag
// and the tag the deployment watches always line up.
package manifest

import (
	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/shresthagrawal/release-bot/internal/util/labels"
	"github.com/shresthagrawal/release-bot/internal/util/naming"
)

const (
	// DefaultBuilderImage is the source-to-image builder the build
	// config builds on top of.
	DefaultBuilderImage = "usercont/release-bot:dev"

	// DefaultSourceSecret is the secret used to clone the configuration
	// repository.
	DefaultSourceSecret = "release-bot-secret"

	// DefaultReplicas is the deployment size when none is configured.
	DefaultReplicas int32 = 1
)

// Spec describes one release-bot deployment. The zero value is not
// usable directly; call WithDefaults or fill every field.
type Spec struct {
	// AppName names the deployment and every object derived from it.
	AppName string

	// ConfigurationRepository is the Git repository holding the bot's
	// configuration.
	ConfigurationRepository string

	// ConfigurationDir is the directory within the repository to build
	// from. Empty means the repository root.
	ConfigurationDir string

	// BuilderImage is the container image the builder image stream
	// tracks.
	BuilderImage string

	// SourceSecret names the secret used to clone the configuration
	// repository. Empty disables the source secret reference.
	SourceSecret string

	// WebhookSecret enables a GitHub webhook trigger on the build
	// config when set.
	WebhookSecret string

	// Namespace is stamped onto every object when set.
	Namespace string

	Replicas  int32
	Resources corev1.ResourceRequirements

	// Labels are merged over the standard object labels.
	Labels map[string]string
}

// WithDefaults returns a copy of the spec with every empty field that
// has a default filled in.
func (s Spec) WithDefaults() Spec {
	if s.BuilderImage == "" {
		s.BuilderImage = DefaultBuilderImage
	}
	if s.SourceSecret == "" {
		s.SourceSecret = DefaultSourceSecret
	}
	if s.Replicas == 0 {
		s.Replicas = DefaultReplicas
	}
	if s.Resources.Requests == nil && s.Resources.Limits == nil {
		s.Resources = DefaultResources()
	}
	return s
}

// DefaultResources returns the resource envelope a release-bot pod runs
// with unless the spec overrides it.
func DefaultResources() corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse("100m"),
			corev1.ResourceMemory: resource.MustParse("128Mi"),
		},
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse("400m"),
			corev1.ResourceMemory: resource.MustParse("512Mi"),
		},
	}
}

// BuilderImageStream returns the image stream tracking the builder
// image. The dev tag imports on the platform's scheduled interval so
// upstream builder updates flow in without manual imports.
func (s Spec) BuilderImageStream() *imagev1.ImageStream {
	return &imagev1.ImageStream{
		TypeMeta:   metav1.TypeMeta{APIVersion: imagev1.GroupVersion.String(), Kind: "ImageStream"},
		ObjectMeta: s.objectMeta(naming.BuilderImageStream(s.AppName)),
		Spec: imagev1.ImageStreamSpec{
			Tags: []imagev1.TagReference{
				{
					Name: naming.BuilderTag,
					From: &corev1.ObjectReference{
						Kind: "DockerImage",
						Name: s.BuilderImage,
					},
					ImportPolicy:    imagev1.TagImportPolicy{Scheduled: true},
					ReferencePolicy: imagev1.TagReferencePolicy{Type: imagev1.SourceTagReferencePolicy},
				},
			},
		},
	}
}

// AppImageStream returns the image stream that receives built
// application images. Its tags are created by build pushes, so the spec
// declares none.
func (s Spec) AppImageStream() *imagev1.ImageStream {
	return &imagev1.ImageStream{
		TypeMeta:   metav1.TypeMeta{APIVersion: imagev1.GroupVersion.String(), Kind: "ImageStream"},
		ObjectMeta: s.objectMeta(naming.AppImageStream(s.AppName)),
	}
}

// BuildConfig returns the source-to-image build config. It builds the
// configuration repository on top of the builder tag and pushes to the
// application image stream's latest tag, which is exactly the tag the
// deployment config watches.
func (s Spec) BuildConfig() *buildv1.BuildConfig {
	source := buildv1.BuildSource{
		Type: buildv1.BuildSourceGit,
		Git: &buildv1.GitBuildSource{
			URI: s.ConfigurationRepository,
		},
		ContextDir: s.ConfigurationDir,
	}
	if s.SourceSecret != "" {
		source.SourceSecret = &corev1.LocalObjectReference{Name: s.SourceSecret}
	}

	triggers := []buildv1.BuildTriggerPolicy{
		{Type: buildv1.ConfigChangeBuildTriggerType},
		{
			Type:        buildv1.ImageChangeBuildTriggerType,
			ImageChange: &buildv1.ImageChangeTrigger{},
		},
	}
	if s.WebhookSecret != "" {
		triggers = append(triggers, buildv1.BuildTriggerPolicy{
			Type:          buildv1.GitHubWebHookBuildTriggerType,
			GitHubWebHook: &buildv1.WebHookTrigger{Secret: s.WebhookSecret},
		})
	}

	return &buildv1.BuildConfig{
		TypeMeta:   metav1.TypeMeta{APIVersion: buildv1.GroupVersion.String(), Kind: "BuildConfig"},
		ObjectMeta: s.objectMeta(naming.BuildConfig(s.AppName)),
		Spec: buildv1.BuildConfigSpec{
			Triggers:  triggers,
			RunPolicy: buildv1.BuildRunPolicySerial,
			CommonSpec: buildv1.CommonSpec{
				Source: source,
				Strategy: buildv1.BuildStrategy{
					Type: buildv1.SourceBuildStrategyType,
					SourceStrategy: &buildv1.SourceBuildStrategy{
						From: corev1.ObjectReference{
							Kind: "ImageStreamTag",
							Name: naming.BuilderImageStreamTag(s.AppName),
						},
					},
				},
				Output: buildv1.BuildOutput{
					To: &corev1.ObjectReference{
						Kind: "ImageStreamTag",
						Name: naming.OutputImageStreamTag(s.AppName),
					},
				},
			},
		},
	}
}

// DeploymentConfig returns the rolling deployment config. The image
// change trigger watches the application image stream's latest tag and
// rolls the deployment whenever a build pushes a new image.
func (s Spec) DeploymentConfig() *appsv1.DeploymentConfig {
	selector := map[string]string{
		labels.KeyApp:      s.AppName,
		"deploymentconfig": s.AppName,
	}
	podLabels := labels.NewLabelBuilder(s.AppName).Merge(s.Labels).Merge(selector).Build()

	return &appsv1.DeploymentConfig{
		TypeMeta:   metav1.TypeMeta{APIVersion: appsv1.GroupVersion.String(), Kind: "DeploymentConfig"},
		ObjectMeta: s.objectMeta(naming.DeploymentConfig(s.AppName)),
		Spec: appsv1.DeploymentConfigSpec{
			Strategy: appsv1.DeploymentStrategy{
				Type: appsv1.DeploymentStrategyTypeRolling,
			},
			Replicas: s.Replicas,
			Selector: selector,
			Triggers: appsv1.DeploymentTriggerPolicies{
				{Type: appsv1.DeploymentTriggerOnConfigChange},
				{
					Type: appsv1.DeploymentTriggerOnImageChange,
					ImageChangeParams: &appsv1.DeploymentTriggerImageChangeParams{
						Automatic:      true,
						ContainerNames: []string{s.AppName},
						From: corev1.ObjectReference{
							Kind: "ImageStreamTag",
							Name: naming.OutputImageStreamTag(s.AppName),
						},
					},
				},
			},
			Template: &corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: podLabels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:      s.AppName,
							Image:     naming.OutputImageStreamTag(s.AppName),
							Resources: s.Resources,
						},
					},
				},
			},
		},
	}
}

// Objects returns every object of the deployment in creation order,
// image streams first so the build and deployment configs never
// reference a stream that does not exist yet.
func (s Spec) Objects() []runtime.Object {
	return []runtime.Object{
		s.BuilderImageStream(),
		s.AppImageStream(),
		s.BuildConfig(),
		s.DeploymentConfig(),
	}
}

func (s Spec) objectMeta(name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      name,
		Namespace: s.Namespace,
		Labels:    labels.NewLabelBuilder(s.AppName).Merge(s.Labels).Build(),
	}
}
