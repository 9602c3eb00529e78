package manifest

import (
	"testing"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() Spec {
	return Spec{
		AppName:                 "release-bot",
		ConfigurationRepository: "https://github.com/user/conf.git",
		Namespace:               "bots",
	}.WithDefaults()
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	spec := Spec{AppName: "release-bot"}.WithDefaults()

	assert.Equal(t, DefaultBuilderImage, spec.BuilderImage)
	assert.Equal(t, DefaultSourceSecret, spec.SourceSecret)
	assert.Equal(t, DefaultReplicas, spec.Replicas)
	assert.Equal(t, "100m", spec.Resources.Requests.Cpu().String())
	assert.Equal(t, "512Mi", spec.Resources.Limits.Memory().String())
}

func TestWithDefaultsKeepsOverrides(t *testing.T) {
	t.Parallel()

	spec := Spec{
		AppName:      "release-bot",
		BuilderImage: "quay.io/user/builder:v2",
		Replicas:     3,
	}.WithDefaults()

	assert.Equal(t, "quay.io/user/builder:v2", spec.BuilderImage)
	assert.Equal(t, int32(3), spec.Replicas)
}

func TestBuilderImageStream(t *testing.T) {
	t.Parallel()

	is := testSpec().BuilderImageStream()

	assert.Equal(t, "release-bot-builder", is.Name)
	assert.Equal(t, "bots", is.Namespace)
	require.Len(t, is.Spec.Tags, 1)
	tag := is.Spec.Tags[0]
	assert.Equal(t, "dev", tag.Name)
	assert.Equal(t, "DockerImage", tag.From.Kind)
	assert.Equal(t, DefaultBuilderImage, tag.From.Name)
	assert.True(t, tag.ImportPolicy.Scheduled, "builder tag must re-import on schedule")
}

func TestAppImageStream(t *testing.T) {
	t.Parallel()

	is := testSpec().AppImageStream()

	assert.Equal(t, "release-bot", is.Name)
	assert.Empty(t, is.Spec.Tags, "application tags are created by build pushes")
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	bc := testSpec().BuildConfig()

	assert.Equal(t, "release-bot", bc.Name)
	assert.Equal(t, "https://github.com/user/conf.git", bc.Spec.Source.Git.URI)
	assert.Empty(t, bc.Spec.Source.ContextDir)
	require.NotNil(t, bc.Spec.Source.SourceSecret)
	assert.Equal(t, DefaultSourceSecret, bc.Spec.Source.SourceSecret.Name)

	require.NotNil(t, bc.Spec.Strategy.SourceStrategy)
	assert.Equal(t, "ImageStreamTag", bc.Spec.Strategy.SourceStrategy.From.Kind)
	assert.Equal(t, "release-bot-builder:dev", bc.Spec.Strategy.SourceStrategy.From.Name)

	assert.Equal(t, "release-bot:latest", bc.Spec.Output.To.Name)

	types := make([]buildv1.BuildTriggerType, 0, len(bc.Spec.Triggers))
	for _, trigger := range bc.Spec.Triggers {
		types = append(types, trigger.Type)
	}
	assert.Contains(t, types, buildv1.ConfigChangeBuildTriggerType)
	assert.Contains(t, types, buildv1.ImageChangeBuildTriggerType)
	assert.NotContains(t, types, buildv1.GitHubWebHookBuildTriggerType)
}

func TestBuildConfigOptionalFields(t *testing.T) {
	t.Parallel()

	spec := testSpec()
	spec.ConfigurationDir = "deploy/prod"
	spec.SourceSecret = ""
	spec.WebhookSecret = "hook-secret"
	bc := spec.BuildConfig()

	assert.Equal(t, "deploy/prod", bc.Spec.Source.ContextDir)
	assert.Nil(t, bc.Spec.Source.SourceSecret)

	var webhook *buildv1.WebHookTrigger
	for _, trigger := range bc.Spec.Triggers {
		if trigger.Type == buildv1.GitHubWebHookBuildTriggerType {
			webhook = trigger.GitHubWebHook
		}
	}
	require.NotNil(t, webhook)
	assert.Equal(t, "hook-secret", webhook.Secret)
}

func TestDeploymentConfig(t *testing.T) {
	t.Parallel()

	dc := testSpec().DeploymentConfig()

	assert.Equal(t, "release-bot", dc.Name)
	assert.Equal(t, appsv1.DeploymentStrategyTypeRolling, dc.Spec.Strategy.Type)
	assert.Equal(t, int32(1), dc.Spec.Replicas)

	require.Len(t, dc.Spec.Template.Spec.Containers, 1)
	container := dc.Spec.Template.Spec.Containers[0]
	assert.Equal(t, "release-bot", container.Name)
	assert.Equal(t, "release-bot:latest", container.Image)
	assert.Equal(t, "400m", container.Resources.Limits.Cpu().String())

	var imageChange *appsv1.DeploymentTriggerImageChangeParams
	for _, trigger := range dc.Spec.Triggers {
		if trigger.Type == appsv1.DeploymentTriggerOnImageChange {
			imageChange = trigger.ImageChangeParams
		}
	}
	require.NotNil(t, imageChange)
	assert.True(t, imageChange.Automatic)
	assert.Equal(t, []string{"release-bot"}, imageChange.ContainerNames)
	assert.Equal(t, "release-bot:latest", imageChange.From.Name)

	for key, value := range dc.Spec.Selector {
		assert.Equal(t, value, dc.Spec.Template.Labels[key], "selector key %s must match pod labels", key)
	}
}

func TestOutputTagMatchesWatchedTag(t *testing.T) {
	t.Parallel()

	for _, app := range []string{"release-bot", "packit", "bot-7"} {
		spec := Spec{AppName: app, ConfigurationRepository: "https://example.com/conf.git"}.WithDefaults()

		output := spec.BuildConfig().Spec.Output.To.Name
		var watched string
		for _, trigger := range spec.DeploymentConfig().Spec.Triggers {
			if trigger.Type == appsv1.DeploymentTriggerOnImageChange {
				watched = trigger.ImageChangeParams.From.Name
			}
		}
		assert.Equal(t, output, watched, "build output and deployment trigger must reference the same tag")
	}
}

func TestObjectsOrderAndLabels(t *testing.T) {
	t.Parallel()

	spec := testSpec()
	spec.Labels = map[string]string{"team": "release"}
	objects := spec.Objects()

	require.Len(t, objects, 4)
	assert.Equal(t, "release-bot-builder", objects[0].(interface{ GetName() string }).GetName())

	for _, obj := range objects {
		labelled := obj.(interface{ GetLabels() map[string]string })
		assert.Equal(t, "release-bot", labelled.GetLabels()["app"])
		assert.Equal(t, "release-bot", labelled.GetLabels()["template"])
		assert.Equal(t, "release", labelled.GetLabels()["team"])
	}
}
