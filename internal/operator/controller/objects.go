package controller

import (
	"context"
	"fmt"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/shresthagrawal/release-bot/api/v1alpha1"
	"github.com/shresthagrawal/release-bot/internal/manifest"
	"github.com/shresthagrawal/release-bot/internal/util/labels"
)

// deploymentSpec converts the custom resource into the manifest spec
// the object builders consume.
func deploymentSpec(deployment *v1alpha1.ReleaseBotDeployment) manifest.Spec {
	spec := manifest.Spec{
		AppName:                 deployment.EffectiveAppName(),
		ConfigurationRepository: deployment.Spec.ConfigurationRepository,
		ConfigurationDir:        deployment.Spec.ConfigurationDir,
		BuilderImage:            deployment.Spec.BuilderImage,
		SourceSecret:            deployment.Spec.SourceSecret,
		WebhookSecret:           deployment.Spec.WebhookSecret,
		Namespace:               deployment.Namespace,
		Labels:                  map[string]string{labels.KeyManagedBy: labels.ManagedByOperator},
	}
	if deployment.Spec.Replicas != nil {
		spec.Replicas = *deployment.Spec.Replicas
	}
	if deployment.Spec.Resources != nil {
		spec.Resources = *deployment.Spec.Resources
	}
	return spec.WithDefaults()
}

// reconcileObjects converges the four owned objects on the state
// derived from the resource.
func (r *ReleaseBotDeploymentReconciler) reconcileObjects(ctx context.Context, deployment *v1alpha1.ReleaseBotDeployment) error {
	logger := log.FromContext(ctx)
	spec := deploymentSpec(deployment)

	desiredBuilder := spec.BuilderImageStream()
	desiredApp := spec.AppImageStream()
	desiredBC := spec.BuildConfig()
	desiredDC := spec.DeploymentConfig()

	builder := &imagev1.ImageStream{ObjectMeta: metav1.ObjectMeta{Name: desiredBuilder.Name, Namespace: deployment.Namespace}}
	app := &imagev1.ImageStream{ObjectMeta: metav1.ObjectMeta{Name: desiredApp.Name, Namespace: deployment.Namespace}}
	bc := &buildv1.BuildConfig{ObjectMeta: metav1.ObjectMeta{Name: desiredBC.Name, Namespace: deployment.Namespace}}
	dc := &appsv1.DeploymentConfig{ObjectMeta: metav1.ObjectMeta{Name: desiredDC.Name, Namespace: deployment.Namespace}}

	objects := []struct {
		kind   string
		object client.Object
		mutate func()
	}{
		{"imagestream", builder, func() {
			builder.Labels = desiredBuilder.Labels
			builder.Spec = desiredBuilder.Spec
		}},
		{"imagestream", app, func() {
			app.Labels = desiredApp.Labels
			app.Spec = desiredApp.Spec
		}},
		{"buildconfig", bc, func() {
			lastTriggered := buildTriggerState(bc)
			bc.Labels = desiredBC.Labels
			bc.Spec = desiredBC.Spec
			restoreBuildTriggerState(bc, lastTriggered)
		}},
		{"deploymentconfig", dc, func() {
			lastTriggered := deployTriggerState(dc)
			dc.Labels = desiredDC.Labels
			dc.Spec = desiredDC.Spec
			restoreDeployTriggerState(dc, lastTriggered)
		}},
	}

	for _, o := range objects {
		result, err := controllerutil.CreateOrUpdate(ctx, r.Client, o.object, func() error {
			o.mutate()
			return controllerutil.SetControllerReference(deployment, o.object, r.Scheme)
		})
		if err != nil {
			return fmt.Errorf("failed to reconcile %s %s: %w", o.kind, o.object.GetName(), err)
		}
		if result != controllerutil.OperationResultNone {
			logger.Info("reconciled object", "kind", o.kind, "name", o.object.GetName(), "result", result)
		}
	}
	return nil
}

// The platform records which image last fired an image change trigger
// inside the spec. Rewriting the spec must carry that record over, or
// every reconcile would retrigger a build or rollout.

func buildTriggerState(bc *buildv1.BuildConfig) string {
	for i := range bc.Spec.Triggers {
		if bc.Spec.Triggers[i].ImageChange != nil {
			return bc.Spec.Triggers[i].ImageChange.LastTriggeredImageID
		}
	}
	return ""
}

func restoreBuildTriggerState(bc *buildv1.BuildConfig, lastTriggered string) {
	for i := range bc.Spec.Triggers {
		if bc.Spec.Triggers[i].ImageChange != nil {
			bc.Spec.Triggers[i].ImageChange.LastTriggeredImageID = lastTriggered
		}
	}
}

func deployTriggerState(dc *appsv1.DeploymentConfig) string {
	for i := range dc.Spec.Triggers {
		if dc.Spec.Triggers[i].ImageChangeParams != nil {
			return dc.Spec.Triggers[i].ImageChangeParams.LastTriggeredImage
		}
	}
	return ""
}

func restoreDeployTriggerState(dc *appsv1.DeploymentConfig, lastTriggered string) {
	for i := range dc.Spec.Triggers {
		if dc.Spec.Triggers[i].ImageChangeParams != nil {
			dc.Spec.Triggers[i].ImageChangeParams.LastTriggeredImage = lastTriggered
		}
	}
}
