package controller

import (
	"context"
	"fmt"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/shresthagrawal/release-bot/api/v1alpha1"
	"github.com/shresthagrawal/release-bot/internal/util/naming"
)

// newRCAvailableReason is the Progressing reason the platform sets once
// a deployment config's latest rollout has completed.
const newRCAvailableReason = "NewReplicationControllerAvailable"

// observeBuild folds the latest build into the status and the
// BuildSucceeded condition.
func (r *ReleaseBotDeploymentReconciler) observeBuild(ctx context.Context, deployment *v1alpha1.ReleaseBotDeployment) error {
	app := deployment.EffectiveAppName()

	bc := &buildv1.BuildConfig{}
	key := types.NamespacedName{Namespace: deployment.Namespace, Name: naming.BuildConfig(app)}
	if err := r.Get(ctx, key, bc); err != nil {
		return fmt.Errorf("failed to get build config: %w", err)
	}

	if bc.Status.LastVersion == 0 {
		deployment.Status.LatestBuild = ""
		deployment.Status.BuildPhase = ""
		meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
			Type:    v1alpha1.ConditionBuildSucceeded,
			Status:  metav1.ConditionFalse,
			Reason:  "NoBuilds",
			Message: "No build has started yet",
		})
		return nil
	}

	buildName := naming.Build(app, bc.Status.LastVersion)
	build := &buildv1.Build{}
	err := r.Get(ctx, types.NamespacedName{Namespace: deployment.Namespace, Name: buildName}, build)
	if apierrors.IsNotFound(err) {
		// Not materialized yet, or already pruned.
		deployment.Status.LatestBuild = buildName
		deployment.Status.BuildPhase = ""
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get build %s: %w", buildName, err)
	}

	deployment.Status.LatestBuild = build.Name
	deployment.Status.BuildPhase = string(build.Status.Phase)

	switch build.Status.Phase {
	case buildv1.BuildPhaseComplete:
		meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
			Type:    v1alpha1.ConditionBuildSucceeded,
			Status:  metav1.ConditionTrue,
			Reason:  "BuildComplete",
			Message: fmt.Sprintf("Build %s completed", build.Name),
		})
	case buildv1.BuildPhaseFailed, buildv1.BuildPhaseError, buildv1.BuildPhaseCancelled:
		message := fmt.Sprintf("Build %s ended with phase %s", build.Name, build.Status.Phase)
		prev := meta.FindStatusCondition(deployment.Status.Conditions, v1alpha1.ConditionBuildSucceeded)
		if prev == nil || prev.Message != message {
			// Only the first observation of a failed build counts.
			r.recorder.Event(deployment, corev1.EventTypeWarning, "BuildFailed", message)
			if r.enableMetrics {
				recordBuildFailureMetric(deployment.Name)
			}
		}
		meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
			Type:    v1alpha1.ConditionBuildSucceeded,
			Status:  metav1.ConditionFalse,
			Reason:  string(build.Status.Phase),
			Message: message,
		})
	default:
		meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
			Type:    v1alpha1.ConditionBuildSucceeded,
			Status:  metav1.ConditionFalse,
			Reason:  "BuildRunning",
			Message: fmt.Sprintf("Build %s is %s", build.Name, build.Status.Phase),
		})
	}
	return nil
}

// observeRollout folds the deployment config state into the status and
// the RolloutSucceeded condition.
func (r *ReleaseBotDeploymentReconciler) observeRollout(ctx context.Context, deployment *v1alpha1.ReleaseBotDeployment) error {
	app := deployment.EffectiveAppName()

	dc := &appsv1.DeploymentConfig{}
	key := types.NamespacedName{Namespace: deployment.Namespace, Name: naming.DeploymentConfig(app)}
	if err := r.Get(ctx, key, dc); err != nil {
		return fmt.Errorf("failed to get deployment config: %w", err)
	}

	deployment.Status.ReadyReplicas = dc.Status.ReadyReplicas

	available := false
	progressing := true
	progressingReason := ""
	progressingMessage := ""
	for i := range dc.Status.Conditions {
		cond := dc.Status.Conditions[i]
		switch cond.Type {
		case appsv1.DeploymentAvailable:
			available = cond.Status == corev1.ConditionTrue
		case appsv1.DeploymentProgressing:
			progressing = cond.Status != corev1.ConditionFalse
			progressingReason = cond.Reason
			progressingMessage = cond.Message
		}
	}

	switch {
	case !progressing:
		meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
			Type:    v1alpha1.ConditionRolloutSucceeded,
			Status:  metav1.ConditionFalse,
			Reason:  "RolloutFailed",
			Message: progressingMessage,
		})
	case available && progressingReason == newRCAvailableReason:
		meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
			Type:    v1alpha1.ConditionRolloutSucceeded,
			Status:  metav1.ConditionTrue,
			Reason:  "RolloutComplete",
			Message: fmt.Sprintf("Deployment version %d rolled out", dc.Status.LatestVersion),
		})
	default:
		meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
			Type:    v1alpha1.ConditionRolloutSucceeded,
			Status:  metav1.ConditionFalse,
			Reason:  "RolloutInProgress",
			Message: fmt.Sprintf("%d/%d replicas ready", dc.Status.ReadyReplicas, dc.Spec.Replicas),
		})
	}
	return nil
}

// updatePhase derives the overall phase from the observed build and
// rollout state and sets the Ready condition. Phase transitions are
// surfaced as events on the deployment.
func (r *ReleaseBotDeploymentReconciler) updatePhase(deployment *v1alpha1.ReleaseBotDeployment) {
	desired := int32(1)
	if deployment.Spec.Replicas != nil {
		desired = *deployment.Spec.Replicas
	}

	rollout := meta.FindStatusCondition(deployment.Status.Conditions, v1alpha1.ConditionRolloutSucceeded)
	rolloutComplete := rollout != nil && rollout.Status == metav1.ConditionTrue
	rolloutFailed := rollout != nil && rollout.Reason == "RolloutFailed"

	var phase v1alpha1.DeploymentPhase
	switch {
	case buildFailed(deployment.Status.BuildPhase) || rolloutFailed:
		phase = v1alpha1.PhaseFailed
	case deployment.Status.LatestBuild == "":
		phase = v1alpha1.PhasePending
	case buildInProgress(deployment.Status.BuildPhase):
		phase = v1alpha1.PhaseBuilding
	case !rolloutComplete:
		phase = v1alpha1.PhaseRolling
	case deployment.Status.ReadyReplicas >= desired:
		phase = v1alpha1.PhaseReady
	default:
		phase = v1alpha1.PhaseDegraded
	}

	if deployment.Status.Phase != phase {
		eventType := corev1.EventTypeNormal
		if phase == v1alpha1.PhaseFailed || phase == v1alpha1.PhaseDegraded {
			eventType = corev1.EventTypeWarning
		}
		r.recorder.Eventf(deployment, eventType, string(phase), "Deployment entered phase %s", phase)
	}
	deployment.Status.Phase = phase

	ready := phase == v1alpha1.PhaseReady
	meta.SetStatusCondition(&deployment.Status.Conditions, metav1.Condition{
		Type:    v1alpha1.ConditionReady,
		Status:  conditionStatus(ready),
		Reason:  string(phase),
		Message: fmt.Sprintf("%d/%d pods ready", deployment.Status.ReadyReplicas, desired),
	})

	if r.enableMetrics {
		recordDeploymentStatusMetric(deployment.Name, ready, deployment.Status.ReadyReplicas)
	}
}

func buildFailed(phase string) bool {
	switch phase {
	case string(buildv1.BuildPhaseFailed), string(buildv1.BuildPhaseError), string(buildv1.BuildPhaseCancelled):
		return true
	}
	return false
}

func buildInProgress(phase string) bool {
	return phase != string(buildv1.BuildPhaseComplete) && !buildFailed(phase)
}

func conditionStatus(ok bool) metav1.ConditionStatus {
	if ok {
		return metav1.ConditionTrue
	}
	return metav1.ConditionFalse
}
