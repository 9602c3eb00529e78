package controller

import (
	"context"
	"time"

	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/shresthagrawal/release-bot/api/v1alpha1"
)

// defaultRequeueAfter is the steady-state reconciliation interval.
// Owned-object events requeue sooner when something changes.
const defaultRequeueAfter = 30 * time.Second

// ReleaseBotDeploymentReconciler reconciles a ReleaseBotDeployment
// object.
type ReleaseBotDeploymentReconciler struct {
	client.Client
	Scheme *runtime.Scheme

	recorder      record.EventRecorder
	enableMetrics bool
}

// NewReleaseBotDeploymentReconciler creates a new reconciler.
func NewReleaseBotDeploymentReconciler(c client.Client, scheme *runtime.Scheme, recorder record.EventRecorder, enableMetrics bool) *ReleaseBotDeploymentReconciler {
	return &ReleaseBotDeploymentReconciler{
		Client:        c,
		Scheme:        scheme,
		recorder:      recorder,
		enableMetrics: enableMetrics,
	}
}

// +kubebuilder:rbac:groups=releasebot.io,resources=releasebotdeployments,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=releasebot.io,resources=releasebotdeployments/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=releasebot.io,resources=releasebotdeployments/finalizers,verbs=update
// +kubebuilder:rbac:groups=image.openshift.io,resources=imagestreams,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=build.openshift.io,resources=buildconfigs,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=build.openshift.io,resources=builds,verbs=get;list;watch
// +kubebuilder:rbac:groups=apps.openshift.io,resources=deploymentconfigs,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch
// +kubebuilder:rbac:groups=coordination.k8s.io,resources=leases,verbs=get;create;update

// Reconcile handles the reconciliation loop for ReleaseBotDeployment
// resources.
func (r *ReleaseBotDeploymentReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	start := time.Now()

	deployment := &v1alpha1.ReleaseBotDeployment{}
	if err := r.Get(ctx, req.NamespacedName, deployment); err != nil {
		if apierrors.IsNotFound(err) {
			// Deleted; the owned objects go with it through garbage
			// collection.
			return ctrl.Result{}, nil
		}
		logger.Error(err, "unable to fetch ReleaseBotDeployment")
		return ctrl.Result{}, err
	}

	if deployment.Spec.Paused {
		logger.Info("deployment is paused, skipping reconciliation")
		return ctrl.Result{RequeueAfter: defaultRequeueAfter}, nil
	}

	result, err := r.reconcile(ctx, deployment)

	deployment.Status.LastReconcileTime = &metav1.Time{Time: time.Now()}
	deployment.Status.ObservedGeneration = deployment.Generation
	if statusErr := r.Status().Update(ctx, deployment); statusErr != nil {
		logger.Error(statusErr, "failed to update status")
		if err == nil {
			err = statusErr
		}
	}

	if r.enableMetrics {
		recordReconcileMetric(deployment.Name, reconcileResult(err), time.Since(start).Seconds())
	}

	return result, err
}

// reconcile runs one pass: converge the owned objects, then fold the
// build and rollout state into the status.
func (r *ReleaseBotDeploymentReconciler) reconcile(ctx context.Context, deployment *v1alpha1.ReleaseBotDeployment) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	logger.V(1).Info("reconciling owned objects")
	if err := r.reconcileObjects(ctx, deployment); err != nil {
		return ctrl.Result{}, err
	}

	logger.V(1).Info("observing build state")
	if err := r.observeBuild(ctx, deployment); err != nil {
		return ctrl.Result{}, err
	}

	logger.V(1).Info("observing rollout state")
	if err := r.observeRollout(ctx, deployment); err != nil {
		return ctrl.Result{}, err
	}

	r.updatePhase(deployment)

	return ctrl.Result{RequeueAfter: defaultRequeueAfter}, nil
}

func reconcileResult(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// SetupWithManager sets up the controller with the Manager.
func (r *ReleaseBotDeploymentReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.ReleaseBotDeployment{}).
		Owns(&imagev1.ImageStream{}).
		Owns(&buildv1.BuildConfig{}).
		Owns(&appsv1.DeploymentConfig{}).
		Complete(r)
}
