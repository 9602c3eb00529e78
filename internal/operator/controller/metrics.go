package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// Reconciliation metrics
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "releasebot",
			Subsystem: "operator",
			Name:      "reconcile_total",
			Help:      "Total number of reconciliations by result",
		},
		[]string{"deployment", "result"},
	)

	reconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "releasebot",
			Subsystem: "operator",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"deployment"},
	)

	// Deployment status metrics
	deploymentReady = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "releasebot",
			Subsystem: "operator",
			Name:      "deployment_ready",
			Help:      "Whether the deployment is ready (1) or not (0)",
		},
		[]string{"deployment"},
	)

	replicasReady = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "releasebot",
			Subsystem: "operator",
			Name:      "replicas_ready",
			Help:      "Number of ready bot replicas",
		},
		[]string{"deployment"},
	)

	buildFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "releasebot",
			Subsystem: "operator",
			Name:      "build_failures_total",
			Help:      "Total number of failed configuration builds",
		},
		[]string{"deployment"},
	)
)

func init() {
	// Register metrics with controller-runtime's registry
	metrics.Registry.MustRegister(
		reconcileTotal,
		reconcileDuration,
		deploymentReady,
		replicasReady,
		buildFailuresTotal,
	)
}

// recordReconcileMetric records a reconciliation result.
func recordReconcileMetric(deployment string, result string, duration float64) {
	reconcileTotal.WithLabelValues(deployment, result).Inc()
	reconcileDuration.WithLabelValues(deployment).Observe(duration)
}

// recordDeploymentStatusMetric records the observed deployment status.
func recordDeploymentStatusMetric(deployment string, ready bool, readyReplicas int32) {
	if ready {
		deploymentReady.WithLabelValues(deployment).Set(1)
	} else {
		deploymentReady.WithLabelValues(deployment).Set(0)
	}
	replicasReady.WithLabelValues(deployment).Set(float64(readyReplicas))
}

// recordBuildFailureMetric counts a newly observed build failure.
func recordBuildFailureMetric(deployment string) {
	buildFailuresTotal.WithLabelValues(deployment).Inc()
}
