// Package v1alpha1 contains API Schema definitions for the releasebot.io v1alpha1 API group
// +kubebuilder:object:generate=true
// +groupName=releasebot.io
package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ReleaseBotDeploymentSpec defines the desired state of a release-bot
// deployment.
type ReleaseBotDeploymentSpec struct {
	// AppName names every object of the deployment. Defaults to the
	// resource name when empty.
	// +kubebuilder:validation:Pattern=`^[a-z0-9](?:[a-z0-9-]{0,53}[a-z0-9])?$`
	// +optional
	AppName string `json:"appName,omitempty"`

	// ConfigurationRepository is the Git repository holding the bot's
	// configuration
	// +kubebuilder:validation:MinLength=1
	ConfigurationRepository string `json:"configurationRepository"`

	// ConfigurationDir is the directory within the repository to build
	// from. Empty means the repository root.
	// +optional
	ConfigurationDir string `json:"configurationDir,omitempty"`

	// BuilderImage is the source-to-image builder the bot image is
	// built on
	// +kubebuilder:default="usercont/release-bot:dev"
	// +optional
	BuilderImage string `json:"builderImage,omitempty"`

	// SourceSecret names the secret used to clone the configuration
	// repository
	// +kubebuilder:default="release-bot-secret"
	// +optional
	SourceSecret string `json:"sourceSecret,omitempty"`

	// WebhookSecret enables a GitHub webhook trigger on the build
	// config when set
	// +optional
	WebhookSecret string `json:"webhookSecret,omitempty"`

	// Replicas is the number of release-bot pods to run
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=1
	// +optional
	Replicas *int32 `json:"replicas,omitempty"`

	// Resources is the pod resource envelope
	// +optional
	Resources *corev1.ResourceRequirements `json:"resources,omitempty"`

	// Paused stops the operator from reconciling this deployment
	// +optional
	Paused bool `json:"paused,omitempty"`
}

// ReleaseBotDeploymentStatus defines the observed state of a
// ReleaseBotDeployment.
type ReleaseBotDeploymentStatus struct {
	// Phase is the overall deployment phase
	// +kubebuilder:validation:Enum=Pending;Building;Rolling;Ready;Degraded;Failed
	Phase DeploymentPhase `json:"phase,omitempty"`

	// Conditions represent the latest available observations
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// LatestBuild names the most recent build started for this
	// deployment
	// +optional
	LatestBuild string `json:"latestBuild,omitempty"`

	// BuildPhase is the phase of the latest build
	// +optional
	BuildPhase string `json:"buildPhase,omitempty"`

	// ReadyReplicas is the number of pods serving traffic
	// +optional
	ReadyReplicas int32 `json:"readyReplicas,omitempty"`

	// ObservedGeneration is the last observed generation
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// LastReconcileTime is when the operator last reconciled this
	// deployment
	// +optional
	LastReconcileTime *metav1.Time `json:"lastReconcileTime,omitempty"`
}

// DeploymentPhase represents the overall deployment state.
type DeploymentPhase string

const (
	// PhasePending means the objects are being created
	PhasePending DeploymentPhase = "Pending"
	// PhaseBuilding means a build of the bot image is running
	PhaseBuilding DeploymentPhase = "Building"
	// PhaseRolling means a new image is rolling out
	PhaseRolling DeploymentPhase = "Rolling"
	// PhaseReady means the desired replicas are serving
	PhaseReady DeploymentPhase = "Ready"
	// PhaseDegraded means fewer pods than desired are serving
	PhaseDegraded DeploymentPhase = "Degraded"
	// PhaseFailed means the build or rollout failed and needs
	// intervention
	PhaseFailed DeploymentPhase = "Failed"
)

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=rbot
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Build",type=string,JSONPath=`.status.buildPhase`
// +kubebuilder:printcolumn:name="Ready",type=integer,JSONPath=`.status.readyReplicas`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// ReleaseBotDeployment is the Schema for the releasebotdeployments API.
type ReleaseBotDeployment struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ReleaseBotDeploymentSpec   `json:"spec,omitempty"`
	Status ReleaseBotDeploymentStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ReleaseBotDeploymentList contains a list of ReleaseBotDeployment.
type ReleaseBotDeploymentList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ReleaseBotDeployment `json:"items"`
}

// Condition types for ReleaseBotDeployment
const (
	// ConditionReady indicates the deployment is fully rolled out
	ConditionReady = "Ready"
	// ConditionBuildSucceeded indicates the latest build completed
	ConditionBuildSucceeded = "BuildSucceeded"
	// ConditionRolloutSucceeded indicates the latest rollout completed
	ConditionRolloutSucceeded = "RolloutSucceeded"
)

// EffectiveAppName returns the application name the deployment's
// objects derive from.
func (r *ReleaseBotDeployment) EffectiveAppName() string {
	if r.Spec.AppName != "" {
		return r.Spec.AppName
	}
	return r.Name
}
