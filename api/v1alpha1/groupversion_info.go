// Package v1alpha1 contains API Schema definitions for the releasebot.io v1alpha1 API group
// +kubebuilder:object:generate=true
// +groupName=releasebot.io
package v1alpha1

import (
	appsv1 "github.com/openshift/api/apps/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	// GroupVersion is group version used to register these objects
	GroupVersion = schema.GroupVersion{Group: "releasebot.io", Version: "v1alpha1"}

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds the types in this group-version to the given scheme
	AddToScheme = SchemeBuilder.AddToScheme

	// Scheme is the runtime scheme containing the registered types
	Scheme = runtime.NewScheme()
)

func init() {
	SchemeBuilder.Register(&ReleaseBotDeployment{}, &ReleaseBotDeploymentList{})

	// Add core Kubernetes types to the Scheme (for Secret, Event, etc.)
	_ = clientgoscheme.AddToScheme(Scheme)

	// Add the OpenShift groups the operator manages
	_ = imagev1.Install(Scheme)
	_ = buildv1.Install(Scheme)
	_ = appsv1.Install(Scheme)

	// Add our types to the Scheme
	_ = AddToScheme(Scheme)
}
