// Package controller implements the Kubernetes controller for
// ReleaseBotDeployment custom resources.
//
// The controller keeps four owned objects in step with each resource:
// the builder and application image streams, the build config and the
// deployment config. From the latest build and the rollout state it
// derives a deployment phase:
// Pending -> Building -> Rolling -> Ready, with Degraded and Failed
// for unhealthy deployments.
//
// Because the objects carry owner references, changes to any of them
// requeue the owning resource, so build and rollout progress shows up
// in the status without tight polling.
package controller
