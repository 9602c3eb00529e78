// Package cluster talks to an OpenShift cluster on behalf of the
// deployment CLI.
//
// The package is organized into focused modules:
//
//   - client.go: Kubeconfig loading and clientset construction
//   - apply.go: Create-or-update of the per-application objects
//   - wait.go: Polling for build completion and rollout availability
//   - status.go: Point-in-time deployment status
//   - delete.go: Per-application and fleet-wide cleanup
//   - template.go: Publishing the shared template object
//   - secret.go: Source secret lookups
//
// All operations are scoped to the namespace the client was created with.
// Objects are located purely by name and label conventions, so a client
// needs nothing beyond an application name to inspect or remove a
// deployment.
package cluster
