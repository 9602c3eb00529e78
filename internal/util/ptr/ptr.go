// Package ptr turns values into pointers for the optional fields of
// Kubernetes API objects.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T { return &v }
