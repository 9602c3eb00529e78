// Package labels provides consistent labeling for deployment objects.
//
// Every object carries the shared template label plus an app label naming
// the application it belongs to. A builder pattern constructs label sets
// with manager identification, and selector helpers produce the matching
// label selector strings.
package labels
