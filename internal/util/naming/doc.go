// Package naming provides consistent naming functions for deployment resources.
//
// Object names derive deterministically from the application name: the
// application image stream, build config, and deployment config share the
// application name itself, while the builder image stream carries a
// "-builder" suffix. Tag references combine these names with the fixed
// builder and output tags.
package naming
