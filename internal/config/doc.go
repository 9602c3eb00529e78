// Package config defines the releasebot.yaml configuration model.
//
// The [Config] struct is the canonical description of one release-bot
// deployment: the application name, the configuration repository the
// bot builds from, and the knobs for the builder image, replicas and
// resources. It is produced by LoadFile or by the interactive wizard
// and converts into a manifest spec via [Config.ManifestSpec].
package config
