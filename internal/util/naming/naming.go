package naming

import "fmt"

// Naming functions for deployment resources.
// Every object created for an application derives its name from the
// application name, so a single name is enough to locate, update, or
// clean up the whole set.

// Image stream tags used by the build pipeline. The build config writes
// its output to the tag returned by OutputImageStreamTag, and the
// deployment config watches that same tag, so both sides always agree.
const (
	// BuilderTag is the tag under which the upstream builder image is tracked.
	BuilderTag = "dev"

	// OutputTag is the tag that receives built application images.
	OutputTag = "latest"
)

// AppImageStream returns the name of the image stream holding built
// application images.
func AppImageStream(app string) string {
	return app
}

// BuilderImageStream returns the name of the image stream tracking the
// upstream builder image.
func BuilderImageStream(app string) string {
	return fmt.Sprintf("%s-builder", app)
}

// BuildConfig returns the name of the build config.
func BuildConfig(app string) string {
	return app
}

// DeploymentConfig returns the name of the deployment config.
func DeploymentConfig(app string) string {
	return app
}

// Build returns the name of the numbered build instantiated from the
// build config, as assigned by the platform.
func Build(app string, number int64) string {
	return fmt.Sprintf("%s-%d", BuildConfig(app), number)
}

// BuilderImageStreamTag returns the ImageStreamTag reference the build
// strategy pulls its builder image from.
func BuilderImageStreamTag(app string) string {
	return fmt.Sprintf("%s:%s", BuilderImageStream(app), BuilderTag)
}

// OutputImageStreamTag returns the ImageStreamTag reference that build
// output is pushed to and that deployments roll out from.
func OutputImageStreamTag(app string) string {
	return fmt.Sprintf("%s:%s", AppImageStream(app), OutputTag)
}
