package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/shresthagrawal/release-bot/internal/manifest"
)

// DefaultSourceSecretOption is the source secret preset in the wizard.
const DefaultSourceSecretOption = manifest.DefaultSourceSecret

// BuilderImageOption represents a selectable builder image.
type BuilderImageOption struct {
	Value       string
	Label       string
	Description string
}

// BuilderImages contains the builder images offered by the wizard.
var BuilderImages = []BuilderImageOption{
	{Value: "usercont/release-bot:dev", Label: "usercont/release-bot:dev", Description: "Development builder (recommended)"},
	{Value: "usercont/release-bot:latest", Label: "usercont/release-bot:latest", Description: "Latest released builder"},
	{Value: "usercont/release-bot:stable", Label: "usercont/release-bot:stable", Description: "Stable builder"},
}

// ReplicaCountOptions contains common replica counts.
var ReplicaCountOptions = []huh.Option[int]{
	huh.NewOption("1 (Recommended)", 1),
	huh.NewOption("2", 2),
	huh.NewOption("3", 3),
	huh.NewOption("5", 5),
}

// BuilderImagesToOptions converts BuilderImageOption slice to huh.Option slice.
func BuilderImagesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(BuilderImages))
	for i, image := range BuilderImages {
		opts[i] = huh.NewOption(image.Label+" - "+image.Description, image.Value)
	}
	return opts
}
