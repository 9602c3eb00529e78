package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	app := "release-bot"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "AppImageStream",
			got:      AppImageStream(app),
			expected: "release-bot",
		},
		{
			name:     "BuilderImageStream",
			got:      BuilderImageStream(app),
			expected: "release-bot-builder",
		},
		{
			name:     "BuildConfig",
			got:      BuildConfig(app),
			expected: "release-bot",
		},
		{
			name:     "DeploymentConfig",
			got:      DeploymentConfig(app),
			expected: "release-bot",
		},
		{
			name:     "Build",
			got:      Build(app, 7),
			expected: "release-bot-7",
		},
		{
			name:     "BuilderImageStreamTag",
			got:      BuilderImageStreamTag(app),
			expected: "release-bot-builder:dev",
		},
		{
			name:     "OutputImageStreamTag",
			got:      OutputImageStreamTag(app),
			expected: "release-bot:latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.got)
			}
		})
	}
}

// The build config pushes to the same tag the deployment config watches.
// That relationship must hold for any application name.
func TestOutputTagMatchesWatchedTag(t *testing.T) {
	for _, app := range []string{"release-bot", "a", "my-bot-2", "upstream-release-bot"} {
		want := AppImageStream(app) + ":" + OutputTag
		if got := OutputImageStreamTag(app); got != want {
			t.Errorf("app %q: output tag %q does not match watched tag %q", app, got, want)
		}
	}
}
