package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shresthagrawal/release-bot/internal/cluster"
)

func TestRenderStatus_Ready(t *testing.T) {
	out := renderStatus(testStatus())

	assert.Contains(t, out, "ochotnice")
	assert.Contains(t, out, "namespace release-bots")
	assert.Contains(t, out, "ochotnice-3")
	assert.Contains(t, out, "1/1 ready")
	assert.Contains(t, out, "Ready")
}

func TestRenderStatus_BeforeFirstBuild(t *testing.T) {
	status := &cluster.Status{AppName: "ochotnice", Namespace: "release-bots"}

	out := renderStatus(status)

	assert.Contains(t, out, "no builds yet")
	assert.Contains(t, out, "not deployed")
	assert.Contains(t, out, "Not ready")
}

func TestRenderBuildPhase(t *testing.T) {
	// The phase text must survive styling in every case.
	for _, phase := range []string{"Complete", "Failed", "Error", "Cancelled", "Running", "Pending"} {
		assert.Contains(t, renderBuildPhase(phase), phase)
	}
}
