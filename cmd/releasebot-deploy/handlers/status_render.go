package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shresthagrawal/release-bot/internal/cluster"
)

// Colors for the styled status output.
var (
	statusColorGreen = lipgloss.Color("#22c55e")
	statusColorRed   = lipgloss.Color("#ef4444")
	statusColorBlue  = lipgloss.Color("#3b82f6")
	statusColorDim   = lipgloss.Color("#6b7280")
	statusColorWhite = lipgloss.Color("#f9fafb")
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(statusColorWhite)

	statusSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(statusColorBlue)

	statusDimStyle = lipgloss.NewStyle().
			Foreground(statusColorDim)

	statusGoodStyle = lipgloss.NewStyle().
			Foreground(statusColorGreen)

	statusBadStyle = lipgloss.NewStyle().
			Foreground(statusColorRed)
)

// renderStatus produces the styled status summary for interactive
// terminals.
func renderStatus(status *cluster.Status) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(statusTitleStyle.Render(fmt.Sprintf("  %s", status.AppName)))
	b.WriteString(statusDimStyle.Render(fmt.Sprintf("  namespace %s", status.Namespace)))
	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render("  " + strings.Repeat("═", 44)))
	b.WriteString("\n\n")

	renderBuildSection(&b, status)
	renderDeploymentSection(&b, status)

	b.WriteString("  Overall: ")
	if status.Ready {
		b.WriteString(statusGoodStyle.Render("Ready"))
	} else {
		b.WriteString(statusBadStyle.Render("Not ready"))
	}
	b.WriteString("\n\n")

	return b.String()
}

func renderBuildSection(b *strings.Builder, status *cluster.Status) {
	b.WriteString(statusSectionStyle.Render("  Build"))
	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render("  " + strings.Repeat("─", 38)))
	b.WriteString("\n")

	if status.BuilderImage != "" {
		fmt.Fprintf(b, "    Builder:   %s\n", status.BuilderImage)
	}
	if status.LatestBuild != nil {
		fmt.Fprintf(b, "    Latest:    %s %s\n", status.LatestBuild.Name, renderBuildPhase(status.LatestBuild.Phase))
		if status.LatestBuild.StartedAt != nil {
			fmt.Fprintf(b, "    Started:   %s\n", status.LatestBuild.StartedAt.Format("2006-01-02 15:04:05"))
		}
	} else {
		b.WriteString("    Latest:    " + statusDimStyle.Render("no builds yet") + "\n")
	}
	b.WriteString("\n")
}

func renderDeploymentSection(b *strings.Builder, status *cluster.Status) {
	b.WriteString(statusSectionStyle.Render("  Deployment"))
	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render("  " + strings.Repeat("─", 38)))
	b.WriteString("\n")

	if status.Deployment == nil {
		b.WriteString("    " + statusDimStyle.Render("not deployed") + "\n\n")
		return
	}

	fmt.Fprintf(b, "    Replicas:  %d/%d ready\n", status.Deployment.ReadyReplicas, status.Deployment.Replicas)
	fmt.Fprintf(b, "    Version:   %d\n", status.Deployment.LatestVersion)
	b.WriteString("    Available: ")
	if status.Deployment.Available {
		b.WriteString(statusGoodStyle.Render("yes"))
	} else {
		b.WriteString(statusBadStyle.Render("no"))
	}
	b.WriteString("\n\n")
}

// renderBuildPhase colors a build phase by outcome.
func renderBuildPhase(phase string) string {
	switch phase {
	case "Complete":
		return statusGoodStyle.Render(phase)
	case "Failed", "Error", "Cancelled":
		return statusBadStyle.Render(phase)
	default:
		return statusDimStyle.Render(phase)
	}
}
